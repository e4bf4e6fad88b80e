package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/qrewrite/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTranslator_Default(t *testing.T) {
	m := NewMockTranslator("de", "en")

	mt, err := m.MultiTranslate(context.Background(), []string{"war", "mission"}, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "de"}, mt.Languages)
	assert.Equal(t, []string{"war", "mission"}, mt.Part("de").Content)
	assert.NoError(t, core.ValidateMultiTranslation(mt, 2))
	assert.Equal(t, 1, m.CallCount())
}

func TestMockTranslator_Func(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockTranslator()
	m.MultiTranslateFunc = func(ctx context.Context, words []string, sourceLanguage string) (*core.MultiTranslation, error) {
		return nil, boom
	}

	_, err := m.MultiTranslate(context.Background(), []string{"war"}, "en")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.CallCount())
}

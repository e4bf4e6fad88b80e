package openai

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const translationPromptTemplate = `Translate every word of the given JSON list from %s into each of these languages: %s.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting, or acknowledgment.
Start your response directly with the opening brace { and end with the closing brace }.
The response must have this shape:

{"translations": {"<language code>": ["<word 1>", "<word 2>", ...]}}

Rules:
- Use exactly these language codes as keys: %s.
- Every list must contain exactly %d entries, one per input word, in input order.
- Translate each word on its own. Do not merge or split words.
- Each entry is a single lowercase word. If a word has no translation, repeat it unchanged.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input (English): ["war", "mission"]
Languages: de, fr
Output: {"translations": {"de": ["krieg", "mission"], "fr": ["guerre", "mission"]}}
`

// languageName returns "code (Name)" for prompts, or the bare code if unknown.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return fmt.Sprintf("%s (%s)", code, name)
}

func buildSystemPrompt(source string, targets []string, wordCount int) string {
	names := make([]string, len(targets))
	for i, target := range targets {
		names[i] = languageName(target)
	}
	return fmt.Sprintf(translationPromptTemplate,
		languageName(source),
		strings.Join(names, ", "),
		strings.Join(targets, ", "),
		wordCount)
}

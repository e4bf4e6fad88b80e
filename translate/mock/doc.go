// Package mock provides a test double for translate.Translator.
package mock

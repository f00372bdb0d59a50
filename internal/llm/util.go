// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var markup = bluemonday.StrictPolicy()

// stripCodeFence removes a surrounding markdown code block, including a language
// identifier on the opening line.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Skip potential language identifier on first line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// stripMarkup drops any HTML the model wrapped its answer in and decodes entities.
func stripMarkup(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}
	return strings.TrimSpace(html.UnescapeString(markup.Sanitize(text)))
}

// CleanSuggestion normalizes generated prose: code fences, HTML tags and wrapping
// quotes are removed and surrounding whitespace trimmed.
func CleanSuggestion(text string) string {
	text = stripMarkup(stripCodeFence(text))
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			text = strings.TrimSpace(text[1 : len(text)-1])
		}
	}
	return text
}

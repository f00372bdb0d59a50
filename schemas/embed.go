// Package schemas embeds the JSON Schemas for the documents the planner reads from outside.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var files embed.FS

// File names of the embedded schemas.
const (
	PlanDocumentFile      = "plan_document.schema.json"
	SuggestionRequestFile = "suggestion_request.schema.json"
)

// Load returns the raw content of an embedded schema.
func Load(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("schema %s not embedded: %w", name, err)
	}
	return data, nil
}

// Names lists every embedded schema file.
func Names() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

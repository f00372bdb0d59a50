package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SuggestionRequest
		wantErr bool
	}{
		{
			name: "task with skill name",
			req:  SuggestionRequest{Type: SuggestTask, SkillName: "Reliability"},
		},
		{
			name: "empty type defaults to task",
			req:  SuggestionRequest{SkillName: "Reliability"},
		},
		{
			name:    "task without skill name",
			req:     SuggestionRequest{Type: SuggestTask},
			wantErr: true,
		},
		{
			name: "project idea with organization",
			req:  SuggestionRequest{Type: SuggestProjectIdea, OrganizationName: "Acme", SelectedSkills: []string{"Leadership"}},
		},
		{
			name:    "project idea without organization",
			req:     SuggestionRequest{Type: SuggestProjectIdea},
			wantErr: true,
		},
		{
			name:    "unknown type",
			req:     SuggestionRequest{Type: "poem", SkillName: "x"},
			wantErr: true,
		},
		{
			name: "free-text intern count",
			req:  SuggestionRequest{SkillName: "x", NumberOfInterns: "3-4"},
		},
		{
			name:    "overlong skill name",
			req:     SuggestionRequest{SkillName: strings.Repeat("x", 201)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSuggestionRequest_Kind(t *testing.T) {
	assert.Equal(t, SuggestTask, (&SuggestionRequest{}).Kind())
	assert.Equal(t, SuggestProjectIdea, (&SuggestionRequest{Type: SuggestProjectIdea}).Kind())
}

package types

import "github.com/go-playground/validator/v10"

// SuggestionKind selects which text the suggestion service drafts.
type SuggestionKind string

const (
	SuggestTask        SuggestionKind = "task"
	SuggestProjectIdea SuggestionKind = "project-idea"
)

// SuggestionRequest is the body of a suggestion call. A task request needs a skill
// name; a project-idea request needs the organization name.
type SuggestionRequest struct {
	Type             SuggestionKind `json:"type" validate:"omitempty,oneof=task project-idea"`
	SkillName        string         `json:"skillName,omitempty" validate:"required_if=Type task,max=200"`
	SkillDescription string         `json:"skillDescription,omitempty" validate:"max=1000"`
	SelectedTools    []string       `json:"selectedTools,omitempty" validate:"dive,max=200"`
	OrganizationName string         `json:"organizationName,omitempty" validate:"required_if=Type project-idea,max=300"`
	InterestReason   string         `json:"interestReason,omitempty" validate:"max=4000"`
	NumberOfInterns  string         `json:"numberOfInterns,omitempty" validate:"max=50"`
	ProjectIdea      string         `json:"projectIdea,omitempty" validate:"max=4000"`
	SelectedSkills   []string       `json:"selectedSkills,omitempty" validate:"dive,max=200"`
}

// Kind returns the request kind; an empty type means a task suggestion.
func (r *SuggestionRequest) Kind() SuggestionKind {
	if r.Type == "" {
		return SuggestTask
	}
	return r.Type
}

// Validate validates the SuggestionRequest using the validator.
func (r *SuggestionRequest) Validate() error {
	if r.Type == "" {
		r.Type = SuggestTask
	}
	validate := validator.New()
	return validate.Struct(r)
}

// SuggestionResponse carries one generated suggestion.
type SuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}

// ErrorResponse is the failure body of the suggestion endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

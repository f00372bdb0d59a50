package suggest

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/plan"
	"github.com/jonathan/wbl-planner/internal/schemas"
	"github.com/jonathan/wbl-planner/internal/types"
)

// TaskRequest describes a task suggestion for sk from the organization profile and
// the skill's record.
func TaskRequest(org types.OrganizationData, sk catalog.Skill, d types.SkillData) types.SuggestionRequest {
	return types.SuggestionRequest{
		Type:             types.SuggestTask,
		SkillName:        sk.Name,
		SkillDescription: sk.Description,
		SelectedTools:    d.SelectedTools.Items(),
		OrganizationName: org.OrganizationName,
		InterestReason:   org.InterestReason,
		NumberOfInterns:  org.NumberOfInterns,
		ProjectIdea:      org.ProjectIdea,
	}
}

// ProjectIdeaRequest describes a project-idea suggestion for the organization and
// its selected skills.
func ProjectIdeaRequest(org types.OrganizationData, snap *plan.Snapshot) types.SuggestionRequest {
	var names []string
	for _, sk := range snap.SelectedSkills() {
		names = append(names, sk.Name)
	}
	return types.SuggestionRequest{
		Type:             types.SuggestProjectIdea,
		OrganizationName: org.OrganizationName,
		InterestReason:   org.InterestReason,
		NumberOfInterns:  org.NumberOfInterns,
		SelectedSkills:   names,
	}
}

// DecodeRequest checks a raw request body against the suggestion request schema,
// decodes it and runs field validation.
func DecodeRequest(body []byte) (types.SuggestionRequest, error) {
	var req types.SuggestionRequest
	if err := schemas.ValidateSuggestionRequest(body); err != nil {
		return req, &InvalidRequestError{Cause: err}
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, &InvalidRequestError{Cause: fmt.Errorf("failed to decode request: %w", err)}
	}
	if err := req.Validate(); err != nil {
		return req, &InvalidRequestError{Cause: err}
	}
	return req, nil
}

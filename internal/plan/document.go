package plan

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/schemas"
	"github.com/jonathan/wbl-planner/internal/types"
)

// DocumentVersion is the plan document format written by this package.
const DocumentVersion = 1

// Document is the portable form of a plan: the profile, every skill record and the
// step the user was on.
type Document struct {
	Version      int                    `json:"version"`
	ExportedAt   time.Time              `json:"exportedAt"`
	CurrentStep  int                    `json:"currentStep,omitempty"`
	Organization types.OrganizationData `json:"organization"`
	Skills       []types.SkillData      `json:"skills"`
}

// NewDocument captures org and snap. Skills appear in catalog order.
func NewDocument(org types.OrganizationData, snap *Snapshot, currentStep int, exportedAt time.Time) Document {
	return Document{
		Version:      DocumentVersion,
		ExportedAt:   exportedAt.UTC(),
		CurrentStep:  currentStep,
		Organization: org,
		Skills:       snap.Records(),
	}
}

// Marshal encodes the document as indented JSON.
func (d Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan document: %w", err)
	}
	return data, nil
}

// DecodeDocument validates data against the plan document schema and decodes it.
// Records for skills missing from cat are dropped; multi-value strings come back
// normalized.
func DecodeDocument(data []byte, cat *catalog.Catalog) (Document, error) {
	if err := schemas.ValidatePlanDocument(data); err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode plan document: %w", err)
	}
	if doc.Version > DocumentVersion {
		return Document{}, fmt.Errorf("unsupported plan document version %d", doc.Version)
	}

	kept := doc.Skills[:0]
	for _, rec := range doc.Skills {
		if !cat.HasSkill(rec.SkillID) {
			continue
		}
		if rec.Tasks == nil {
			rec.Tasks = []types.TaskItem{}
		}
		kept = append(kept, rec)
	}
	doc.Skills = kept
	return doc, nil
}

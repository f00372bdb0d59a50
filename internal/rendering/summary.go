package rendering

import (
	"strings"
	"time"

	"github.com/jonathan/wbl-planner/internal/plan"
	"github.com/jonathan/wbl-planner/internal/types"
)

// SummaryTitle heads every summary.
const SummaryTitle = "WBL Program Summary"

// Field is one labeled line of the organization block.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SkillSection is one selected skill as it appears in a summary.
type SkillSection struct {
	Index      int             `json:"index"`
	SkillID    string          `json:"skillId"`
	Icon       string          `json:"icon"`
	Name       string          `json:"name"`
	Tools      []string        `json:"tools"`
	Tasks      []string        `json:"tasks"`
	TaskSource plan.TaskSource `json:"taskSource"`
	Teaching   []string        `json:"teaching"`
	Monitoring []string        `json:"monitoring"`
	Notes      string          `json:"notes,omitempty"`
}

// ToolsText is the tool list joined for display.
func (s SkillSection) ToolsText() string { return strings.Join(s.Tools, ", ") }

// TeachingText is the strategy list joined for display.
func (s SkillSection) TeachingText() string { return strings.Join(s.Teaching, ", ") }

// MonitoringText is the approach list joined for display.
func (s SkillSection) MonitoringText() string { return strings.Join(s.Monitoring, ", ") }

// Summary is the single projection every output format is rendered from.
type Summary struct {
	Title            string         `json:"title"`
	OrganizationName string         `json:"organizationName"`
	GeneratedAt      time.Time      `json:"generatedAt"`
	Organization     []Field        `json:"organization"`
	Skills           []SkillSection `json:"skills"`
	Progress         plan.Progress  `json:"progress"`
}

// GeneratedOn is the generation date as YYYY-MM-DD.
func (s Summary) GeneratedOn() string {
	return s.GeneratedAt.Format(time.DateOnly)
}

// BuildSummary projects the profile and the selected skills of snap, in catalog order.
// Text is carried as written, trimmed, and blank entries are dropped. Sinks escape.
func BuildSummary(org types.OrganizationData, snap *plan.Snapshot, now time.Time) Summary {
	s := Summary{
		Title:            SummaryTitle,
		OrganizationName: strings.TrimSpace(org.OrganizationName),
		GeneratedAt:      now,
		Organization:     organizationBlock(org),
		Skills:           []SkillSection{},
		Progress:         snap.Progress(),
	}

	for i, sk := range snap.SelectedSkills() {
		d, _ := snap.Get(sk.ID)
		resolved := plan.ResolveTasks(d)
		tasks := make([]string, 0, len(resolved.Items))
		for _, t := range resolved.Items {
			if line := strings.TrimSpace(t.Description); line != "" {
				tasks = append(tasks, line)
			}
		}
		s.Skills = append(s.Skills, SkillSection{
			Index:      i + 1,
			SkillID:    sk.ID,
			Icon:       sk.Icon,
			Name:       sk.Name,
			Tools:      nonBlank(d.SelectedTools.Items()),
			Tasks:      tasks,
			TaskSource: resolved.Source,
			Teaching:   nonBlank(d.TeachingStrategy.Items()),
			Monitoring: nonBlank(d.MonitoringApproach.Items()),
			Notes:      strings.TrimSpace(d.Notes),
		})
	}
	return s
}

func organizationBlock(org types.OrganizationData) []Field {
	candidates := []Field{
		{"Contact", org.ContactName()},
		{"Organization", org.OrganizationName},
		{"Website", org.OrganizationWebsite},
		{"Internship Address", org.InternshipAddress},
		{"Email", org.ContactEmail},
		{"Phone", org.ContactNumber},
		{"Number of Interns", org.NumberOfInterns},
		{"Why We Host Interns", org.InterestReason},
		{"Project Idea", org.ProjectIdea},
	}
	out := make([]Field, 0, len(candidates))
	for _, f := range candidates {
		if v := strings.TrimSpace(f.Value); v != "" {
			out = append(out, Field{Label: f.Label, Value: v})
		}
	}
	return out
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Package catalog provides the read-only reference data for the planner: the skill
// catalog, the wizard steps, the teaching and monitoring vocabularies, the communication
// topics and the resource library. The data ships embedded as YAML.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Skill is one workplace competency a program can teach.
type Skill struct {
	ID             string   `yaml:"id" json:"id"`
	Name           string   `yaml:"name" json:"name"`
	Icon           string   `yaml:"icon" json:"icon"`
	Description    string   `yaml:"description" json:"description"`
	SuggestedTools []string `yaml:"suggested_tools" json:"suggestedTools"`
}

// Step is one stage of the planning wizard.
type Step struct {
	ID          int    `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Short       string `yaml:"short" json:"short"`
	Description string `yaml:"description" json:"description"`
}

// CommunicationItem is a topic the host should communicate to students and staff.
type CommunicationItem struct {
	Icon        string `yaml:"icon" json:"icon"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Catalog holds every piece of reference data. A Catalog is never mutated after
// construction and may be shared freely.
type Catalog struct {
	Skills               []Skill             `yaml:"skills" json:"skills"`
	Steps                []Step              `yaml:"steps" json:"steps"`
	TeachingStrategies   []string            `yaml:"teaching_strategies" json:"teachingStrategies"`
	MonitoringApproaches []string            `yaml:"monitoring_approaches" json:"monitoringApproaches"`
	CommunicationItems   []CommunicationItem `yaml:"communication_items" json:"communicationItems"`
	ResourceTypes        []ResourceTypeInfo  `yaml:"resource_types" json:"resourceTypes"`
	Audiences            []AudienceInfo      `yaml:"audiences" json:"audiences"`
	Resources            []Resource          `yaml:"resources" json:"resources"`

	skillIndex map[string]int
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsing it on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultCatalog)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", defaultErr))
	}
	return defaultCat
}

// Parse decodes a catalog from YAML and checks its internal consistency.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	if len(c.Skills) == 0 {
		return fmt.Errorf("catalog has no skills")
	}
	if len(c.Steps) == 0 {
		return fmt.Errorf("catalog has no steps")
	}
	c.skillIndex = make(map[string]int, len(c.Skills))
	for i, s := range c.Skills {
		if s.ID == "" {
			return fmt.Errorf("skill at position %d has no id", i)
		}
		if _, dup := c.skillIndex[s.ID]; dup {
			return fmt.Errorf("duplicate skill id %q", s.ID)
		}
		c.skillIndex[s.ID] = i
	}
	for i, st := range c.Steps {
		if st.ID != i+1 {
			return fmt.Errorf("step %q has id %d, expected %d", st.Title, st.ID, i+1)
		}
	}
	return nil
}

// Skill looks up a skill by id.
func (c *Catalog) Skill(id string) (Skill, bool) {
	i, ok := c.skillIndex[id]
	if !ok {
		return Skill{}, false
	}
	return c.Skills[i], true
}

// HasSkill reports whether id names a catalog skill.
func (c *Catalog) HasSkill(id string) bool {
	_, ok := c.skillIndex[id]
	return ok
}

// SkillOrder returns the catalog position of a skill, or -1.
func (c *Catalog) SkillOrder(id string) int {
	if i, ok := c.skillIndex[id]; ok {
		return i
	}
	return -1
}

// TotalSkills is the denominator of the progress percentage.
func (c *Catalog) TotalSkills() int {
	return len(c.Skills)
}

// Step looks up a step by its 1-based id.
func (c *Catalog) Step(id int) (Step, bool) {
	if id < 1 || id > len(c.Steps) {
		return Step{}, false
	}
	return c.Steps[id-1], true
}

// StepCount is the id of the last step.
func (c *Catalog) StepCount() int {
	return len(c.Steps)
}

// IsTeachingStrategy reports whether s belongs to the teaching vocabulary.
func (c *Catalog) IsTeachingStrategy(s string) bool {
	return contains(c.TeachingStrategies, s)
}

// IsMonitoringApproach reports whether s belongs to the monitoring vocabulary.
func (c *Catalog) IsMonitoringApproach(s string) bool {
	return contains(c.MonitoringApproaches, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

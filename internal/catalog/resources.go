package catalog

// ResourceType classifies a library resource.
type ResourceType string

const (
	ResourceDocument ResourceType = "document"
	ResourceLink     ResourceType = "link"
	ResourceVideo    ResourceType = "video"
	ResourceTemplate ResourceType = "template"
)

// Audience is a group a resource is written for.
type Audience string

const (
	AudienceEducators     Audience = "educators"
	AudienceCounselors    Audience = "counselors"
	AudienceOrganizations Audience = "organizations"
	AudienceIndustry      Audience = "industry"
)

// ResourceTypeInfo is the display metadata for a ResourceType.
type ResourceTypeInfo struct {
	Value ResourceType `yaml:"value" json:"value"`
	Label string       `yaml:"label" json:"label"`
	Icon  string       `yaml:"icon" json:"icon"`
}

// AudienceInfo is the display metadata for an Audience.
type AudienceInfo struct {
	Value Audience `yaml:"value" json:"value"`
	Label string   `yaml:"label" json:"label"`
	Icon  string   `yaml:"icon" json:"icon"`
}

// Resource is an entry in the resource library.
type Resource struct {
	ID          string       `yaml:"id" json:"id"`
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description" json:"description"`
	Type        ResourceType `yaml:"type" json:"type"`
	Audiences   []Audience   `yaml:"audiences" json:"audiences"`
	URL         string       `yaml:"url" json:"url"`
	Icon        string       `yaml:"icon" json:"icon"`
}

// FilterResources returns the resources matching both filters, in library order.
// An empty filter matches everything. A resource matches the audience filter when any
// one of its audiences is selected.
func (c *Catalog) FilterResources(types []ResourceType, audiences []Audience) []Resource {
	typeSet := make(map[ResourceType]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}
	audienceSet := make(map[Audience]bool, len(audiences))
	for _, a := range audiences {
		audienceSet[a] = true
	}

	out := make([]Resource, 0, len(c.Resources))
	for _, r := range c.Resources {
		if len(typeSet) > 0 && !typeSet[r.Type] {
			continue
		}
		if len(audienceSet) > 0 && !anyAudience(r.Audiences, audienceSet) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func anyAudience(have []Audience, want map[Audience]bool) bool {
	for _, a := range have {
		if want[a] {
			return true
		}
	}
	return false
}

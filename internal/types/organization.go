// Package types provides the data model shared by the planner's stores, renderers and
// HTTP API.
package types

import "strings"

// OrgField names one field of OrganizationData. The values are the JSON field names.
type OrgField string

const (
	FieldFirstName           OrgField = "firstName"
	FieldLastName            OrgField = "lastName"
	FieldOrganizationName    OrgField = "organizationName"
	FieldOrganizationWebsite OrgField = "organizationWebsite"
	FieldInternshipAddress   OrgField = "internshipAddress"
	FieldInterestReason      OrgField = "interestReason"
	FieldContactEmail        OrgField = "contactEmail"
	FieldContactNumber       OrgField = "contactNumber"
	FieldNumberOfInterns     OrgField = "numberOfInterns"
	FieldProjectIdea         OrgField = "projectIdea"
)

// OrgFields lists every field in form order.
var OrgFields = []OrgField{
	FieldFirstName,
	FieldLastName,
	FieldOrganizationName,
	FieldOrganizationWebsite,
	FieldInternshipAddress,
	FieldInterestReason,
	FieldContactEmail,
	FieldContactNumber,
	FieldNumberOfInterns,
	FieldProjectIdea,
}

// Valid reports whether f names a known field.
func (f OrgField) Valid() bool {
	for _, known := range OrgFields {
		if f == known {
			return true
		}
	}
	return false
}

// OrganizationData is the host organization's profile. No format validation happens
// here; every field is free text.
type OrganizationData struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	OrganizationName    string `json:"organizationName"`
	OrganizationWebsite string `json:"organizationWebsite"`
	InternshipAddress   string `json:"internshipAddress"`
	InterestReason      string `json:"interestReason"`
	ContactEmail        string `json:"contactEmail"`
	ContactNumber       string `json:"contactNumber"`
	NumberOfInterns     string `json:"numberOfInterns"`
	ProjectIdea         string `json:"projectIdea"`
}

// RequiredOrgFields must be non-blank before the profile counts as complete.
var RequiredOrgFields = []OrgField{
	FieldFirstName,
	FieldLastName,
	FieldOrganizationName,
	FieldContactEmail,
}

// IsComplete reports whether the four required fields are non-blank.
func (o OrganizationData) IsComplete() bool {
	return len(o.MissingFields()) == 0
}

// MissingFields lists the required fields that are still blank.
func (o OrganizationData) MissingFields() []OrgField {
	var missing []OrgField
	for _, f := range RequiredOrgFields {
		if v, _ := o.Get(f); strings.TrimSpace(v) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Get returns the value of field f.
func (o OrganizationData) Get(f OrgField) (string, bool) {
	p := o.fieldPtr(f)
	if p == nil {
		return "", false
	}
	return *p, true
}

// With returns a copy of o with field f set to value. An unknown field returns o
// unchanged and false.
func (o OrganizationData) With(f OrgField, value string) (OrganizationData, bool) {
	p := o.fieldPtr(f)
	if p == nil {
		return o, false
	}
	*p = value
	return o, true
}

// fieldPtr points into the receiver, which is always a copy.
func (o *OrganizationData) fieldPtr(f OrgField) *string {
	switch f {
	case FieldFirstName:
		return &o.FirstName
	case FieldLastName:
		return &o.LastName
	case FieldOrganizationName:
		return &o.OrganizationName
	case FieldOrganizationWebsite:
		return &o.OrganizationWebsite
	case FieldInternshipAddress:
		return &o.InternshipAddress
	case FieldInterestReason:
		return &o.InterestReason
	case FieldContactEmail:
		return &o.ContactEmail
	case FieldContactNumber:
		return &o.ContactNumber
	case FieldNumberOfInterns:
		return &o.NumberOfInterns
	case FieldProjectIdea:
		return &o.ProjectIdea
	default:
		return nil
	}
}

// ContactName is "First Last" with blanks dropped.
func (o OrganizationData) ContactName() string {
	return strings.TrimSpace(strings.TrimSpace(o.FirstName) + " " + strings.TrimSpace(o.LastName))
}

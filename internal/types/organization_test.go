package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrganizationData_IsComplete(t *testing.T) {
	full := OrganizationData{
		FirstName:        "Ada",
		LastName:         "Lovelace",
		OrganizationName: "Analytical Engines",
		ContactEmail:     "ada@example.com",
	}
	assert.True(t, full.IsComplete())

	tests := []struct {
		name  string
		field OrgField
	}{
		{"missing first name", FieldFirstName},
		{"missing last name", FieldLastName},
		{"missing organization", FieldOrganizationName},
		{"missing email", FieldContactEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blank, ok := full.With(tt.field, "   ")
			assert.True(t, ok)
			assert.False(t, blank.IsComplete())
		})
	}

	optional, _ := full.With(FieldOrganizationWebsite, "")
	assert.True(t, optional.IsComplete())
}

func TestOrganizationData_WithLeavesOthers(t *testing.T) {
	o := OrganizationData{FirstName: "Ada", ContactEmail: "ada@example.com"}

	updated, ok := o.With(FieldNumberOfInterns, "3")
	assert.True(t, ok)
	assert.Equal(t, "3", updated.NumberOfInterns)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "ada@example.com", updated.ContactEmail)
	assert.Equal(t, "", o.NumberOfInterns, "original must be untouched")
}

func TestOrganizationData_UnknownField(t *testing.T) {
	o := OrganizationData{FirstName: "Ada"}
	updated, ok := o.With(OrgField("favoriteColor"), "blue")
	assert.False(t, ok)
	assert.Equal(t, o, updated)

	_, ok = o.Get(OrgField("favoriteColor"))
	assert.False(t, ok)
	assert.False(t, OrgField("favoriteColor").Valid())
}

func TestOrganizationData_GetEveryField(t *testing.T) {
	var o OrganizationData
	for _, f := range OrgFields {
		var ok bool
		o, ok = o.With(f, string(f)+"-value")
		assert.True(t, ok, f)
	}
	for _, f := range OrgFields {
		v, ok := o.Get(f)
		assert.True(t, ok)
		assert.Equal(t, string(f)+"-value", v)
	}
}

func TestOrganizationData_ContactName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", OrganizationData{FirstName: " Ada", LastName: "Lovelace "}.ContactName())
	assert.Equal(t, "Ada", OrganizationData{FirstName: "Ada"}.ContactName())
	assert.Equal(t, "", OrganizationData{}.ContactName())
}

func TestOrganizationData_MissingFields(t *testing.T) {
	o := OrganizationData{FirstName: "Ada", OrganizationName: "  "}
	assert.Equal(t, []OrgField{FieldLastName, FieldOrganizationName, FieldContactEmail}, o.MissingFields())

	o.LastName, o.OrganizationName, o.ContactEmail = "L", "Acme", "a@b.c"
	assert.Empty(t, o.MissingFields())
}

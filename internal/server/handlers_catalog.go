package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/wbl-planner/internal/catalog"
)

// VocabularyResponse is the fixed choice lists of the wizard.
type VocabularyResponse struct {
	TeachingStrategies   []string                    `json:"teachingStrategies"`
	MonitoringApproaches []string                    `json:"monitoringApproaches"`
	CommunicationItems   []catalog.CommunicationItem `json:"communicationItems"`
	ResourceTypes        []catalog.ResourceTypeInfo  `json:"resourceTypes"`
	Audiences            []catalog.AudienceInfo      `json:"audiences"`
}

func (s *Server) handleCatalogSkills(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"skills": s.catalog.Skills,
		"total":  s.catalog.TotalSkills(),
	})
}

func (s *Server) handleCatalogSteps(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"steps": s.catalog.Steps})
}

func (s *Server) handleCatalogVocabulary(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, VocabularyResponse{
		TeachingStrategies:   s.catalog.TeachingStrategies,
		MonitoringApproaches: s.catalog.MonitoringApproaches,
		CommunicationItems:   s.catalog.CommunicationItems,
		ResourceTypes:        s.catalog.ResourceTypes,
		Audiences:            s.catalog.Audiences,
	})
}

// handleResources filters the resource library. Both "type" and "audience" may be
// repeated or comma-separated.
func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var resourceTypes []catalog.ResourceType
	for _, v := range splitQuery(q["type"]) {
		resourceTypes = append(resourceTypes, catalog.ResourceType(v))
	}
	var audiences []catalog.Audience
	for _, v := range splitQuery(q["audience"]) {
		audiences = append(audiences, catalog.Audience(v))
	}

	resources := s.catalog.FilterResources(resourceTypes, audiences)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resources": resources,
		"count":     len(resources),
	})
}

func splitQuery(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

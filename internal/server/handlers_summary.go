package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/wbl-planner/internal/rendering"
)

// errPDFDisabled answers summary.pdf when no browser is configured.
var errPDFDisabled = errors.New("PDF export is not configured")

func (s *Server) buildSummary(w http.ResponseWriter, r *http.Request) (rendering.Summary, bool) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return rendering.Summary{}, false
	}
	return rendering.BuildSummary(sess.Profile.Snapshot(), sess.Skills.Snapshot(), s.now()), true
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, ok := s.buildSummary(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sum)
}

func (s *Server) handleSummaryHTML(w http.ResponseWriter, r *http.Request) {
	sum, ok := s.buildSummary(w, r)
	if !ok {
		return
	}
	doc, err := rendering.HTML(sum)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.attachment(w, "text/html; charset=utf-8", rendering.Filename(sum.OrganizationName, sum.GeneratedAt, "html"), doc)
}

func (s *Server) handleSummaryMarkdown(w http.ResponseWriter, r *http.Request) {
	sum, ok := s.buildSummary(w, r)
	if !ok {
		return
	}
	doc, err := rendering.Markdown(sum)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.attachment(w, "text/markdown; charset=utf-8", rendering.Filename(sum.OrganizationName, sum.GeneratedAt, "md"), []byte(doc))
}

func (s *Server) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	if s.pdf == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, errPDFDisabled.Error())
		return
	}
	sum, ok := s.buildSummary(w, r)
	if !ok {
		return
	}
	doc, err := rendering.PDF(r.Context(), s.pdf, sum)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.attachment(w, "application/pdf", rendering.Filename(sum.OrganizationName, sum.GeneratedAt, "pdf"), doc)
}

// attachment writes body as a download named filename.
func (s *Server) attachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("failed to write attachment", "file", filename, "error", err)
	}
}

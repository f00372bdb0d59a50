package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/rendering"
	"github.com/jonathan/wbl-planner/internal/types"
)

type fakePrinter struct{}

func (fakePrinter) PrintPDF(_ context.Context, document []byte) ([]byte, error) {
	return append([]byte("%PDF-"), document[:min(len(document), 16)]...), nil
}

// writePlan saves a plan with one selected skill and returns its path.
func writePlan(t *testing.T) string {
	t.Helper()
	sess, err := openPlan(catalog.Default(), "")
	require.NoError(t, err)
	sess.Profile.UpdateField(types.FieldOrganizationName, "Acme Labs")
	sess.Profile.UpdateField(types.FieldFirstName, "Ada")
	snap := sess.Skills.ToggleSkill("teamwork")
	d, _ := snap.Get("teamwork")
	sess.Skills.UpdateTaskDescription("teamwork", d.Tasks[0].ID, "Plan the team offsite")

	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, savePlan(sess, path, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)))
	return path
}

func TestOpenPlan_RoundTrip(t *testing.T) {
	path := writePlan(t)

	sess, err := openPlan(catalog.Default(), path)
	require.NoError(t, err)
	assert.Equal(t, "Acme Labs", sess.Profile.Snapshot().OrganizationName)
	assert.True(t, sess.Skills.Snapshot().IsSelected("teamwork"))
}

func TestOpenPlan_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skills": "nope"}`), 0o644))

	_, err := openPlan(catalog.Default(), path)
	assert.Error(t, err)

	_, err = openPlan(catalog.Default(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRenderSummary_Formats(t *testing.T) {
	sess, err := openPlan(catalog.Default(), writePlan(t))
	require.NoError(t, err)
	sum := rendering.BuildSummary(sess.Profile.Snapshot(), sess.Skills.Snapshot(), time.Now())
	ctx := context.Background()

	html, err := renderSummary(ctx, sum, "html", nil)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Plan the team offsite")

	md, err := renderSummary(ctx, sum, "md", nil)
	require.NoError(t, err)
	assert.Contains(t, string(md), "Plan the team offsite")

	js, err := renderSummary(ctx, sum, "json", nil)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"organizationName": "Acme Labs"`)

	pdf, err := renderSummary(ctx, sum, "pdf", fakePrinter{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))

	_, err = renderSummary(ctx, sum, "pdf", nil)
	assert.Error(t, err)

	_, err = renderSummary(ctx, sum, "docx", nil)
	assert.ErrorContains(t, err, "unknown format")
}

func TestRenderCommand_WritesFile(t *testing.T) {
	plan := writePlan(t)
	out := filepath.Join(t.TempDir(), "summary.md")

	_, err := execute(t, "render", "--plan", plan, "--format", "md", "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Acme Labs")
}

func TestRenderCommand_RequiresPlan(t *testing.T) {
	_, err := execute(t, "render", "--format", "md")
	assert.ErrorContains(t, err, "required")
}

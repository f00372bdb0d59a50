// Package observability provides structured logging and the formatted output used
// by the command-line planner.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/plan"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the number of cells in a progress bar
	barWidth = 30
)

// Printer handles formatted terminal output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// ProgressBar renders p as a fixed-width bar followed by the counts.
func ProgressBar(p plan.Progress) string {
	filled := min(barWidth*p.Percent/100, barWidth)
	return fmt.Sprintf("[%s%s] %d/%d skills (%d%%)",
		strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled),
		p.Completed, p.Total, p.Percent)
}

// PrintProgress outputs the planned-skills progress bar.
func (p *Printer) PrintProgress(progress plan.Progress) {
	p.printBox("PROGRESS", ProgressBar(progress))
}

// PrintChecklist outputs the readiness checklist of every selected skill.
func (p *Printer) PrintChecklist(checklist []plan.SkillReadiness) {
	var sb strings.Builder
	if len(checklist) == 0 {
		sb.WriteString("No skills selected yet.\n")
	}
	for i, r := range checklist {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s  [%s]\n", r.Skill.Name, r.Status)
		for _, c := range r.Checks {
			mark := "✗"
			if c.Passed {
				mark = "✓"
			}
			fmt.Fprintf(&sb, "  %s %s\n", mark, c.Label)
		}
	}
	p.printBox("ALIGNMENT CHECK", sb.String())
}

// PrintSkills lists the catalog skills, marking the selected ones.
func (p *Printer) PrintSkills(skills []catalog.Skill, selected func(id string) bool) {
	var sb strings.Builder
	for _, sk := range skills {
		mark := " "
		if selected != nil && selected(sk.ID) {
			mark = "•"
		}
		fmt.Fprintf(&sb, "%s %-20s %s\n", mark, sk.ID, sk.Name)
	}
	p.printBox(fmt.Sprintf("SKILLS (%d)", len(skills)), sb.String())
}

// PrintSteps lists the wizard steps, marking current.
func (p *Printer) PrintSteps(steps []catalog.Step, current int) {
	var sb strings.Builder
	for _, st := range steps {
		mark := " "
		if st.ID == current {
			mark = "▶"
		}
		fmt.Fprintf(&sb, "%s %d. %s\n", mark, st.ID, st.Title)
	}
	p.printBox("STEPS", sb.String())
}

// PrintResources lists resources with their type and audiences.
func (p *Printer) PrintResources(resources []catalog.Resource) {
	if len(resources) == 0 {
		p.printBox("RESOURCES", "No resources match the filter.")
		return
	}

	var sb strings.Builder
	for i, r := range resources {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s (%s)\n", r.Title, r.Type)
		audiences := make([]string, len(r.Audiences))
		for j, a := range r.Audiences {
			audiences[j] = string(a)
		}
		fmt.Fprintf(&sb, "  For: %s\n", strings.Join(audiences, ", "))
		if r.URL != "" {
			fmt.Fprintf(&sb, "  %s\n", r.URL)
		}
	}
	p.printBox(fmt.Sprintf("RESOURCES (%d)", len(resources)), sb.String())
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/rendering"
)

var (
	renderPlan   string
	renderFormat string
	renderOut    string
	renderWidth  int
	renderStyle  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a plan document as a program summary",
	Long: "Renders the WBL program summary of a plan document as html, md, terminal, pdf or json. " +
		"PDF output needs Chrome or Chromium installed. Without --out, pdf is written to " +
		"the default summary file name and every other format to stdout.",
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderPlan, "plan", "p", "", "Plan document (required)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "terminal", "Output format: html, md, terminal, pdf or json")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file")
	renderCmd.Flags().IntVar(&renderWidth, "width", 80, "Wrap width for terminal output")
	renderCmd.Flags().StringVar(&renderStyle, "style", "", "Terminal style (dark, light, notty); detected when empty")

	if err := renderCmd.MarkFlagRequired("plan"); err != nil {
		panic(fmt.Sprintf("failed to mark plan flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := openPlan(catalog.Default(), renderPlan)
	if err != nil {
		return err
	}
	sum := rendering.BuildSummary(sess.Profile.Snapshot(), sess.Skills.Snapshot(), time.Now())

	var printer rendering.PDFPrinter
	if renderFormat == "pdf" {
		printer = rendering.NewChromePDF(cfg.ChromePath, cfg.PDFTimeout.Std())
	}
	data, err := renderSummary(cmd.Context(), sum, renderFormat, printer)
	if err != nil {
		return err
	}

	out := renderOut
	if out == "" && renderFormat == "pdf" {
		out = rendering.Filename(sum.OrganizationName, sum.GeneratedAt, "pdf")
	}
	if out == "" {
		return writeTo(cmd.OutOrStdout(), data)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Summary written to %s\n", out) //nolint:errcheck
	return nil
}

// renderSummary produces sum in format. printer is only used for pdf.
func renderSummary(ctx context.Context, sum rendering.Summary, format string, printer rendering.PDFPrinter) ([]byte, error) {
	switch format {
	case "html":
		return rendering.HTML(sum)
	case "md", "markdown":
		md, err := rendering.Markdown(sum)
		return []byte(md), err
	case "terminal":
		text, err := rendering.Terminal(sum, renderWidth, renderStyle)
		return []byte(text), err
	case "json":
		return json.MarshalIndent(sum, "", "  ")
	case "pdf":
		if printer == nil {
			return nil, fmt.Errorf("no PDF printer available")
		}
		return rendering.PDF(ctx, printer, sum)
	default:
		return nil, fmt.Errorf("unknown format %q (want html, md, terminal, pdf or json)", format)
	}
}

func writeTo(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

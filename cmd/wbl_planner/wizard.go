package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/observability"
	"github.com/jonathan/wbl-planner/internal/rendering"
	"github.com/jonathan/wbl-planner/internal/session"
	"github.com/jonathan/wbl-planner/internal/wizard"
)

var (
	wizardIn  string
	wizardOut string
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Plan a program step by step in the terminal",
	Long: "Walks through the eight planning steps: organization info, skills, tools, tasks, " +
		"teaching methods, monitoring, the alignment check and communication. The plan is " +
		"written as a JSON document that the server and the render command can import.",
	RunE: runWizard,
}

func init() {
	wizardCmd.Flags().StringVar(&wizardIn, "in", "", "Plan document to resume from")
	wizardCmd.Flags().StringVarP(&wizardOut, "out", "o", "wbl-plan.json", "Where to write the plan document")
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// The wizard owns the terminal; keep logs quiet.
	logger := observability.Nop()

	sess, err := openPlan(catalog.Default(), wizardIn)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var suggester wizard.Suggester
	gateway, err := newGateway(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer gateway.Close() //nolint:errcheck
	if gateway.Configured() {
		suggester = gateway
	}

	out := cmd.OutOrStdout()
	runErr := wizard.NewInteractive(sess.Profile, sess.Skills, sess.Flow, suggester, out).Run(ctx)
	if runErr != nil && !errors.Is(runErr, wizard.ErrAborted) {
		return runErr
	}

	// An aborted run still saves what was entered so far.
	if err := savePlan(sess, wizardOut, time.Now()); err != nil {
		return err
	}
	if runErr == nil {
		sum := rendering.BuildSummary(sess.Profile.Snapshot(), sess.Skills.Snapshot(), time.Now())
		if text, err := rendering.Terminal(sum, 80, ""); err == nil {
			fmt.Fprint(out, text) //nolint:errcheck
		}
	}
	fmt.Fprintf(out, "\nPlan saved to %s\n", wizardOut) //nolint:errcheck
	return runErr
}

// openPlan starts a session, restored from the document at path when path is set.
func openPlan(cat *catalog.Catalog, path string) (*session.Session, error) {
	m := session.NewManager(cat)
	if path == "" {
		return m.Create(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	sess, err := m.Import(data)
	if err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}
	return sess, nil
}

func savePlan(sess *session.Session, path string, now time.Time) error {
	data, err := sess.Export(now).Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}

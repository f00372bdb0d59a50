package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/observability"
	"github.com/jonathan/wbl-planner/internal/suggest"
	"github.com/jonathan/wbl-planner/internal/types"
)

var (
	suggestSkill    string
	suggestTools    []string
	suggestOrg      string
	suggestReason   string
	suggestInterns  string
	suggestSkillIDs []string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Draft text with the configured LLM provider",
}

var suggestTaskCmd = &cobra.Command{
	Use:   "task",
	Short: "Draft a task that teaches one skill",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := taskRequest(catalog.Default(), suggestSkill, suggestTools, suggestOrg)
		if err != nil {
			return err
		}
		return runSuggestion(cmd, req)
	},
}

var suggestProjectIdeaCmd = &cobra.Command{
	Use:   "project-idea",
	Short: "Draft a project idea for the organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := projectIdeaRequest(catalog.Default(), suggestOrg, suggestReason, suggestInterns, suggestSkillIDs)
		if err != nil {
			return err
		}
		return runSuggestion(cmd, req)
	},
}

func init() {
	suggestCmd.PersistentFlags().StringVar(&suggestOrg, "org", "", "Organization name")

	suggestTaskCmd.Flags().StringVar(&suggestSkill, "skill", "", "Catalog skill id (required)")
	suggestTaskCmd.Flags().StringSliceVar(&suggestTools, "tools", nil, "Tools the task should use")
	if err := suggestTaskCmd.MarkFlagRequired("skill"); err != nil {
		panic(fmt.Sprintf("failed to mark skill flag as required: %v", err))
	}

	suggestProjectIdeaCmd.Flags().StringVar(&suggestReason, "reason", "", "Why the organization hosts interns")
	suggestProjectIdeaCmd.Flags().StringVar(&suggestInterns, "interns", "", "Number of interns")
	suggestProjectIdeaCmd.Flags().StringSliceVar(&suggestSkillIDs, "skills", nil, "Catalog skill ids the project should build")

	suggestCmd.AddCommand(suggestTaskCmd, suggestProjectIdeaCmd)
	rootCmd.AddCommand(suggestCmd)
}

func taskRequest(cat *catalog.Catalog, skillID string, tools []string, org string) (types.SuggestionRequest, error) {
	sk, ok := cat.Skill(skillID)
	if !ok {
		return types.SuggestionRequest{}, fmt.Errorf("unknown skill %q (see: wbl_planner catalog skills)", skillID)
	}
	return types.SuggestionRequest{
		Type:             types.SuggestTask,
		SkillName:        sk.Name,
		SkillDescription: sk.Description,
		SelectedTools:    splitValues(tools),
		OrganizationName: org,
	}, nil
}

func projectIdeaRequest(cat *catalog.Catalog, org, reason, interns string, skillIDs []string) (types.SuggestionRequest, error) {
	if org == "" {
		return types.SuggestionRequest{}, fmt.Errorf("--org is required for a project idea")
	}
	names := make([]string, 0, len(skillIDs))
	for _, id := range splitValues(skillIDs) {
		sk, ok := cat.Skill(id)
		if !ok {
			return types.SuggestionRequest{}, fmt.Errorf("unknown skill %q", id)
		}
		names = append(names, sk.Name)
	}
	return types.SuggestionRequest{
		Type:             types.SuggestProjectIdea,
		OrganizationName: org,
		InterestReason:   reason,
		NumberOfInterns:  interns,
		SelectedSkills:   names,
	}, nil
}

func runSuggestion(cmd *cobra.Command, req types.SuggestionRequest) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gateway, err := newGateway(cmd.Context(), cfg, observability.Nop())
	if err != nil {
		return err
	}
	defer gateway.Close() //nolint:errcheck
	if !gateway.Configured() {
		return fmt.Errorf("%w: set LLM_API_KEY or GEMINI_API_KEY", suggest.ErrNotConfigured)
	}

	text, err := gateway.Suggest(cmd.Context(), req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

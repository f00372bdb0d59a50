package main

import (
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/observability"
)

var (
	catalogJSON      bool
	catalogTypes     []string
	catalogAudiences []string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the built-in reference data",
}

var catalogSkillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the workplace skills a program can teach",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat := catalog.Default()
		if catalogJSON {
			return printJSON(cmd.OutOrStdout(), cat.Skills)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintSkills(cat.Skills, nil)
		return nil
	},
}

var catalogStepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the planning steps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat := catalog.Default()
		if catalogJSON {
			return printJSON(cmd.OutOrStdout(), cat.Steps)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintSteps(cat.Steps, 0)
		return nil
	},
}

var catalogResourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the resource library, optionally filtered by type and audience",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat := catalog.Default()
		var resourceTypes []catalog.ResourceType
		for _, t := range splitValues(catalogTypes) {
			resourceTypes = append(resourceTypes, catalog.ResourceType(t))
		}
		var audiences []catalog.Audience
		for _, a := range splitValues(catalogAudiences) {
			audiences = append(audiences, catalog.Audience(a))
		}

		resources := cat.FilterResources(resourceTypes, audiences)
		if catalogJSON {
			return printJSON(cmd.OutOrStdout(), resources)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintResources(resources)
		return nil
	},
}

func init() {
	catalogCmd.PersistentFlags().BoolVar(&catalogJSON, "json", false, "Print JSON instead of a table")
	catalogResourcesCmd.Flags().StringSliceVar(&catalogTypes, "type", nil, "Resource types to include")
	catalogResourcesCmd.Flags().StringSliceVar(&catalogAudiences, "audience", nil, "Audiences to include")

	catalogCmd.AddCommand(catalogSkillsCmd, catalogStepsCmd, catalogResourcesCmd)
	rootCmd.AddCommand(catalogCmd)
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

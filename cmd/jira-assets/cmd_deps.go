package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/lovincyrus/jira-assets/internal/assets"
)

func newDepsCmd(a *app) *cobra.Command {
	var (
		parent      string
		child       string
		concurrency int
		limit       int
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "List objects with the objects that depend on them",
		Long: `Runs the parent query, then the child query once per result with
{label} replaced by that result's label.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(parent) == "" {
				return assets.Invalid("query", "IQL query is required")
			}
			if strings.TrimSpace(child) == "" {
				return assets.Invalid("child-query", "child query is required")
			}
			if err := positive("limit", limit); err != nil {
				return err
			}
			if err := positive("concurrency", concurrency); err != nil {
				return err
			}

			results, err := a.client.SearchWithDependencies(cmd.Context(), parent, child, assets.DependencyOptions{
				Limit:       limit,
				Concurrency: concurrency,
			})
			if err != nil {
				return err
			}
			a.status("Found %d objects", len(results))
			if asJSON {
				return writeJSON(a.out, results)
			}
			renderDependencies(a.out, a.theme, parent, results)
			return nil
		},
	}
	cmd.Flags().StringVarP(&parent, "query", "q", assets.DefaultParentQuery, "IQL query selecting parent objects")
	cmd.Flags().StringVar(&child, "child-query", assets.DefaultChildQuery, "IQL template run per parent; {label} is replaced")
	cmd.Flags().IntVar(&concurrency, "concurrency", assets.DefaultConcurrency, "Child searches in flight")
	cmd.Flags().IntVarP(&limit, "limit", "l", assets.DefaultLimit, "Results per search")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output raw JSON")
	return cmd
}

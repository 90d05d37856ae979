package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/lovincyrus/jira-assets/internal/assets"
)

const searchExample = `Example: jira-assets search -q "objectType = Server"`

func newSearchCmd(a *app) *cobra.Command {
	var (
		query string
		flags pageFlags
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search Jira Assets objects using IQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(query) == "" {
				return withHint(assets.Invalid("query", "IQL query is required"), searchExample)
			}
			if err := flags.validate(); err != nil {
				return err
			}

			result, err := a.client.SearchObjects(cmd.Context(), query, flags.page, flags.limit)
			if err != nil {
				return err
			}
			a.status("Found %d objects (total: %d)", len(result.ObjectEntries), result.TotalFilterCount)
			if flags.asJSON {
				return writeJSON(a.out, result)
			}
			renderSearch(a.out, a.theme, query, result.Pagination(flags.page, flags.limit), result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "IQL query string (required)")
	flags.register(cmd)
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/lovincyrus/jira-assets/internal/assets"
)

type pageFlags struct {
	page   int
	limit  int
	asJSON bool
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.page, "page", "p", assets.DefaultPage, "Page number")
	cmd.Flags().IntVarP(&f.limit, "limit", "l", assets.DefaultLimit, "Results per page")
	cmd.Flags().BoolVarP(&f.asJSON, "json", "j", false, "Output raw JSON")
}

func (f *pageFlags) validate() error {
	if err := positive("page", f.page); err != nil {
		return err
	}
	return positive("limit", f.limit)
}

func newObjectsCmd(a *app) *cobra.Command {
	var (
		schema string
		flags  pageFlags
	)
	cmd := &cobra.Command{
		Use:   "objects",
		Short: "Get objects from a specific schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schemaID, err := parseID("schema", schema)
			if err != nil {
				return err
			}
			if err := flags.validate(); err != nil {
				return err
			}

			result, err := a.client.ListObjects(cmd.Context(), schemaID, flags.page, flags.limit)
			if err != nil {
				return err
			}
			a.status("Found %d objects", len(result.ObjectEntries))
			if flags.asJSON {
				return writeJSON(a.out, result)
			}
			renderObjects(a.out, a.theme, schemaID, result.Pagination(flags.page, flags.limit), result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&schema, "schema", "s", "", "Schema ID (required)")
	flags.register(cmd)
	return cmd
}

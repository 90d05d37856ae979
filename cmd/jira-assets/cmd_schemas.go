package main

import (
	"github.com/spf13/cobra"
)

func newSchemasCmd(a *app) *cobra.Command {
	var (
		id     string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List all Jira Assets schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if id != "" {
				schemaID, err := parseID("schema", id)
				if err != nil {
					return err
				}
				schema, err := a.client.GetSchema(ctx, schemaID)
				if err != nil {
					return err
				}
				a.status("Schema details for ID: %d", schemaID)
				if asJSON {
					return writeJSON(a.out, schema)
				}
				renderSchema(a.out, a.theme, schema)
				return nil
			}

			schemas, err := a.client.ListSchemas(ctx)
			if err != nil {
				return err
			}
			a.status("Found %d schemas", len(schemas))
			if asJSON {
				return writeJSON(a.out, schemas)
			}
			renderSchemas(a.out, a.theme, schemas)
			return nil
		},
	}
	cmd.Flags().StringVarP(&id, "id", "i", "", "Get schema by ID")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output raw JSON")
	return cmd
}

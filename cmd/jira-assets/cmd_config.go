package main

import (
	"github.com/spf13/cobra"

	"github.com/lovincyrus/jira-assets/internal/assets"
	"github.com/lovincyrus/jira-assets/internal/credentials"
)

func newConfigCmd(a *app) *cobra.Command {
	var show, wipe bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configure Jira Assets CLI connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.creds.open()
			if err != nil {
				return err
			}
			switch {
			case show:
				return a.showConfig(store)
			case wipe:
				if err := store.Clear(); err != nil {
					return err
				}
				a.theme.println(a.out, a.theme.label, "Configuration cleared successfully")
				return nil
			default:
				return a.promptConfig(store)
			}
		},
	}
	cmd.Flags().BoolVarP(&show, "show", "s", false, "Show current configuration")
	cmd.Flags().BoolVarP(&wipe, "clear", "c", false, "Clear configuration")
	return cmd
}

func (a *app) showConfig(store *credentials.Store) error {
	c, err := store.Get()
	if err != nil {
		return err
	}
	t, w := a.theme, a.out
	notSet := t.warn.Render("Not set")
	orNotSet := func(v string) string {
		if v == "" {
			return notSet
		}
		return v
	}
	token := notSet
	if c.APIToken != "" {
		token = t.muted.Render("****")
	}

	t.heading(w, "Current configuration:")
	line(w, t.label.Render("Jira URL:"), orNotSet(c.JiraURL))
	line(w, t.label.Render("Email:"), orNotSet(c.Email))
	line(w, t.label.Render("API Token:"), token)
	line(w, t.muted.Render("Stored in:"), store.Path())

	if !c.Complete() {
		line(w)
		t.println(w, t.warn, "Configuration is incomplete. Run 'jira-assets config' to set up.")
	}
	return nil
}

func (a *app) promptConfig(store *credentials.Store) error {
	t := a.theme
	t.heading(a.out, "Jira Assets CLI Configuration")

	p := newPrompter(a.in, a.out)
	var c credentials.Credentials
	var err error
	if c.JiraURL, err = p.line(t.warn.Render("Jira URL (e.g. https://your-domain.atlassian.net): ")); err != nil {
		return err
	}
	if c.Email, err = p.line(t.warn.Render("Jira Email: ")); err != nil {
		return err
	}
	if c.APIToken, err = p.secret(t.warn.Render("Jira API Token: ")); err != nil {
		return err
	}

	if !c.Complete() {
		return assets.Invalid("config", "all fields are required. Configuration aborted")
	}
	for _, f := range credentials.Fields {
		if err := store.Set(f, c.Value(f)); err != nil {
			return err
		}
	}
	t.println(a.out, t.label, "Configuration saved successfully")
	return nil
}

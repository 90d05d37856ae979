package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lovincyrus/jira-assets/internal/assets"
)

const rule = "--------------------------------------"

type theme struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
}

// newTheme binds styles to w, so output that is not a terminal stays plain.
func newTheme(w io.Writer, noColor bool) *theme {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &theme{
		header: r.NewStyle().Foreground(lipgloss.Color("12")),
		label:  r.NewStyle().Foreground(lipgloss.Color("10")),
		value:  r.NewStyle().Foreground(lipgloss.Color("11")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("11")),
		err:    r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (t *theme) println(w io.Writer, s lipgloss.Style, text string) {
	fmt.Fprintln(w, s.Render(text))
}

// line joins styled parts with single spaces.
func line(w io.Writer, parts ...string) {
	fmt.Fprintln(w, strings.Join(parts, " "))
}

func (t *theme) heading(w io.Writer, title string) {
	t.println(w, t.header, title)
	t.println(w, t.header, rule)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderSchemas(w io.Writer, t *theme, schemas []assets.Schema) {
	fmt.Fprintln(w)
	t.heading(w, "Available Schemas:")
	for _, s := range schemas {
		line(w,
			t.label.Render(fmt.Sprintf("[ID: %d]", s.ID)),
			t.value.Render(s.Name),
			t.muted.Render(fmt.Sprintf("(%d objects)", s.ObjectCount)),
		)
	}
}

func renderSchema(w io.Writer, t *theme, s *assets.Schema) {
	fmt.Fprintln(w)
	t.heading(w, "Schema Details:")
	field := func(name, value string) {
		line(w, t.label.Render(name+":"), value)
	}
	created, _ := s.CreatedTime()
	updated, _ := s.UpdatedTime()
	field("ID", fmt.Sprint(s.ID))
	field("Name", s.Name)
	field("Object Count", fmt.Sprint(s.ObjectCount))
	field("Created", formatTime(created, s.Created))
	field("Updated", formatTime(updated, s.Updated))
}

func formatTime(parsed time.Time, raw string) string {
	switch {
	case !parsed.IsZero():
		return parsed.Local().Format(time.DateTime)
	case raw != "":
		return raw
	default:
		return "Not available"
	}
}

func renderObjects(w io.Writer, t *theme, schemaID int, p assets.Pagination, result *assets.PageResult) {
	fmt.Fprintln(w)
	t.heading(w, fmt.Sprintf("Objects from Schema ID: %d (Page %d)", schemaID, p.Page))
	if len(result.ObjectEntries) == 0 {
		t.println(w, t.warn, "No objects found in this schema")
		return
	}
	for _, o := range result.ObjectEntries {
		line(w,
			t.label.Render(fmt.Sprintf("[ID: %d]", o.ID)),
			t.value.Render(o.Label),
			t.muted.Render(fmt.Sprintf("(Key: %s)", o.ObjectKey)),
		)
	}
	fmt.Fprintln(w)
	renderPagination(w, t, p)
}

func renderSearch(w io.Writer, t *theme, query string, p assets.Pagination, result *assets.PageResult) {
	fmt.Fprintln(w)
	t.heading(w, fmt.Sprintf("Search Results for: %q (Page %d)", query, p.Page))
	if len(result.ObjectEntries) == 0 {
		t.println(w, t.warn, "No objects found matching this query")
		return
	}
	for _, o := range result.ObjectEntries {
		line(w,
			t.label.Render(fmt.Sprintf("[ID: %d]", o.ID)),
			t.value.Render(o.Label),
			t.muted.Render(fmt.Sprintf("(Type: %s)", o.ObjectType.Name)),
		)
		renderAttributes(w, t, o.Attributes)
		fmt.Fprintln(w)
	}
	renderPagination(w, t, p)
}

func renderAttributes(w io.Writer, t *theme, attrs []assets.Attribute) {
	if len(attrs) == 0 {
		return
	}
	t.println(w, t.muted, "  Attributes:")
	for _, a := range attrs {
		if a.ObjectTypeAttributeID == 0 {
			continue
		}
		values := a.Values()
		if len(values) == 0 {
			continue
		}
		t.println(w, t.muted, fmt.Sprintf("    %s: %s", a.Name(), strings.Join(values, ", ")))
	}
}

func renderPagination(w io.Writer, t *theme, p assets.Pagination) {
	t.println(w, t.header, "Pagination:")
	t.println(w, t.muted, fmt.Sprintf("Page %d of %d", p.Page, p.TotalPages()))
	t.println(w, t.muted, fmt.Sprintf("Total objects: %d", p.Total))
	if p.HasNext() {
		fmt.Fprintln(w)
		t.println(w, t.warn, fmt.Sprintf("Use --page %d to see the next page", p.NextPage()))
	}
}

func renderDependencies(w io.Writer, t *theme, query string, results []assets.ObjectDependencies) {
	fmt.Fprintln(w)
	t.heading(w, fmt.Sprintf("Dependencies for: %q", query))
	if len(results) == 0 {
		t.println(w, t.warn, "No objects found matching this query")
		return
	}
	for _, r := range results {
		line(w,
			t.label.Render(fmt.Sprintf("[ID: %d]", r.ID)),
			t.value.Render(r.Label),
			t.muted.Render(fmt.Sprintf("(Key: %s)", r.ObjectKey)),
		)
		if len(r.Dependencies) == 0 {
			t.println(w, t.muted, "  No dependencies")
			continue
		}
		for _, d := range r.Dependencies {
			t.println(w, t.muted, fmt.Sprintf("  - [ID: %d] %s (Type: %s)", d.ID, d.Label, d.ObjectType.Name))
		}
	}
}

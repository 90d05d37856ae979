package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LabelPlaceholder is replaced by each parent object's label in a child query.
const LabelPlaceholder = "{label}"

const (
	DefaultParentQuery = "objectType = Service"
	DefaultChildQuery  = `objectType = Server AND attributes.Service = "{label}"`

	DefaultConcurrency = 4
)

// DependencyOptions tunes SearchWithDependencies.
type DependencyOptions struct {
	// Limit is the page size for the parent and every child search.
	Limit int
	// Concurrency bounds the number of child searches in flight.
	Concurrency int
}

// ObjectDependencies is a parent object with the objects its child query returned.
type ObjectDependencies struct {
	Object
	Dependencies []Object `json:"dependencies"`
}

// MarshalJSON flattens the parent object and adds the dependencies member.
func (d ObjectDependencies) MarshalJSON() ([]byte, error) {
	deps := d.Dependencies
	if deps == nil {
		deps = []Object{}
	}
	raw, err := json.Marshal(deps)
	if err != nil {
		return nil, err
	}
	obj := d.Object
	extra := make(map[string]json.RawMessage, len(obj.Extra)+1)
	maps.Copy(extra, obj.Extra)
	extra["dependencies"] = raw
	obj.Extra = extra
	return obj.MarshalJSON()
}

// ChildQuery expands template for one parent label. Double quotes in the
// label are escaped so it stays inside an IQL string literal.
func ChildQuery(template, label string) string {
	escaped := strings.ReplaceAll(label, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return strings.ReplaceAll(template, LabelPlaceholder, escaped)
}

// SearchWithDependencies runs parentIQL, then runs childTemplate once per
// parent entry in parallel. Results keep the parent order. The first failing
// child search cancels the others and its error is returned.
func (c *Client) SearchWithDependencies(ctx context.Context, parentIQL, childTemplate string, opts DependencyOptions) ([]ObjectDependencies, error) {
	_, limit := normalizePage(DefaultPage, opts.Limit)
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	parents, err := c.SearchObjects(ctx, parentIQL, DefaultPage, limit)
	if err != nil {
		return nil, err
	}

	out := make([]ObjectDependencies, len(parents.ObjectEntries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, parent := range parents.ObjectEntries {
		out[i].Object = parent
		g.Go(func() error {
			children, err := c.SearchObjects(gctx, ChildQuery(childTemplate, parent.Label), DefaultPage, limit)
			if err != nil {
				return fmt.Errorf("dependencies of %s: %w", parent.ObjectKey, err)
			}
			out[i].Dependencies = children.ObjectEntries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

package credentials

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned for a field name outside the credential record.
var ErrUnknownField = errors.New("unknown credential field")

// Field names a persisted credential value.
type Field string

const (
	FieldJiraURL  Field = "jiraUrl"
	FieldEmail    Field = "email"
	FieldAPIToken Field = "apiToken"
)

// Fields lists every credential field in prompt order.
var Fields = []Field{FieldJiraURL, FieldEmail, FieldAPIToken}

// ParseField maps a stored key to a Field.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Credentials is the connection triple the API client needs.
// An empty string means the field was never set.
type Credentials struct {
	JiraURL  string `json:"jiraUrl,omitempty"`
	Email    string `json:"email,omitempty"`
	APIToken string `json:"apiToken,omitempty"`
}

// Complete reports whether all three fields are non-empty.
func (c Credentials) Complete() bool {
	return c.JiraURL != "" && c.Email != "" && c.APIToken != ""
}

// Value returns the value of one field.
func (c Credentials) Value(f Field) string {
	switch f {
	case FieldJiraURL:
		return c.JiraURL
	case FieldEmail:
		return c.Email
	case FieldAPIToken:
		return c.APIToken
	}
	return ""
}

func (c *Credentials) set(f Field, v string) {
	switch f {
	case FieldJiraURL:
		c.JiraURL = v
	case FieldEmail:
		c.Email = v
	case FieldAPIToken:
		c.APIToken = v
	}
}

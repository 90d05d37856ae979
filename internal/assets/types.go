package assets

import (
	"encoding/json"
	"strconv"
	"time"
)

// Schema is an object schema: a named collection of typed objects.
// Members the API returns beyond the declared fields are kept in Extra.
type Schema struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	ObjectSchemaKey string `json:"objectSchemaKey,omitempty"`
	Description     string `json:"description,omitempty"`
	Status          string `json:"status,omitempty"`
	Created         string `json:"created,omitempty"`
	Updated         string `json:"updated,omitempty"`
	ObjectCount     int    `json:"objectCount"`
	ObjectTypeCount int    `json:"objectTypeCount,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
	wire  *wire
}

// ObjectType names the type an object belongs to.
type ObjectType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	Extra map[string]json.RawMessage `json:"-"`
	wire  *wire
}

// ObjectTypeAttribute is the definition an attribute value belongs to.
type ObjectTypeAttribute struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	Extra map[string]json.RawMessage `json:"-"`
	wire  *wire
}

// AttributeValue is one value of an attribute. Value is whatever JSON the
// API sent: string, json.Number, bool or nil.
type AttributeValue struct {
	Value        any    `json:"value,omitempty"`
	DisplayValue string `json:"displayValue,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
	wire  *wire
}

// Attribute holds the values an object has for one attribute definition.
type Attribute struct {
	ID                    int                  `json:"id,omitempty"`
	ObjectTypeAttributeID int                  `json:"objectTypeAttributeId"`
	ObjectTypeAttribute   *ObjectTypeAttribute `json:"objectTypeAttribute,omitempty"`
	ObjectAttributeValues []AttributeValue     `json:"objectAttributeValues"`

	Extra map[string]json.RawMessage `json:"-"`
	wire  *wire
}

// Object is one catalog entry.
type Object struct {
	ID         int         `json:"id"`
	Label      string      `json:"label"`
	ObjectKey  string      `json:"objectKey"`
	ObjectType ObjectType  `json:"objectType"`
	Attributes []Attribute `json:"attributes"`
	Created    string      `json:"created,omitempty"`
	Updated    string      `json:"updated,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
	wire  *wire
}

// PageResult is one page of objects, returned by both the objects and the
// IQL search endpoints.
type PageResult struct {
	ObjectEntries    []Object `json:"objectEntries"`
	ObjectIDs        []int    `json:"objectIds,omitempty"`
	TotalFilterCount int      `json:"totalFilterCount"`

	Extra map[string]json.RawMessage `json:"-"`
	wire  *wire
}

type (
	plainSchema              Schema
	plainObjectType          ObjectType
	plainObjectTypeAttribute ObjectTypeAttribute
	plainAttributeValue      AttributeValue
	plainAttribute           Attribute
	plainObject              Object
	plainPageResult          PageResult
)

var (
	schemaFields              = knownFields(plainSchema{})
	objectTypeFields          = knownFields(plainObjectType{})
	objectTypeAttributeFields = knownFields(plainObjectTypeAttribute{})
	attributeValueFields      = knownFields(plainAttributeValue{})
	attributeFields           = knownFields(plainAttribute{})
	objectFields              = knownFields(plainObject{})
	pageResultFields          = knownFields(plainPageResult{})
)

func (s *Schema) UnmarshalJSON(data []byte) (err error) {
	s.Extra, s.wire, err = decodeWithExtra(data, (*plainSchema)(s), schemaFields)
	return err
}

func (s Schema) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(plainSchema(s), s.Extra, s.wire, schemaFields)
}

func (t *ObjectType) UnmarshalJSON(data []byte) (err error) {
	t.Extra, t.wire, err = decodeWithExtra(data, (*plainObjectType)(t), objectTypeFields)
	return err
}

func (t ObjectType) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(plainObjectType(t), t.Extra, t.wire, objectTypeFields)
}

func (a *ObjectTypeAttribute) UnmarshalJSON(data []byte) (err error) {
	a.Extra, a.wire, err = decodeWithExtra(data, (*plainObjectTypeAttribute)(a), objectTypeAttributeFields)
	return err
}

func (a ObjectTypeAttribute) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(plainObjectTypeAttribute(a), a.Extra, a.wire, objectTypeAttributeFields)
}

func (v *AttributeValue) UnmarshalJSON(data []byte) (err error) {
	v.Extra, v.wire, err = decodeWithExtra(data, (*plainAttributeValue)(v), attributeValueFields)
	return err
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(plainAttributeValue(v), v.Extra, v.wire, attributeValueFields)
}

func (a *Attribute) UnmarshalJSON(data []byte) (err error) {
	a.Extra, a.wire, err = decodeWithExtra(data, (*plainAttribute)(a), attributeFields)
	return err
}

func (a Attribute) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(plainAttribute(a), a.Extra, a.wire, attributeFields)
}

func (o *Object) UnmarshalJSON(data []byte) (err error) {
	o.Extra, o.wire, err = decodeWithExtra(data, (*plainObject)(o), objectFields)
	return err
}

func (o Object) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(plainObject(o), o.Extra, o.wire, objectFields)
}

func (p *PageResult) UnmarshalJSON(data []byte) (err error) {
	p.Extra, p.wire, err = decodeWithExtra(data, (*plainPageResult)(p), pageResultFields)
	return err
}

func (p PageResult) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(plainPageResult(p), p.Extra, p.wire, pageResultFields)
}

// CreatedTime parses Created. ok is false when it is empty or unparseable.
func (s Schema) CreatedTime() (time.Time, bool) { return parseTimestamp(s.Created) }

// UpdatedTime parses Updated. ok is false when it is empty or unparseable.
func (s Schema) UpdatedTime() (time.Time, bool) { return parseTimestamp(s.Updated) }

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Text is the display form of the value: DisplayValue when set, else Value.
// Falsy values (null, "", false, 0) render as "".
func (v AttributeValue) Text() string {
	if v.DisplayValue != "" {
		return v.DisplayValue
	}
	switch val := v.Value.(type) {
	case string:
		return val
	case json.Number:
		if f, err := val.Float64(); err == nil && f == 0 {
			return ""
		}
		return val.String()
	case float64:
		if val == 0 {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if !val {
			return ""
		}
		return "true"
	case nil:
		return ""
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}

// Name is the attribute definition name, or "Unknown" when the response
// did not include type attributes.
func (a Attribute) Name() string {
	if a.ObjectTypeAttribute != nil && a.ObjectTypeAttribute.Name != "" {
		return a.ObjectTypeAttribute.Name
	}
	return "Unknown"
}

// Values returns the non-empty display texts of the attribute, in order.
func (a Attribute) Values() []string {
	var out []string
	for _, v := range a.ObjectAttributeValues {
		if t := v.Text(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

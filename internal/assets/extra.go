package assets

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// knownFields returns the JSON member names declared on struct type v.
func knownFields(v any) map[string]bool {
	t := reflect.TypeOf(v)
	known := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		known[name] = true
	}
	return known
}

// wire remembers the declared members of an entity as they arrived, next to
// how the typed fields encoded right after decoding. A declared field whose
// encoding is unchanged is written back with the received bytes.
type wire struct {
	raw   map[string]json.RawMessage
	typed map[string]json.RawMessage
}

func members(data []byte) (map[string]json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// decodeWithExtra decodes data into v and returns the members of data that
// v does not declare. Numbers in untyped fields decode as json.Number.
// v must not have its own UnmarshalJSON.
func decodeWithExtra(data []byte, v any, known map[string]bool) (map[string]json.RawMessage, *wire, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return nil, nil, err
	}
	all, err := members(data)
	if err != nil {
		return nil, nil, err
	}
	enc, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	typed, err := members(enc)
	if err != nil {
		return nil, nil, err
	}

	w := &wire{raw: make(map[string]json.RawMessage, len(known)), typed: typed}
	var extra map[string]json.RawMessage
	for k, raw := range all {
		if known[k] {
			w.raw[k] = raw
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[k] = raw
	}
	return extra, w, nil
}

// encodeWithExtra encodes v and merges extra members back in. Declared
// fields untouched since decoding keep their received form, including being
// absent. Declared fields win over extra members with the same name.
func encodeWithExtra(v any, extra map[string]json.RawMessage, w *wire, known map[string]bool) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || (w == nil && len(extra) == 0) {
		return data, err
	}
	typed, err := members(data)
	if err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(typed)+len(extra))
	for k, raw := range extra {
		if !known[k] {
			out[k] = raw
		}
	}
	for k := range known {
		now, present := typed[k]
		if w != nil {
			then, was := w.typed[k]
			if present == was && bytes.Equal(now, then) {
				if raw, ok := w.raw[k]; ok {
					out[k] = raw
				}
				continue
			}
		}
		if present {
			out[k] = now
		}
	}
	return json.Marshal(out)
}

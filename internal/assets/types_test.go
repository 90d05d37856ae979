package assets_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovincyrus/jira-assets/internal/assets"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

const searchBody = `{
  "objectEntries": [
    {
      "id": 11,
      "label": "web-01",
      "objectKey": "ITSM-11",
      "avatar": {"url16": "https://example/a.png"},
      "objectType": {"id": 3, "name": "Server", "icon": {"id": 1}},
      "attributes": [
        {
          "id": 501,
          "objectTypeAttributeId": 20,
          "objectTypeAttribute": {"id": 20, "name": "Hostname", "editable": true},
          "objectAttributeValues": [
            {"value": "web-01.example.com", "displayValue": "web-01.example.com", "searchValue": "web-01"}
          ]
        },
        {
          "id": 502,
          "objectTypeAttributeId": 21,
          "objectAttributeValues": [{"value": 8}, {"value": 0}, {"value": false}, {"value": ""}]
        }
      ]
    }
  ],
  "objectIds": [11],
  "totalFilterCount": 1,
  "pageSize": 50,
  "iql": "objectType = Server"
}`

func TestPageResult_DecodeTypedAndExtra(t *testing.T) {
	t.Parallel()

	var page assets.PageResult
	require.NoError(t, json.Unmarshal([]byte(searchBody), &page))

	assert.Equal(t, 1, page.TotalFilterCount)
	assert.Equal(t, []int{11}, page.ObjectIDs)
	assert.JSONEq(t, `"objectType = Server"`, string(page.Extra["iql"]))
	assert.NotContains(t, page.Extra, "objectEntries")

	obj := page.ObjectEntries[0]
	assert.Equal(t, "ITSM-11", obj.ObjectKey)
	assert.Equal(t, "Server", obj.ObjectType.Name)
	assert.Contains(t, obj.Extra, "avatar")
	assert.Contains(t, obj.ObjectType.Extra, "icon")

	require.Len(t, obj.Attributes, 2)
	assert.Equal(t, "Hostname", obj.Attributes[0].Name())
	assert.Equal(t, []string{"web-01.example.com"}, obj.Attributes[0].Values())
	assert.Contains(t, obj.Attributes[0].ObjectAttributeValues[0].Extra, "searchValue")

	assert.Equal(t, "Unknown", obj.Attributes[1].Name())
	assert.Equal(t, []string{"8"}, obj.Attributes[1].Values(), "falsy values are dropped")
}

func TestPageResult_ReencodeKeepsPassthroughFields(t *testing.T) {
	t.Parallel()

	var page assets.PageResult
	require.NoError(t, json.Unmarshal([]byte(searchBody), &page))

	out, err := json.Marshal(page)
	require.NoError(t, err)

	var original, roundTripped map[string]any
	require.NoError(t, json.Unmarshal([]byte(searchBody), &original))
	require.NoError(t, json.Unmarshal(out, &roundTripped))
	assert.Equal(t, original, roundTripped)
}

func TestSchema_Timestamps(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"2024-03-01T10:00:00.000Z":     true,
		"2024-03-01T10:00:00.000+0000": true,
		"2024-03-01T10:00:00+0100":     true,
		"":                             false,
		"yesterday":                    false,
	}
	for in, want := range cases {
		s := assets.Schema{Created: in, Updated: in}
		_, ok := s.CreatedTime()
		assert.Equal(t, want, ok, "CreatedTime(%q)", in)
		_, ok = s.UpdatedTime()
		assert.Equal(t, want, ok, "UpdatedTime(%q)", in)
	}
}

func TestAttributeValue_Text(t *testing.T) {
	t.Parallel()

	cases := []struct {
		v    assets.AttributeValue
		want string
	}{
		{assets.AttributeValue{DisplayValue: "Shown", Value: "raw"}, "Shown"},
		{assets.AttributeValue{Value: "raw"}, "raw"},
		{assets.AttributeValue{Value: 3.5}, "3.5"},
		{assets.AttributeValue{Value: true}, "true"},
		{assets.AttributeValue{Value: false}, ""},
		{assets.AttributeValue{Value: json.Number("0")}, ""},
		{assets.AttributeValue{Value: json.Number("42")}, "42"},
		{assets.AttributeValue{}, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.v.Text())
	}
}

func TestPagination(t *testing.T) {
	t.Parallel()

	p := assets.Pagination{Page: 1, Limit: 50, Total: 120}
	assert.Equal(t, 3, p.TotalPages())
	assert.True(t, p.HasNext())
	assert.Equal(t, 2, p.NextPage())

	p.Page = 3
	assert.False(t, p.HasNext(), "3*50 >= 120")

	p = assets.Pagination{Page: 2, Limit: 50, Total: 100}
	assert.Equal(t, 2, p.TotalPages())
	assert.False(t, p.HasNext())

	assert.Equal(t, 0, assets.Pagination{Page: 1, Limit: 0, Total: 10}.TotalPages())
	assert.Equal(t, 0, assets.Pagination{Page: 1, Limit: 50, Total: 0}.TotalPages())

	page := &assets.PageResult{TotalFilterCount: 7}
	assert.Equal(t, assets.Pagination{Page: 2, Limit: 5, Total: 7}, page.Pagination(2, 5))
}

const sparseBody = `{
  "objectEntries": [
    {
      "id": 7,
      "label": "db-01",
      "objectKey": "ITSM-7",
      "objectType": {"id": 3, "name": "Server"},
      "attributes": [
        {
          "objectTypeAttributeId": 21,
          "objectAttributeValues": [
            {"value": null, "displayValue": ""},
            {"value": 12345678901234567890}
          ]
        }
      ]
    },
    {"id": 8, "label": "db-02", "objectKey": "ITSM-8", "objectType": {"id": 3, "name": "Server"}}
  ],
  "objectIds": [],
  "totalFilterCount": 2
}`

func TestPageResult_ReencodeKeepsEmptyAndAbsentMembers(t *testing.T) {
	t.Parallel()

	var page assets.PageResult
	require.NoError(t, json.Unmarshal([]byte(sparseBody), &page))

	out, err := json.Marshal(page)
	require.NoError(t, err)

	assert.JSONEq(t, sparseBody, string(out))
	assert.Contains(t, string(out), "12345678901234567890", "large numbers keep every digit")
	assert.Contains(t, string(out), `"objectIds":[]`)
	assert.NotContains(t, string(out), `"attributes":null`)

	attr := page.ObjectEntries[0].Attributes[0]
	assert.Equal(t, []string{"12345678901234567890"}, attr.Values())
}

func TestSchema_ReencodeKeepsServerShape(t *testing.T) {
	t.Parallel()

	var s assets.Schema
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"X","description":""}`), &s))

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"X","description":""}`, string(out))

	s.Name = "Renamed"
	s.ObjectCount = 4
	out, err = json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"Renamed","description":"","objectCount":4}`, string(out))
}

func TestObject_LocallyBuiltEncodesDeclaredFields(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(assets.Object{ID: 1, Label: "web", ObjectKey: "ITSM-1"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, "web", m["label"])
	assert.Contains(t, m, "objectType")
	assert.NotContains(t, m, "created")
}

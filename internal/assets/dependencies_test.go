package assets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovincyrus/jira-assets/internal/assets"
	"github.com/lovincyrus/jira-assets/internal/assets/assetstest"
	"github.com/lovincyrus/jira-assets/internal/credentials"
)

func TestChildQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		`objectType = Server AND attributes.Service = "Billing"`,
		assets.ChildQuery(assets.DefaultChildQuery, "Billing"))
	assert.Equal(t,
		`Service = "say \"hi\""`,
		assets.ChildQuery(`Service = "{label}"`, `say "hi"`))
	assert.Equal(t, "no placeholder", assets.ChildQuery("no placeholder", "x"))
}

func TestSearchWithDependencies_PreservesOrder(t *testing.T) {
	t.Parallel()

	c, srv, _ := newTestClient(t)
	services := []assets.Object{
		assetstest.Object(1, "Billing", "Service"),
		assetstest.Object(2, "Search", "Service"),
		assetstest.Object(3, "Mail", "Service"),
	}
	srv.Search[assets.DefaultParentQuery] = services
	srv.Search[assets.ChildQuery(assets.DefaultChildQuery, "Billing")] = assetstest.Objects(10, 2, "Server")
	srv.Search[assets.ChildQuery(assets.DefaultChildQuery, "Mail")] = assetstest.Objects(20, 1, "Server")

	out, err := c.SearchWithDependencies(context.Background(),
		assets.DefaultParentQuery, assets.DefaultChildQuery, assets.DependencyOptions{Concurrency: 2})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "Billing", out[0].Label)
	assert.Len(t, out[0].Dependencies, 2)
	assert.Equal(t, "Search", out[1].Label)
	assert.Empty(t, out[1].Dependencies)
	assert.Equal(t, "Mail", out[2].Label)
	require.Len(t, out[2].Dependencies, 1)
	assert.Equal(t, 20, out[2].Dependencies[0].ID)

	assert.Equal(t, 4, srv.Requests(), "one parent search plus one per service")
}

func TestSearchWithDependencies_ChildFailure(t *testing.T) {
	t.Parallel()

	srv := assetstest.New(t)
	srv.Search["objectType = Service"] = []assets.Object{assetstest.Object(1, "Billing", "Service")}

	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if r.URL.Query().Get("iql") != "objectType = Service" {
			return jsonResponse(http.StatusInternalServerError, `{"errorMessages":["child failed"]}`), nil
		}
		return http.DefaultTransport.RoundTrip(r)
	})}
	c := assets.New(&fakeSource{creds: credentials.Credentials{
		JiraURL: srv.URL, Email: assetstest.DefaultEmail, APIToken: assetstest.DefaultToken,
	}}, assets.WithHTTPClient(hc))

	_, err := c.SearchWithDependencies(context.Background(), "objectType = Service", assets.DefaultChildQuery, assets.DependencyOptions{})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, assets.StatusCode(err))
	assert.Contains(t, err.Error(), "ITSM-1")
	assert.Contains(t, err.Error(), "child failed")
}

func TestObjectDependencies_MarshalJSON(t *testing.T) {
	t.Parallel()

	d := assets.ObjectDependencies{
		Object: assets.Object{
			ID: 1, Label: "Billing", ObjectKey: "ITSM-1",
			Extra: map[string]json.RawMessage{"hasAvatar": json.RawMessage("false")},
		},
	}
	out, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Billing", decoded["label"])
	assert.Equal(t, false, decoded["hasAvatar"])
	assert.Equal(t, []any{}, decoded["dependencies"])
}

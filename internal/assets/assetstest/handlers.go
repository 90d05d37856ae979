package assetstest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/lovincyrus/jira-assets/internal/assets"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError answers with the error shape Jira uses.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"errorMessages": []string{msg},
		"errors":        map[string]string{},
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// pageParams reads page and limit the way the API does: 1 and 25 when absent.
func pageParams(r *http.Request) (page, limit int) {
	page, limit = 1, 25
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

func paginate(all []assets.Object, page, limit int) assets.PageResult {
	result := assets.PageResult{
		ObjectEntries:    []assets.Object{},
		ObjectIDs:        []int{},
		TotalFilterCount: len(all),
	}
	start := (page - 1) * limit
	if start < len(all) {
		end := min(start+limit, len(all))
		result.ObjectEntries = all[start:end]
	}
	for _, o := range result.ObjectEntries {
		result.ObjectIDs = append(result.ObjectIDs, o.ID)
	}
	result.Extra = map[string]json.RawMessage{
		"pageNumber": json.RawMessage(strconv.Itoa(page)),
		"pageSize":   json.RawMessage(strconv.Itoa(limit)),
	}
	return result
}

// GET /objectschema/list
func (s *Server) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	schemas := s.Schemas
	if schemas == nil {
		schemas = []assets.Schema{}
	}
	if s.SchemaListEnvelope {
		writeJSON(w, http.StatusOK, map[string]any{"objectschemas": schemas})
		return
	}
	writeJSON(w, http.StatusOK, schemas)
}

// GET /objectschema/{id}
func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	for _, schema := range s.Schemas {
		if schema.ID == id {
			writeJSON(w, http.StatusOK, schema)
			return
		}
	}
	writeError(w, http.StatusNotFound, "No object schema found with id "+strconv.Itoa(id))
}

// GET /objectschema/{id}/objects
func (s *Server) handleListObjects(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	page, limit := pageParams(r)
	writeJSON(w, http.StatusOK, paginate(s.Objects[id], page, limit))
}

// GET /iql/objects
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	iql := r.URL.Query().Get("iql")
	if iql == "" {
		writeError(w, http.StatusBadRequest, "IQL query is required")
		return
	}
	page, limit := pageParams(r)
	writeJSON(w, http.StatusOK, paginate(s.Search[iql], page, limit))
}

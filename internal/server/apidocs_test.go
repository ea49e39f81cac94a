package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/osse101/ChatterBot_Go/internal/database/memory"
)

// Routes served outside the documented API.
var undocumentedRoutes = map[string]bool{
	"/metrics":   true,
	"/swagger/*": true,
}

func TestAPIDocsCoverEveryRoute(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	router, ok := NewRouter(testAPIKey, "test", newTestDeps(memory.NewStore())).(chi.Routes)
	require.True(t, ok)

	served := map[string]bool{}
	err = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if undocumentedRoutes[route] {
			return nil
		}
		path := route
		if path != "/" {
			path = strings.TrimSuffix(path, "/")
		}
		served[method+" "+path] = true

		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "route %s is not documented", path) {
			assert.Contains(t, ops, strings.ToLower(method), "%s %s is not documented", method, path)
		}
		return nil
	})
	require.NoError(t, err)

	for path, ops := range doc.Paths {
		for method := range ops {
			assert.True(t, served[strings.ToUpper(method)+" "+path], "documented %s %s is not served", method, path)
		}
	}
}

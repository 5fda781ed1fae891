package http

import (
	"encoding/json"
	"grammable/docs"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ginParam = regexp.MustCompile(`:(\w+)`)

type swaggerDocument struct {
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readSwaggerDocument(t *testing.T) swaggerDocument {
	t.Helper()
	var doc swaggerDocument
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))
	return doc
}

func TestSwaggerDocumentCoversRoutes(t *testing.T) {
	ts := newTestServer(t)
	doc := readSwaggerDocument(t)

	undocumented := map[string]bool{
		"GET /":                   true,
		"GET /health":             true,
		"GET /metrics":            true,
		"GET /swagger/*any":       true,
		"GET /uploads/*filepath":  true,
		"HEAD /uploads/*filepath": true,
	}

	for _, route := range ts.server.router.Routes() {
		key := route.Method + " " + route.Path
		if undocumented[key] {
			continue
		}
		path := ginParam.ReplaceAllString(route.Path, "{$1}")
		operations, ok := doc.Paths[path]
		if assert.True(t, ok, "missing path %s", path) {
			_, ok = operations[strings.ToLower(route.Method)]
			assert.True(t, ok, "missing operation %s", key)
		}
	}
}

func TestSwaggerDocumentDefinitions(t *testing.T) {
	doc := readSwaggerDocument(t)

	for _, name := range []string{
		"models.Response",
		"models.GramListResponse",
		"models.GramResponse",
		"models.CommentResponse",
		"models.UserResponse",
		"models.LoginResponse",
		"models.LoginRequestBody",
		"models.RegisterRequestBody",
	} {
		assert.Contains(t, doc.Definitions, name)
	}
}

func TestSwaggerUIServesDocument(t *testing.T) {
	ts := newTestServer(t)

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/grams/{id}/comments/new"`)
}

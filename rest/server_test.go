package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rediwo/redi-json/config"
	"github.com/rediwo/redi-json/database"
	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testData = `
CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, password TEXT, created_at DATETIME);
CREATE TABLE posts (id INTEGER PRIMARY KEY, title TEXT, author_id INTEGER);
CREATE TABLE labels (id INTEGER PRIMARY KEY, name TEXT);
CREATE TABLE post_tags (post_id INTEGER, tag_id INTEGER);

INSERT INTO users (id, name, password) VALUES (1, 'Ada', 'secret');
INSERT INTO posts (id, title, author_id) VALUES (10, 'Notes', 1), (11, 'Engines', 1);
INSERT INTO labels (id, name) VALUES (100, 'math'), (101, 'history');
INSERT INTO post_tags (post_id, tag_id) VALUES (10, 101), (10, 100), (11, 100);
`

type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    struct {
		Count int `json:"count"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	return newTestServerWithConfig(t, ServerConfig{})
}

func newTestServerWithConfig(t *testing.T, sc ServerConfig) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	cfg, err := config.Load("../config/testdata/blog.yaml")
	require.NoError(t, err)

	registry := serializer.NewRegistry()
	require.NoError(t, cfg.Register(registry))

	db, err := database.Open(ctx, cfg.Server.Database)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx, testData)
	require.NoError(t, err)

	l := logger.NewNullLogger()
	store := database.NewStore(db, serializer.New(registry, serializer.WithLogger(l)), l)

	sc.Store, sc.Registry, sc.Logger = store, registry, l
	server, err := NewServer(sc)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Router)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, testResponse) {
	t.Helper()

	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result testResponse
	require.NoError(t, json.Unmarshal(body, &result), string(body))
	return resp.StatusCode, result
}

func TestNewServer_RequiresStore(t *testing.T) {
	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)
}

func TestModels(t *testing.T) {
	ts := newTestServer(t)

	status, resp := get(t, ts, "/api")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.Count)

	var names []string
	require.NoError(t, json.Unmarshal(resp.Data, &names))
	assert.ElementsMatch(t, []string{"User", "Post", "Tag"}, names)
}

func TestFindOne_TypeLevelOptions(t *testing.T) {
	ts := newTestServer(t)

	status, resp := get(t, ts, "/api/Post/10")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"id": 10,
		"title": "Notes",
		"author_id": 1,
		"tags": [{"id": 100, "name": "math"}, {"id": 101, "name": "history"}]
	}`, string(resp.Data))

	// Keys keep column order, relationships follow.
	assert.Equal(t, `{"id":10,"title":"Notes","author_id":1,"tags":[{"id":100,"name":"math"},{"id":101,"name":"history"}]}`, string(resp.Data))
}

func TestFindOne_IncludeRelationship(t *testing.T) {
	ts := newTestServer(t)

	status, resp := get(t, ts, "/api/User/1?include=posts&exclude=password,author_id")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"id": 1,
		"name": "Ada",
		"created_at": null,
		"posts": [
			{"id": 10, "title": "Notes", "tags": [{"id": 100, "name": "math"}, {"id": 101, "name": "history"}]},
			{"id": 11, "title": "Engines", "tags": [{"id": 100, "name": "math"}]}
		]
	}`, string(resp.Data))
}

func TestFind_OnlyAndOverride(t *testing.T) {
	ts := newTestServer(t)

	// Call options reach nested tags too.
	status, resp := get(t, ts, "/api/Post?only=id")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, resp.Meta.Count)
	assert.JSONEq(t, `[
		{"id": 10, "tags": [{"id": 100}, {"id": 101}]},
		{"id": 11, "tags": [{"id": 100}]}
	]`, string(resp.Data))

	// Override drops the type-level tags relationship.
	status, resp = get(t, ts, "/api/Post?only=id&override=true&limit=1")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"id": 10}]`, string(resp.Data))
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/Comment", http.StatusNotFound, "NOT_FOUND"},
		{"/api/Comment/1", http.StatusNotFound, "NOT_FOUND"},
		{"/api/Post/99", http.StatusNotFound, "NOT_FOUND"},
		{"/api/Post/abc", http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, resp := get(t, ts, tt.path)
			assert.Equal(t, tt.status, status)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestGraphQLMount(t *testing.T) {
	ts := newTestServerWithConfig(t, ServerConfig{GraphQL: true})

	resp, err := http.Post(ts.URL+"/graphql", "application/json",
		strings.NewReader(`{"query": "{ findUniqueUser(id: \"1\", only: [\"name\"]) }"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data": {"findUniqueUser": {"name": "Ada"}}}`, string(body))

	// Without the flag the route does not exist.
	plain := newTestServer(t)
	resp, err = http.Post(plain.URL+"/graphql", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

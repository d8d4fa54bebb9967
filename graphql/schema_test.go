package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
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
INSERT INTO labels (id, name) VALUES (100, 'math');
INSERT INTO post_tags (post_id, tag_id) VALUES (10, 100);
`

func setup(t *testing.T) (*database.Store, *serializer.Registry) {
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
	return database.NewStore(db, serializer.New(registry, serializer.WithLogger(l)), l), registry
}

func execute(t *testing.T, query string) string {
	t.Helper()

	store, registry := setup(t)
	schema, err := NewSchemaGenerator(store, registry, logger.NewNullLogger()).Generate()
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        *schema,
		RequestString: query,
		Context:       context.Background(),
	})
	require.Empty(t, result.Errors)

	out, err := json.Marshal(result.Data)
	require.NoError(t, err)
	return string(out)
}

func TestModels(t *testing.T) {
	out := execute(t, `{ models }`)
	assert.JSONEq(t, `{"models": ["Post", "Tag", "User"]}`, out)
}

func TestFindUnique(t *testing.T) {
	out := execute(t, `{ findUniqueUser(id: "1", include: ["posts"], exclude: ["password", "author_id", "created_at"]) }`)
	assert.JSONEq(t, `{"findUniqueUser": {
		"id": 1,
		"name": "Ada",
		"posts": [
			{"id": 10, "title": "Notes", "tags": [{"id": 100, "name": "math"}]},
			{"id": 11, "title": "Engines", "tags": []}
		]
	}}`, out)
}

func TestFindMany(t *testing.T) {
	out := execute(t, `{ findManyPost(only: ["title"], override: true, limit: 1) }`)
	assert.JSONEq(t, `{"findManyPost": [{"title": "Notes"}]}`, out)
}

func TestFindUnique_Errors(t *testing.T) {
	store, registry := setup(t)
	schema, err := NewSchemaGenerator(store, registry, nil).Generate()
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        *schema,
		RequestString: `{ findUniquePost(id: "99") }`,
		Context:       context.Background(),
	})
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "record not found")
}

func TestQueryParams(t *testing.T) {
	params, err := queryParams(map[string]any{
		"include":  []any{"posts"},
		"only":     []any{"id"},
		"override": true,
		"limit":    3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, params.Limit)
	assert.Equal(t, true, params.Options[serializer.OverrideKey])
	assert.Equal(t, []string{"id"}, params.Options[serializer.KeyIncludeAttrs])

	_, err = queryParams(map[string]any{"include": []any{1}})
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	store, registry := setup(t)
	h, err := NewHandler(store, registry, nil)
	require.NoError(t, err)

	body := strings.NewReader(`{"query": "{ findUniquePost(id: \"10\", only: [\"title\"]) }"}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data": {"findUniquePost": {"title": "Notes", "tags": [{}]}}}`, rec.Body.String())
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rediwo/redi-json/database"
	"github.com/rediwo/redi-json/schema"
	"github.com/rediwo/redi-json/serializer"
	"github.com/stretchr/objx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requestEcho writes the path of the request it is serialized for
type requestEcho struct{}

func (requestEcho) Serialize(request any, options objx.Map) (*serializer.Document, error) {
	doc := serializer.NewDocument()
	if r, ok := request.(*http.Request); ok {
		doc.Set("path", r.URL.Path)
	}
	return doc, nil
}

func TestRender(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/Echo", nil)

	out, err := Render(r, requestEcho{}, nil)
	require.NoError(t, err)
	doc, ok := out.(*serializer.Document)
	require.True(t, ok)
	path, _ := doc.Get("path")
	assert.Equal(t, "/api/Echo", path)

	out, err = Render(r, []serializer.Serializable{requestEcho{}, requestEcho{}}, nil)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = Render(r, []string{"User"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"User"}, out)
}

func TestRender_Record(t *testing.T) {
	registry := serializer.NewRegistry()
	require.NoError(t, registry.Register(schema.New("Tag").
		AddField(schema.NewField("id").Int64().PrimaryKey().Build()).
		AddField(schema.NewField("label").Build()), nil))

	record := serializer.NewRecord("Tag", map[string]any{"id": int64(1), "label": "go"}).
		WithSerializer(serializer.New(registry))

	out, err := Render(httptest.NewRequest(http.MethodGet, "/", nil), record, objx.Map{"exclude_attrs": []string{"id"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"label": "go"}, out.(*serializer.Document).ToMap())
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: Ghost", serializer.ErrModelNotRegistered), http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: User 9", database.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: id", database.ErrInvalidKey), http.StatusBadRequest, "BAD_REQUEST"},
		{fmt.Errorf("%w: relationships", serializer.ErrMalformedOptions), http.StatusBadRequest, "BAD_REQUEST"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code+" "+tt.err.Error(), func(t *testing.T) {
			status, code := errorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

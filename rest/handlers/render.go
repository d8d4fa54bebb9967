package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rediwo/redi-json/database"
	"github.com/rediwo/redi-json/rest/types"
	"github.com/rediwo/redi-json/serializer"
	"github.com/stretchr/objx"
)

// Render serializes value for the response to r. A Serializable becomes its
// document and a list of them a list of documents. The request is handed to
// every model so it can tailor its own output.
func Render(r *http.Request, value any, options objx.Map) (any, error) {
	switch v := value.(type) {
	case serializer.Serializable:
		return v.Serialize(r, options)
	case []serializer.Serializable:
		docs := make([]*serializer.Document, len(v))
		for i, item := range v {
			doc, err := item.Serialize(r, options)
			if err != nil {
				return nil, err
			}
			docs[i] = doc
		}
		return docs, nil
	default:
		return value, nil
	}
}

// errorStatus maps an error to the HTTP status and error code reported for it
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, serializer.ErrModelNotRegistered), errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, database.ErrInvalidKey), errors.Is(err, serializer.ErrMalformedOptions):
		return http.StatusBadRequest, "BAD_REQUEST"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes the error response matching err
func writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	writeJSON(w, status, types.NewErrorResponse(code, http.StatusText(status), err.Error()))
}

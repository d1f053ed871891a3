package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/application"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

const maxBodyBytes = 1 << 20

type Handler struct{ service *application.Service }

func NewHandler(service *application.Service) *Handler { return &Handler{service: service} }

// decodeJSON reads a JSON body into dst. A value of the wrong JSON type is
// reported against its field; unreadable JSON is reported against "body".
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	err := dec.Decode(dst)
	if err == nil {
		return nil
	}
	ve := &domain.ValidationError{}
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		ve.Add("body", "request body is empty")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		ve.Add(field, "must be "+jsonKind(typeErr.Type))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		ve.Add("body", "must be valid JSON")
	default:
		ve.Add("body", "contains a value of the wrong format")
	}
	return ve
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Map, reflect.Struct:
		return "an object"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	default:
		return "a valid value"
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		ve := &domain.ValidationError{}
		ve.Add(name, "must be a positive integer")
		return 0, ve
	}
	return id, nil
}

func errUnauthorized(cause error) error {
	return fmt.Errorf("%w: %v", domain.ErrUnauthorized, cause)
}

package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"ENW_BACK-END/internal/apperr"
)

// MaxBodyBytes bounds every JSON request body.
const MaxBodyBytes = 10 << 20

// DecodeJSONRequest decodes the request body into dst. Type mismatches are
// reported per field as validation errors; malformed JSON is a 400.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		maxErr    *http.MaxBytesError
	)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return apperr.BadRequest("Request body is required")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return apperr.BadRequest("Request body must be a JSON object")
		}
		return &apperr.ValidationError{
			Fields:  map[string]string{field: fmt.Sprintf("%s must be a %s", field, jsonKind(typeErr.Type.Kind().String()))},
			Message: "Validation failed",
		}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.BadRequest("Malformed JSON body")
	case errors.As(err, &maxErr):
		return apperr.New(http.StatusRequestEntityTooLarge, "Request body too large")
	default:
		return apperr.BadRequest("Invalid request body")
	}
}

func jsonKind(kind string) string {
	switch {
	case kind == "bool":
		return "boolean"
	case strings.HasPrefix(kind, "int"), strings.HasPrefix(kind, "uint"), strings.HasPrefix(kind, "float"):
		return "number"
	case kind == "slice", kind == "array":
		return "list"
	case kind == "struct", kind == "map":
		return "object"
	default:
		return kind
	}
}

// QueryInt reads an integer query parameter. Missing or non-numeric values
// yield def.
func QueryInt(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// QueryIntStrict reads an optional integer query parameter that must lie in
// [min, max].
func QueryIntStrict(r *http.Request, key string, def, min, max int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		msg := fmt.Sprintf("%s must be an integer of at least %d", key, min)
		if max < int(^uint(0)>>1) {
			msg = fmt.Sprintf("%s must be an integer between %d and %d", key, min, max)
		}
		return 0, &apperr.ValidationError{Fields: map[string]string{key: msg}, Message: "Validation failed"}
	}
	return n, nil
}

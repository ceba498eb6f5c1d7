package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
)

// DecodeJSON decodes the request body into dst and validates it. Any problem
// is returned as field details suitable for ValidationFailed.
func DecodeJSON(r *http.Request, dst any) []ErrorDetail {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return []ErrorDetail{decodeErrorDetail(err)}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return []ErrorDetail{decodeErrorDetail(err)}
		}
		return []ErrorDetail{{Field: "body", Message: "body must contain a single JSON object"}}
	}
	return ValidateStruct(dst)
}

func decodeErrorDetail(err error) ErrorDetail {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return ErrorDetail{Field: "body", Message: "body is required"}
	case errors.As(err, &syntaxErr):
		return ErrorDetail{Field: "body", Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return ErrorDetail{Field: field, Message: fmt.Sprintf("%s must be %s", field, jsonKind(typeErr.Type))}
	case errors.As(err, &maxBytesErr):
		return ErrorDetail{Field: "body", Message: fmt.Sprintf("body must not exceed %d bytes", maxBytesErr.Limit)}
	default:
		return ErrorDetail{Field: "body", Message: "invalid JSON body"}
	}
}

// jsonKind names t the way a client sees it in JSON.
func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "a JSON array"
	default:
		return "a JSON object"
	}
}

// PathInt parses the named path value as an integer.
func PathInt(r *http.Request, name string) (int, *ErrorDetail) {
	raw := r.PathValue(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ErrorDetail{Field: name, Message: fmt.Sprintf("%s must be an integer", name)}
	}
	return v, nil
}

package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxRequestBodyBytes bounds the size of JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// ErrMalformedJSON is returned by DecodeJSON when the body cannot be decoded.
var ErrMalformedJSON = errors.New("malformed JSON body")

// DecodeJSON decodes a single JSON value from the request body into v.
// Any decoding problem, including an empty or oversized body, is reported
// as ErrMalformedJSON wrapping the decoder error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	dec := json.NewDecoder(body)

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON value", ErrMalformedJSON)
	}
	return nil
}

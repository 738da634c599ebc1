package graph

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/vtmaltego/pkg/errors"
)

// envelope is the API v3 {data: {attributes: ...}} wrapper. Pointers let
// Decode tell a missing key from an empty object.
type envelope[T any] struct {
	Data *struct {
		Attributes *T `json:"attributes"`
	} `json:"data"`
}

// Decode reads a graph response body and returns its attributes.
// A body without data or data.attributes yields a MALFORMED_RESPONSE error.
func Decode(r io.Reader) (*Graph, error) {
	return decode[Graph](r, "graph")
}

// DecodeURL reads a URL object response body. Besides the envelope check it
// requires the url attribute, since an export row cannot be built without it.
func DecodeURL(r io.Reader) (*URL, error) {
	u, err := decode[URL](r, "url")
	if err != nil {
		return nil, err
	}
	if u.URL == "" {
		return nil, errors.New(errors.ErrCodeMalformedResponse, "no url attribute in the url API response")
	}
	return u, nil
}

func decode[T any](r io.Reader, what string) (*T, error) {
	var env envelope[T]
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedResponse, err, "decode %s response", what)
	}
	if env.Data == nil || env.Data.Attributes == nil {
		return nil, errors.New(errors.ErrCodeMalformedResponse, "no data in the %s API response", what)
	}
	return env.Data.Attributes, nil
}

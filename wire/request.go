package wire

import (
	"net/http"
	"net/url"

	"renkon/pathmatch"
)

// Request is the typed envelope handed to actions and response factories.
// Body holds the raw bytes; Decode parses them with the endpoint's codec.
type Request struct {
	Method      string
	Path        pathmatch.Path
	Params      pathmatch.Params
	Query       url.Values
	Header      http.Header
	Body        []byte
	ContentType ContentType
	codec       Codec
}

// NewRequest builds a request envelope for the given content-type family
// using its built-in codec.
func NewRequest(method string, path pathmatch.Path, ct ContentType) *Request {
	return &Request{
		Method:      method,
		Path:        path,
		Query:       url.Values{},
		Header:      http.Header{},
		ContentType: ct,
		codec:       CodecFor(ct),
	}
}

// WithCodec replaces the body codec.
func (r *Request) WithCodec(codec Codec) *Request {
	r.codec = codec
	return r
}

// Decode parses the raw body into v. Failures surface as request codec
// errors (400).
func (r *Request) Decode(v any) error {
	codec := r.codec
	if codec == nil {
		codec = CodecFor(r.ContentType)
	}
	if err := codec.Decode(r.Body, v); err != nil {
		return ErrRequestCodec(err.Error())
	}
	return nil
}

// Param returns a bound path parameter by name.
func (r *Request) Param(name string) string {
	v, _ := r.Params.Get(name)
	return v
}

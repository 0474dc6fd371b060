package wire

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"renkon/ident"
)

// StreamFunc writes a long-lived response body. The context is cancelled
// when the client goes away or the scenario's maximum stream lifetime is
// reached.
type StreamFunc func(ctx context.Context, w io.Writer) error

// Response is the envelope produced by an action or response factory.
type Response struct {
	ID      ident.Response
	Status  int
	Header  http.Header
	Trailer http.Header
	// Content is the body payload: nil, []byte, string, json.RawMessage,
	// or a value the endpoint's codec can encode (struct, proto.Message).
	Content any
	// ContentType overrides the outgoing Content-Type header. Empty means
	// a Content-Type set in Header is used, or failing that the endpoint's
	// canonical response type for the request's content-type variant.
	ContentType string
	// Stream, when set, takes precedence over Content and is written
	// incrementally under the scenario's stream lifetime cap.
	Stream StreamFunc
}

// NewResponse builds a response envelope with the given status and content.
func NewResponse(id ident.Response, status int, content any) *Response {
	if status == 0 {
		status = http.StatusOK
	}
	return &Response{
		ID:      id,
		Status:  status,
		Header:  http.Header{},
		Content: content,
	}
}

// SetHeader sets an outgoing header and returns the response for chaining.
func (r *Response) SetHeader(key, value string) *Response {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(key, value)
	return r
}

// SetTrailer sets an outgoing trailer and returns the response.
func (r *Response) SetTrailer(key, value string) *Response {
	if r.Trailer == nil {
		r.Trailer = http.Header{}
	}
	r.Trailer.Set(key, value)
	return r
}

// Encode renders the content into body bytes using the given codec. Byte
// and string contents pass through unencoded. Failures surface as response
// codec errors (500).
func (r *Response) Encode(codec Codec) ([]byte, error) {
	switch content := r.Content.(type) {
	case nil:
		return nil, nil
	case []byte:
		return content, nil
	case json.RawMessage:
		return content, nil
	case string:
		return []byte(content), nil
	default:
		data, err := codec.Encode(content)
		if err != nil {
			return nil, ErrResponseCodec(err.Error())
		}
		return data, nil
	}
}

package wire

import (
	"errors"
	"net/http"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"renkon/pathmatch"
)

// ── content types ─────────────────────────────────────────────────────────────

func TestJSON_Accepts(t *testing.T) {
	cases := []struct {
		header string
		want   bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"text/json", true},
		{"Application/JSON", true},
		{"", true}, // bodiless requests carry no Content-Type
		{"application/xml", false},
		{"application/grpc", false},
	}
	for _, c := range cases {
		if got := JSON.Accepts(c.header); got != c.want {
			t.Errorf("JSON.Accepts(%q) = %v, want %v", c.header, got, c.want)
		}
	}
}

func TestProtobuf_AcceptsAllVariants(t *testing.T) {
	accepted := []string{
		"application/grpc",
		"application/grpc+proto",
		"application/grpc-web+proto",
		"application/grpc-web",
		"application/grpc-web-text+proto",
		"application/grpc-web-text",
	}
	for _, header := range accepted {
		if !Protobuf.Accepts(header) {
			t.Errorf("Protobuf must accept %q", header)
		}
	}
	if Protobuf.Accepts("application/json") {
		t.Error("Protobuf must reject application/json")
	}
}

func TestCanonical(t *testing.T) {
	if got := JSON.Canonical(); got != "application/json" {
		t.Errorf("JSON canonical = %q", got)
	}
	if got := Protobuf.Canonical(); got != "application/grpc" {
		t.Errorf("Protobuf canonical = %q", got)
	}
}

func TestCanonicalFor_EchoesVariant(t *testing.T) {
	cases := []struct {
		request string
		want    string
	}{
		{"application/grpc", "application/grpc"},
		{"application/grpc+proto", "application/grpc"},
		{"application/grpc-web", "application/grpc-web+proto"},
		{"application/grpc-web+proto", "application/grpc-web+proto"},
		{"application/grpc-web-text", "application/grpc-web-text+proto"},
		{"application/grpc-web-text+proto", "application/grpc-web-text+proto"},
		{"", "application/grpc"},
	}
	for _, c := range cases {
		if got := Protobuf.CanonicalFor(c.request); got != c.want {
			t.Errorf("CanonicalFor(%q) = %q, want %q", c.request, got, c.want)
		}
	}
	if got := JSON.CanonicalFor("text/json"); got != "application/json" {
		t.Errorf("JSON CanonicalFor = %q", got)
	}
}

// ── codecs ────────────────────────────────────────────────────────────────────

func TestJSONCodec_RoundTrip(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	data, err := JSONCodec{}.Encode(payload{Name: "x"})
	if err != nil {
		t.Fatal(err)
	}
	var decoded payload
	if err := (JSONCodec{}).Decode(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Name != "x" {
		t.Errorf("decoded name = %q", decoded.Name)
	}
}

func TestProtobufCodec_RoundTrip(t *testing.T) {
	data, err := ProtobufCodec{}.Encode(wrapperspb.String("hello"))
	if err != nil {
		t.Fatal(err)
	}
	var decoded wrapperspb.StringValue
	if err := (ProtobufCodec{}).Decode(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.GetValue() != "hello" {
		t.Errorf("decoded = %q, want hello", decoded.GetValue())
	}
}

func TestProtobufCodec_NotAMessage(t *testing.T) {
	if _, err := (ProtobufCodec{}).Encode("plain string"); err == nil {
		t.Error("expected error encoding a non-message")
	}
	if err := (ProtobufCodec{}).Decode([]byte{}, &struct{}{}); err == nil {
		t.Error("expected error decoding into a non-message")
	}
}

func TestCodecFor(t *testing.T) {
	if _, ok := CodecFor(JSON).(JSONCodec); !ok {
		t.Error("expected JSONCodec for json")
	}
	if _, ok := CodecFor(Protobuf).(ProtobufCodec); !ok {
		t.Error("expected ProtobufCodec for protobuf")
	}
}

// ── request envelope ──────────────────────────────────────────────────────────

func TestRequest_DecodeJSON(t *testing.T) {
	req := NewRequest(http.MethodPost, pathmatch.New("/accounts"), JSON)
	req.Body = []byte(`{"name":"x"}`)

	var decoded struct {
		Name string `json:"name"`
	}
	if err := req.Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Name != "x" {
		t.Errorf("name = %q", decoded.Name)
	}
}

func TestRequest_DecodeFailureIsRequestCodecError(t *testing.T) {
	req := NewRequest(http.MethodPost, pathmatch.New("/accounts"), JSON)
	req.Body = []byte("{broken")

	var decoded map[string]any
	err := req.Decode(&decoded)
	if err == nil {
		t.Fatal("expected decode error")
	}
	werr := From(err)
	if werr.Kind != KindCodec {
		t.Errorf("kind = %q, want codec-error", werr.Kind)
	}
	if werr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", werr.Status)
	}
}

// ── response envelope ─────────────────────────────────────────────────────────

func TestResponse_DefaultsStatusToOK(t *testing.T) {
	resp := NewResponse("r", 0, nil)
	if resp.Status != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.Status)
	}
}

func TestResponse_EncodePassthrough(t *testing.T) {
	resp := NewResponse("r", 200, []byte("raw"))
	data, err := resp.Encode(JSONCodec{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "raw" {
		t.Errorf("encoded = %q, want raw bytes unchanged", data)
	}

	resp = NewResponse("r", 200, "text")
	data, err = resp.Encode(JSONCodec{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "text" {
		t.Errorf("encoded = %q, want text unchanged", data)
	}
}

func TestResponse_EncodeStructViaCodec(t *testing.T) {
	resp := NewResponse("r", 200, map[string]int{"balance": 0})
	data, err := resp.Encode(JSONCodec{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"balance":0}` {
		t.Errorf("encoded = %s", data)
	}
}

func TestResponse_EncodeFailureIsResponseCodecError(t *testing.T) {
	resp := NewResponse("r", 200, func() {})
	_, err := resp.Encode(JSONCodec{})
	if err == nil {
		t.Fatal("expected encode error")
	}
	werr := From(err)
	if werr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", werr.Status)
	}
}

func TestResponse_HeaderAndTrailerChaining(t *testing.T) {
	resp := NewResponse("r", 200, nil).
		SetHeader("X-Custom", "a").
		SetTrailer("grpc-status", "0")
	if got := resp.Header.Get("X-Custom"); got != "a" {
		t.Errorf("header = %q", got)
	}
	if got := resp.Trailer.Get("grpc-status"); got != "0" {
		t.Errorf("trailer = %q", got)
	}
}

// ── error taxonomy ────────────────────────────────────────────────────────────

func TestErrorStatuses(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
		kind   ErrorKind
	}{
		{ErrScenarioHeaderMissing("r"), http.StatusForbidden, KindScenarioHeaderMissing},
		{ErrScenarioUnknown("r"), http.StatusForbidden, KindScenarioUnknown},
		{ErrEndpointNotInScenario("r"), http.StatusInternalServerError, KindEndpointNotInScenario},
		{ErrNoActionsConfigured("r"), http.StatusNotFound, KindNoActionsConfigured},
		{ErrUnknownActionType("r"), http.StatusInternalServerError, KindUnknownActionType},
		{ErrResponseNotFound("r"), http.StatusInternalServerError, KindResponseNotFound},
		{ErrPipelineLooped("r"), http.StatusInternalServerError, KindPipelineLooped},
		{ErrConfigPropertyMissing("r"), http.StatusInternalServerError, KindConfigPropertyMissing},
		{ErrConfigTypeMismatch("r"), http.StatusInternalServerError, KindConfigTypeMismatch},
		{ErrRequestCodec("r"), http.StatusBadRequest, KindCodec},
		{ErrResponseCodec("r"), http.StatusInternalServerError, KindCodec},
		{ErrUnsupportedMediaType("r"), http.StatusUnsupportedMediaType, KindUnsupportedMediaType},
	}
	for _, c := range cases {
		if c.err.Status != c.status {
			t.Errorf("%s: status = %d, want %d", c.err.Kind, c.err.Status, c.status)
		}
		if c.err.Kind != c.kind {
			t.Errorf("kind = %q, want %q", c.err.Kind, c.kind)
		}
	}
}

func TestFrom_PassesThroughTaxonomyErrors(t *testing.T) {
	original := ErrScenarioUnknown("'ghost' does not exist")
	if got := From(original); got != original {
		t.Error("From must return the original taxonomy error")
	}
	wrapped := errorsJoin(original)
	if got := From(wrapped); got != original {
		t.Error("From must unwrap to the taxonomy error")
	}
}

func errorsJoin(err error) error {
	return &wrapError{err}
}

type wrapError struct{ inner error }

func (w *wrapError) Error() string { return "wrapped: " + w.inner.Error() }
func (w *wrapError) Unwrap() error { return w.inner }

func TestFrom_ClassifiesUnknownAsInternal(t *testing.T) {
	werr := From(errors.New("boom"))
	if werr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", werr.Status)
	}
	if werr.Reason != "boom" {
		t.Errorf("reason = %q, want boom", werr.Reason)
	}
}

// ── gRPC status mapping ───────────────────────────────────────────────────────

func TestGRPCCode(t *testing.T) {
	cases := []struct {
		status int
		want   codes.Code
	}{
		{http.StatusOK, codes.OK},
		{http.StatusForbidden, codes.PermissionDenied},
		{http.StatusNotFound, codes.NotFound},
		{http.StatusBadRequest, codes.InvalidArgument},
		{http.StatusUnsupportedMediaType, codes.InvalidArgument},
		{http.StatusInternalServerError, codes.Internal},
		{http.StatusTeapot, codes.Internal},
	}
	for _, c := range cases {
		if got := GRPCCode(c.status); got != c.want {
			t.Errorf("GRPCCode(%d) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestGRPCStatus(t *testing.T) {
	st := GRPCStatus(ErrScenarioUnknown("'ghost' does not exist"))
	if st.Code() != codes.PermissionDenied {
		t.Errorf("code = %v, want PermissionDenied", st.Code())
	}
	if st.Message() != "'ghost' does not exist" {
		t.Errorf("message = %q", st.Message())
	}
}

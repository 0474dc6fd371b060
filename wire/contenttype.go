// Package wire holds the request/response envelope model shared by
// endpoints, actions, and the server: content-type negotiation, the
// pluggable body codecs, and the error taxonomy.
package wire

import "strings"

// ContentType tags an endpoint's request or response body family.
type ContentType string

const (
	// JSON bodies: application/json (canonical) and text/json.
	JSON ContentType = "json"
	// Protobuf bodies: the gRPC, gRPC-web, and gRPC-web-text variants.
	Protobuf ContentType = "protobuf"
)

// Canonical media-type headers per variant.
const (
	MediaJSON            = "application/json"
	MediaTextJSON        = "text/json"
	MediaGRPC            = "application/grpc"
	MediaGRPCProto       = "application/grpc+proto"
	MediaGRPCWebProto    = "application/grpc-web+proto"
	MediaGRPCWeb         = "application/grpc-web"
	MediaGRPCWebText     = "application/grpc-web-text+proto"
	MediaGRPCWebTextBare = "application/grpc-web-text"
)

// Canonical returns the default outgoing Content-Type header value.
func (c ContentType) Canonical() string {
	if c == Protobuf {
		return MediaGRPC
	}
	return MediaJSON
}

// Accepts reports whether the given Content-Type header value belongs to
// this family. An empty header is accepted: bodiless requests carry none.
func (c ContentType) Accepts(header string) bool {
	media := normalizeMedia(header)
	if media == "" {
		return true
	}
	switch c {
	case JSON:
		return media == MediaJSON || media == MediaTextJSON
	case Protobuf:
		switch media {
		case MediaGRPC, MediaGRPCProto, MediaGRPCWebProto, MediaGRPCWeb,
			MediaGRPCWebText, MediaGRPCWebTextBare:
			return true
		}
	}
	return false
}

// CanonicalFor returns the outgoing Content-Type header matching the
// variant the request arrived with: a grpc-web request is answered with the
// grpc-web canonical form, not application/grpc.
func (c ContentType) CanonicalFor(requestHeader string) string {
	if c != Protobuf {
		return c.Canonical()
	}
	switch normalizeMedia(requestHeader) {
	case MediaGRPCWebProto, MediaGRPCWeb:
		return MediaGRPCWebProto
	case MediaGRPCWebText, MediaGRPCWebTextBare:
		return MediaGRPCWebText
	default:
		return MediaGRPC
	}
}

// normalizeMedia strips media-type parameters (e.g. "; charset=utf-8") and
// lowercases the bare type.
func normalizeMedia(header string) string {
	media := header
	if idx := strings.Index(media, ";"); idx >= 0 {
		media = media[:idx]
	}
	return strings.ToLower(strings.TrimSpace(media))
}

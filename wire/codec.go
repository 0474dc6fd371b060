package wire

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Codec encodes and decodes message bodies for one content-type family.
// Implementations are pluggable; the built-ins cover JSON and Protobuf.
type Codec interface {
	// Encode renders v into body bytes.
	Encode(v any) ([]byte, error)
	// Decode parses body bytes into v.
	Decode(data []byte, v any) error
}

// CodecFor returns the built-in codec for a content-type family.
func CodecFor(ct ContentType) Codec {
	if ct == Protobuf {
		return ProtobufCodec{}
	}
	return JSONCodec{}
}

// JSONCodec is the built-in JSON body codec.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}
	return data, nil
}

func (JSONCodec) Decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	return nil
}

// ProtobufCodec is the built-in Protobuf body codec. It consumes and
// produces raw message bytes; grpc-web-text bodies are not base64-decoded
// first.
type ProtobufCodec struct{}

func (ProtobufCodec) Encode(v any) ([]byte, error) {
	msg, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("protobuf encode: %T is not a proto.Message", v)
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("protobuf encode: %w", err)
	}
	return data, nil
}

func (ProtobufCodec) Decode(data []byte, v any) error {
	msg, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("protobuf decode: %T is not a proto.Message", v)
	}
	if err := proto.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("protobuf decode: %w", err)
	}
	return nil
}

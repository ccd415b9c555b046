package api

import (
	"encoding/json"
	"fmt"
)

// JSONCodec is a connect.Codec for the plain Go messages of this package. It replaces
// Connect's built-in "json" codec, which only handles protobuf messages.
//
// The messages mirror a divvy.v1 proto package: field names, camelCase JSON names and
// GetBillId accessors match what protoc-gen-go and protoc-gen-connect-go would emit.
// Once a divvy/v1/bill.proto is generated with buf, the generated types can replace
// this package and apiconnect, and this codec can be dropped in favour of Connect's.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string {
	return "json"
}

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body leaves msg at its zero value.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}

// MarshalStable implements connect's stable codec, used for idempotent GET requests.
// encoding/json writes struct fields in declaration order, so output is deterministic.
func (c JSONCodec) MarshalStable(msg any) ([]byte, error) {
	return c.Marshal(msg)
}

// IsBinary reports that the encoding is text.
func (JSONCodec) IsBinary() bool {
	return false
}

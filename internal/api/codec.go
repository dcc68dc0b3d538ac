// Package api defines the Connect RPC surface: procedure names, request and
// response messages, handler constructors and clients.
//
// Messages are plain Go structs carried by a JSON codec, so both the Connect
// protocol and plain `curl -H 'Content-Type: application/json'` work.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// JSONCodec marshals messages with encoding/json.
// It registers under the "json" name and replaces Connect's protojson codec.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (JSONCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}

package gateway

import (
	"encoding/json"
)

const codecName = "json"

// jsonCodec encodes gRPC messages as JSON. Requests and responses are plain
// Go structs, so no generated message types are needed.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return codecName }

package apiconnect

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

const (
	codecNameJSON        = "json"
	codecNameJSONCharset = "json; charset=utf-8"
)

// jsonCodec marshals plain Go messages with encoding/json. It replaces
// Connect's protojson codec under the same names, so clients speaking the
// Connect JSON protocol work unchanged.
type jsonCodec struct {
	name string
}

var _ connect.Codec = jsonCodec{}

func (c jsonCodec) Name() string {
	return c.name
}

func (c jsonCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (c jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", msg, err)
	}
	return nil
}

// WithJSONCodec registers the JSON codec on a handler or client.
func WithJSONCodec() connect.Option {
	return connect.WithOptions(
		connect.WithCodec(jsonCodec{name: codecNameJSONCharset}),
		connect.WithCodec(jsonCodec{name: codecNameJSON}),
	)
}

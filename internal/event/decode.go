package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload of an event as T. In-process events carry
// T (or *T) directly; events read back from the dead-letter file carry raw
// JSON or the generic map produced by encoding/json.
func DecodePayload[T any](input any) (T, error) {
	var out T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf("%w: nil %T", ErrPayloadMismatch, v)
		}
		return *v, nil
	case json.RawMessage:
		return out, unmarshalPayload(v, &out)
	case []byte:
		return out, unmarshalPayload(v, &out)
	case nil:
		return out, fmt.Errorf("%w: missing payload", ErrPayloadMismatch)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrPayloadMismatch, err)
	}
	return out, unmarshalPayload(data, &out)
}

func unmarshalPayload[T any](data []byte, out *T) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrPayloadMismatch, err)
	}
	return nil
}

package codec

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// JSON is the default, textual encoding.
type JSON struct{}

// Encode implements Encoder.
func (JSON) Encode(v any) ([]byte, error) {
	js, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return js, nil
}

// Decode implements Encoder.
func (JSON) Decode(data []byte, v any) error {
	return errors.WithStack(json.Unmarshal(data, v))
}

// MIME implements Encoder.
func (JSON) MIME() string { return MIMEJSON }

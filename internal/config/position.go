package config

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/invopop/jsonschema"
	jsoniter "github.com/json-iterator/go"
	"github.com/vmihailenco/msgpack/v5"
)

// Position is a point in meters. It encodes as an [x, y, z] array in every
// wire format, matching the HCL tuple form.
type Position r3.Vector

// Vector returns p as an r3.Vector.
func (p Position) Vector() r3.Vector { return r3.Vector(p) }

func (p Position) array() [3]float64 { return [3]float64{p.X, p.Y, p.Z} }

func (p *Position) set(v []float64) error {
	if len(v) != 3 {
		return fmt.Errorf("position must have 3 elements, got %d", len(v))
	}
	*p = Position{X: v[0], Y: v[1], Z: v[2]}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Position) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(p.array())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Position) UnmarshalJSON(data []byte) error {
	var v []float64
	if err := jsoniter.Unmarshal(data, &v); err != nil {
		return err
	}
	return p.set(v)
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (p Position) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(p.array())
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (p *Position) DecodeMsgpack(dec *msgpack.Decoder) error {
	var v []float64
	if err := dec.Decode(&v); err != nil {
		return err
	}
	return p.set(v)
}

// JSONSchema describes the array form.
func (Position) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Items:       &jsonschema.Schema{Type: "number"},
		MinItems:    3,
		MaxItems:    3,
		Description: "[x, y, z] in meters",
	}
}

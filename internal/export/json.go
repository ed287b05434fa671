package export

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vk/legcfg/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonEncoder struct{}

func (jsonEncoder) ContentType() string { return "application/json" }

func (jsonEncoder) Encode(w io.Writer, cfgs ...*config.Articulation) error {
	data, err := json.MarshalIndent(document(cfgs), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// msgpackEncoder uses the JSON field names so both formats share one schema.
type msgpackEncoder struct{}

func (msgpackEncoder) ContentType() string { return "application/msgpack" }

func (msgpackEncoder) Encode(w io.Writer, cfgs ...*config.Articulation) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	enc.SetSortMapKeys(true)
	if err := enc.Encode(document(cfgs)); err != nil {
		return fmt.Errorf("failed to encode msgpack: %w", err)
	}
	return nil
}

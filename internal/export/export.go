// Package export renders articulation records in the output formats of the
// tool. Each format is an Encoder looked up by name with ForFormat.
//
// The document formats (json, msgpack) write a single object for one record
// and an array for several, so `legcfg -format json lite3` yields the record
// itself.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vk/legcfg/internal/config"
	"github.com/vk/legcfg/internal/hcl"
)

// Encoder writes one or more records to w.
type Encoder interface {
	// ContentType is the MIME type used when the output is served over HTTP.
	ContentType() string
	Encode(w io.Writer, cfgs ...*config.Articulation) error
}

// DefaultFormat is used when no format is requested.
const DefaultFormat = "table"

var encoders = map[string]Encoder{
	"hcl":     hclEncoder{},
	"json":    jsonEncoder{},
	"msgpack": msgpackEncoder{},
	"schema":  schemaEncoder{},
	"table":   tableEncoder{},
}

// Formats returns the supported format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForFormat returns the encoder for the named format.
func ForFormat(name string) (Encoder, error) {
	enc, ok := encoders[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format %q: must be one of %s", name, strings.Join(Formats(), ", "))
	}
	return enc, nil
}

// document returns what a document format serializes: the record itself
// for one record, the slice otherwise.
func document(cfgs []*config.Articulation) any {
	if len(cfgs) == 1 {
		return cfgs[0]
	}
	if cfgs == nil {
		return []*config.Articulation{}
	}
	return cfgs
}

type hclEncoder struct{}

func (hclEncoder) ContentType() string { return "text/plain; charset=utf-8" }

func (hclEncoder) Encode(w io.Writer, cfgs ...*config.Articulation) error {
	data, err := hcl.Encode(cfgs...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/vk/legcfg/internal/config"
)

// tableEncoder prints one table per record with a row per actuator group.
type tableEncoder struct{}

func (tableEncoder) ContentType() string { return "text/plain; charset=utf-8" }

func (tableEncoder) Encode(w io.Writer, cfgs ...*config.Articulation) error {
	for i, cfg := range cfgs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle(title(cfg))
		t.AppendHeader(table.Row{"Group", "Model", "Joints", "Effort", "Velocity", "Stiffness", "Damping", "Friction", "Armature", "Delay"})
		for _, name := range cfg.ActuatorNames() {
			a := cfg.Actuators[name]
			t.AppendRow(table.Row{
				name,
				string(a.Model),
				strings.Join(a.JointNamesExpr, " "),
				a.EffortLimit,
				a.VelocityLimit,
				a.Stiffness,
				a.Damping,
				a.Friction,
				a.Armature,
				fmt.Sprintf("%d-%d", a.MinDelay, a.MaxDelay),
			})
		}
		t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d joints", len(cfg.Joints))})
		t.Render()
	}
	return nil
}

func title(cfg *config.Articulation) string {
	p := cfg.InitState.Pos
	s := fmt.Sprintf("%s  %s  pos=(%g, %g, %g)  soft_limit=%g",
		cfg.Name, cfg.Spawn.USDPath, p.X, p.Y, p.Z, cfg.SoftJointPosLimitFactor)
	if cfg.PrimPath != "" {
		s += "  prim=" + cfg.PrimPath
	}
	return s
}

// schemaEncoder ignores the records and writes the JSON Schema of the
// record type.
type schemaEncoder struct{}

func (schemaEncoder) ContentType() string { return "application/schema+json" }

func (schemaEncoder) Encode(w io.Writer, _ ...*config.Articulation) error {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Schema returns the JSON Schema of config.Articulation as produced by the
// json format.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&config.Articulation{})
}

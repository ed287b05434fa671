// Package urdf reads the joint manifest of a robot from a URDF document.
// Only joints and their limits are read; links, geometry and inertia are
// ignored.
package urdf

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/vk/legcfg/internal/config"
)

// Extension is the file extension associated with URDF files.
const Extension = ".urdf"

type document struct {
	XMLName xml.Name `xml:"robot"`
	Name    string   `xml:"name,attr"`
	Joints  []joint  `xml:"joint"`
}

type joint struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Limit *limit `xml:"limit,omitempty"`
}

// limit positions are in radians for revolute joints and meters for
// prismatic ones.
type limit struct {
	Lower    float64 `xml:"lower,attr"`
	Upper    float64 `xml:"upper,attr"`
	Effort   float64 `xml:"effort,attr"`
	Velocity float64 `xml:"velocity,attr"`
}

// Manifest is the result of reading a URDF document.
type Manifest struct {
	Robot  string
	Joints []config.Joint
}

// ParseFile reads and parses the URDF document at path.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URDF file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse converts URDF XML into a joint manifest, in document order. Fixed and
// floating joints are skipped since no actuator can drive them.
func Parse(data []byte) (*Manifest, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse URDF: %w", err)
	}

	m := &Manifest{Robot: doc.Name}
	for _, j := range doc.Joints {
		if j.Name == "" {
			return nil, fmt.Errorf("joint without a name")
		}
		out := config.Joint{Name: j.Name}
		switch j.Type {
		case "fixed", "floating", "planar":
			continue
		case "continuous":
			out.Type = config.Continuous
		case "revolute":
			out.Type = config.Revolute
		case "prismatic":
			out.Type = config.Prismatic
		default:
			return nil, fmt.Errorf("joint %q: unsupported joint type %q", j.Name, j.Type)
		}

		if j.Limit != nil {
			out.Effort = j.Limit.Effort
			out.Velocity = j.Limit.Velocity
			if out.Type != config.Continuous {
				out.HasLimits = true
				out.Lower, out.Upper = j.Limit.Lower, j.Limit.Upper
			}
		} else if out.Type != config.Continuous {
			return nil, fmt.Errorf("joint %q: %s joint requires a <limit> element", j.Name, j.Type)
		}
		m.Joints = append(m.Joints, out)
	}
	return m, nil
}

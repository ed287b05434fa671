// Package jointmatch resolves joint-name regular expressions against a robot's
// joint manifest.
//
// Patterns always match the whole joint name, as the simulator does: ".*_Knee_joint"
// matches "FL_Knee_joint" but not "FL_Knee_joint_2". Character classes are
// passed through unchanged, so "[X,Y]" also matches a literal comma.
package jointmatch

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"sort"
	"strings"
)

// Matcher is a compiled, ordered list of full-match joint-name patterns.
type Matcher struct {
	patterns []string
	res      []*regexp.Regexp
}

// Compile anchors and compiles every pattern.
func Compile(patterns ...string) (*Matcher, error) {
	m := &Matcher{
		patterns: append([]string(nil), patterns...),
		res:      make([]*regexp.Regexp, len(patterns)),
	}
	for i, p := range patterns {
		// p must parse on its own, or an unbalanced ")|(" escapes the anchors.
		if _, err := syntax.Parse(p, syntax.Perl); err != nil {
			return nil, fmt.Errorf("invalid joint pattern %q: %w", p, err)
		}
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("invalid joint pattern %q: %w", p, err)
		}
		m.res[i] = re
	}
	return m, nil
}

// Patterns returns the source patterns in their original order.
func (m *Matcher) Patterns() []string {
	return append([]string(nil), m.patterns...)
}

// Match reports whether any pattern matches name.
func (m *Matcher) Match(name string) bool {
	return m.Index(name) >= 0
}

// Index returns the index of the first pattern matching name, or -1.
func (m *Matcher) Index(name string) int {
	for i, re := range m.res {
		if re.MatchString(name) {
			return i
		}
	}
	return -1
}

// ResolveNames returns the joints matched by any of the patterns, in manifest
// order. Every pattern must match at least one joint.
func ResolveNames(patterns []string, joints []string) ([]string, error) {
	m, err := Compile(patterns...)
	if err != nil {
		return nil, err
	}

	used := make([]bool, len(patterns))
	var matched []string
	for _, j := range joints {
		hit := false
		for i, re := range m.res {
			if re.MatchString(j) {
				used[i] = true
				hit = true
			}
		}
		if hit {
			matched = append(matched, j)
		}
	}

	var unmatched []string
	for i, ok := range used {
		if !ok {
			unmatched = append(unmatched, patterns[i])
		}
	}
	if len(unmatched) > 0 {
		return nil, fmt.Errorf("joint patterns match no joint: %s", quoteAll(unmatched))
	}
	return matched, nil
}

// ResolveValues expands a pattern→value map into a joint→value map. A joint
// matched by two patterns is an error, as is a pattern matching no joint.
// Joints matched by no pattern are absent from the result.
func ResolveValues(values map[string]float64, joints []string) (map[string]float64, error) {
	patterns := make([]string, 0, len(values))
	for p := range values {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)

	m, err := Compile(patterns...)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	used := make([]bool, len(patterns))
	var problems []string
	for _, j := range joints {
		var hits []string
		for i, re := range m.res {
			if re.MatchString(j) {
				used[i] = true
				hits = append(hits, patterns[i])
			}
		}
		switch len(hits) {
		case 0:
		case 1:
			out[j] = values[hits[0]]
		default:
			problems = append(problems, fmt.Sprintf("joint %q matches multiple patterns %s", j, quoteAll(hits)))
		}
	}
	for i, ok := range used {
		if !ok {
			problems = append(problems, fmt.Sprintf("pattern %q matches no joint", patterns[i]))
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("cannot resolve joint values: %s", strings.Join(problems, "; "))
	}
	return out, nil
}

// PartitionError describes how a set of pattern groups fails to partition a
// joint manifest.
type PartitionError struct {
	// Uncovered lists joints no group claims, in manifest order.
	Uncovered []string
	// Overlaps maps a joint to every group claiming it (sorted).
	Overlaps map[string][]string
}

// Error implements the error interface for PartitionError.
func (e *PartitionError) Error() string {
	var parts []string
	if len(e.Uncovered) > 0 {
		parts = append(parts, fmt.Sprintf("joints not driven by any actuator group: %s", quoteAll(e.Uncovered)))
	}
	if len(e.Overlaps) > 0 {
		joints := make([]string, 0, len(e.Overlaps))
		for j := range e.Overlaps {
			joints = append(joints, j)
		}
		sort.Strings(joints)
		for _, j := range joints {
			parts = append(parts, fmt.Sprintf("joint %q is driven by groups %s", j, quoteAll(e.Overlaps[j])))
		}
	}
	return strings.Join(parts, "; ")
}

// Partition checks that every joint is claimed by exactly one group and
// returns the joint→group assignment. A *PartitionError reports gaps and
// overlaps; a pattern compile error is returned as is.
func Partition(groups map[string][]string, joints []string) (map[string]string, error) {
	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	matchers := make([]*Matcher, len(names))
	for i, g := range names {
		m, err := Compile(groups[g]...)
		if err != nil {
			return nil, fmt.Errorf("actuator group %q: %w", g, err)
		}
		matchers[i] = m
	}

	assign := make(map[string]string, len(joints))
	perr := &PartitionError{Overlaps: make(map[string][]string)}
	for _, j := range joints {
		var owners []string
		for i, m := range matchers {
			if m.Match(j) {
				owners = append(owners, names[i])
			}
		}
		switch len(owners) {
		case 0:
			perr.Uncovered = append(perr.Uncovered, j)
		case 1:
			assign[j] = owners[0]
		default:
			perr.Overlaps[j] = owners
		}
	}
	if len(perr.Uncovered) > 0 || len(perr.Overlaps) > 0 {
		return nil, perr
	}
	return assign, nil
}

func quoteAll(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(q, ", ") + "]"
}

// Package replay runs scripted edit sessions against a bounded history
// buffer and reports the state after every step.
package replay

import (
	"strings"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

type Op string

const (
	OpPush     Op = "push"
	OpRollback Op = "rollback"
	OpReapply  Op = "reapply"
	OpPeek     Op = "peek"
	OpClear    Op = "clear"
)

var ErrInvalidStep = xerrors.New("invalid step")

// Step is one operation of a script. In YAML it is written either as a
// string ("push hello", "rollback") or as a mapping
// ({op: push, value: hello}).
type Step struct {
	Op    Op     `yaml:"op"`
	Value string `yaml:"value,omitempty"`
}

type Script struct {
	// Capacity is the history bound. Zero leaves the choice to the caller.
	Capacity int    `yaml:"capacity,omitempty"`
	Steps    []Step `yaml:"steps"`
}

func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		op, arg, _ := strings.Cut(strings.TrimSpace(value.Value), " ")
		s.Op = Op(strings.ToLower(op))
		s.Value = strings.TrimSpace(arg)
		return s.validate()
	}

	type rawStep Step
	var raw rawStep
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*s = Step(raw)
	s.Op = Op(strings.ToLower(string(s.Op)))
	return s.validate()
}

func (s Step) validate() error {
	switch s.Op {
	case OpPush:
		if s.Value == "" {
			return xerrors.Errorf("%s needs a value: %w", s.Op, ErrInvalidStep)
		}
	case OpRollback, OpReapply, OpPeek, OpClear:
		if s.Value != "" {
			return xerrors.Errorf("%s takes no value, got %q: %w", s.Op, s.Value, ErrInvalidStep)
		}
	case "":
		return xerrors.Errorf("missing op: %w", ErrInvalidStep)
	default:
		return xerrors.Errorf("unknown op %q: %w", s.Op, ErrInvalidStep)
	}
	return nil
}

func (s Step) String() string {
	if s.Value == "" {
		return string(s.Op)
	}
	return string(s.Op) + " " + s.Value
}

// Parse decodes a YAML script. Errors in a step name its 1-based position.
func Parse(data []byte) (*Script, error) {
	var raw struct {
		Capacity int         `yaml:"capacity"`
		Steps    []yaml.Node `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, xerrors.Errorf("failed to parse script: %w", err)
	}
	if raw.Capacity < 0 {
		return nil, xerrors.Errorf("capacity must not be negative, got %d", raw.Capacity)
	}

	script := &Script{
		Capacity: raw.Capacity,
		Steps:    make([]Step, len(raw.Steps)),
	}
	for i := range raw.Steps {
		if err := raw.Steps[i].Decode(&script.Steps[i]); err != nil {
			return nil, xerrors.Errorf("step %d: %w", i+1, err)
		}
	}
	return script, nil
}

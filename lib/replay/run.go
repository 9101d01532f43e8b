package replay

import (
	"context"

	"golang.org/x/xerrors"

	"github.com/coder/memento/lib/logctx"
	"github.com/coder/memento/lib/memento"
)

// DefaultCapacity bounds the history when neither the caller nor the script
// picks a capacity.
const DefaultCapacity = 16

type Options struct {
	// Capacity overrides the script's capacity when positive.
	Capacity int
	// Strict aborts the run on the first rollback, reapply or peek that has
	// nothing to act on.
	Strict bool
}

type Result struct {
	Step   int    `yaml:"step"`
	Op     Op     `yaml:"op"`
	Value  string `yaml:"value,omitempty"`
	OK     bool   `yaml:"ok"`
	Err    string `yaml:"error,omitempty"`
	Live   int    `yaml:"live"`
	Active int    `yaml:"active"`
}

type Report struct {
	Capacity int      `yaml:"capacity"`
	Results  []Result `yaml:"results"`
	// Items is the final history, oldest first. Active is its undoable
	// prefix.
	Items  []string `yaml:"items"`
	Active []string `yaml:"active"`
}

// Capacity picks the history bound for a run.
func Capacity(script *Script, opts Options) int {
	switch {
	case opts.Capacity > 0:
		return opts.Capacity
	case script.Capacity > 0:
		return script.Capacity
	default:
		return DefaultCapacity
	}
}

// Run executes script against a fresh history buffer.
func Run(ctx context.Context, script *Script, opts Options) (*Report, error) {
	logger := logctx.FromOrDiscard(ctx)
	capacity := Capacity(script, opts)
	history := memento.New[string](capacity)

	report := &Report{
		Capacity: capacity,
		Results:  make([]Result, 0, len(script.Steps)),
	}
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return nil, xerrors.Errorf("replay interrupted before step %d: %w", i+1, err)
		}

		result := Result{Step: i + 1, Op: step.Op, OK: true}
		var err error
		switch step.Op {
		case OpPush:
			history.Push(step.Value)
			result.Value = step.Value
		case OpRollback:
			result.Value, err = history.Rollback()
		case OpReapply:
			result.Value, err = history.Reapply()
		case OpPeek:
			result.Value, err = history.Peek()
		case OpClear:
			history.Clear()
		default:
			return nil, xerrors.Errorf("step %d: unknown op %q: %w", i+1, step.Op, ErrInvalidStep)
		}
		if err != nil {
			if opts.Strict {
				return nil, xerrors.Errorf("step %d: %w", i+1, err)
			}
			result.OK = false
			result.Err = err.Error()
		}
		result.Live = history.Len()
		result.Active = history.ActiveLen()
		report.Results = append(report.Results, result)

		logger.Debug("replayed step",
			"step", result.Step,
			"op", step.Op,
			"value", result.Value,
			"ok", result.OK,
			"live", result.Live,
			"active", result.Active)
	}

	report.Items = history.Items()
	report.Active = history.ActiveItems()
	logger.Info("replay finished",
		"steps", len(script.Steps),
		"capacity", capacity,
		"version", history.Version())
	return report, nil
}

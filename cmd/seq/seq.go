package seq

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/coder/memento/internal/config"
	"github.com/coder/memento/lib/lazy"
	"github.com/coder/memento/lib/logctx"
)

const (
	FlagPad    = "pad"
	FlagTimes  = "times"
	FlagAhead  = "ahead"
	FlagCount  = "count"
	FlagTake   = "take"
	FlagStream = "stream"
)

type Op string

const (
	OpChunk2    Op = "chunk2"
	OpChunk3    Op = "chunk3"
	OpReverse   Op = "reverse"
	OpRepeat    Op = "repeat"
	OpCycle     Op = "cycle"
	OpLookAhead Op = "lookahead"
	OpPairs     Op = "pairs"
	OpPopFront  Op = "popfront"
	OpPopFirst  Op = "popfirst"
	OpSquare    Op = "square"
)

var Ops = []Op{
	OpChunk2, OpChunk3, OpReverse, OpRepeat, OpCycle,
	OpLookAhead, OpPairs, OpPopFront, OpPopFirst, OpSquare,
}

func CreateSeqCmd() *cobra.Command {
	seqCmd := &cobra.Command{
		Use:   "seq <op> [ints...]",
		Short: "Run a sequence combinator over integers",
		Long: fmt.Sprintf(`Run a sequence combinator over the given integers, or over
whitespace separated integers read from stdin when none are given.

Operations: %s`, joinOps()),
		Args:    cobra.MinimumNArgs(1),
		PreRunE: config.BindFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := parseOp(args[0])
			if err != nil {
				return err
			}
			var values []int
			if len(args) > 1 {
				values, err = parseInts(args[1:])
			} else {
				values, err = readInts(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			return runSeq(cmd.Context(), cmd.OutOrStdout(), op, values)
		},
	}

	seqCmd.Flags().Int(FlagPad, 0, "Padding for the last chunk of chunk2 and chunk3")
	seqCmd.Flags().Int(FlagTimes, 2, "Number of passes for repeat")
	seqCmd.Flags().Int(FlagAhead, 1, "Look-ahead horizon for lookahead")
	seqCmd.Flags().Int(FlagCount, 1, "Number of leading elements for popfront")
	seqCmd.Flags().Int(FlagTake, 10, "Number of elements to print for cycle")
	seqCmd.Flags().Bool(FlagStream, false, "Treat the input as a stream without random access")
	return seqCmd
}

func joinOps() string {
	names := make([]string, len(Ops))
	for i, op := range Ops {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}

func parseOp(s string) (Op, error) {
	op := Op(strings.ToLower(s))
	if !slices.Contains(Ops, op) {
		return "", xerrors.Errorf("unknown operation %q, expected one of: %s", s, joinOps())
	}
	return op, nil
}

func parseInts(fields []string) ([]int, error) {
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, xerrors.Errorf("invalid integer %q: %w", f, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func readInts(r io.Reader) ([]int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	var fields []string
	for scanner.Scan() {
		fields = append(fields, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("failed to read input: %w", err)
	}
	return parseInts(fields)
}

func source(values []int, stream bool) lazy.Sequence[int] {
	if stream {
		return lazy.FromSeq(slices.Values(values))
	}
	return lazy.FromSlice(values)
}

func runSeq(ctx context.Context, w io.Writer, op Op, values []int) error {
	stream := viper.GetBool(FlagStream)
	logctx.FromOrDiscard(ctx).Debug("Running sequence", "op", op, "values", len(values), "stream", stream)

	src := source(values, stream)
	switch op {
	case OpChunk2:
		return emit(w, lazy.ChunkPairPad(src, viper.GetInt(FlagPad)), func(p lazy.Pair[int]) string {
			return fmt.Sprintf("(%d, %d)", p.First, p.Second)
		})
	case OpChunk3:
		return emit(w, lazy.ChunkTriplePad(src, viper.GetInt(FlagPad)), func(t lazy.Triple[int]) string {
			return fmt.Sprintf("(%d, %d, %d)", t.First, t.Second, t.Third)
		})
	case OpReverse:
		return emit(w, lazy.Reverse(src), strconv.Itoa)
	case OpRepeat:
		return emit(w, lazy.Repeat(src, viper.GetInt(FlagTimes)), strconv.Itoa)
	case OpCycle:
		leading, rest := lazy.PopFront(lazy.RepeatForever(src), viper.GetInt(FlagTake))
		if err := rest.Close(); err != nil {
			return xerrors.Errorf("failed to close cycle: %w", err)
		}
		return emit[int](w, lazy.FromSlice(leading), strconv.Itoa)
	case OpLookAhead:
		return emit(w, lazy.LookAhead(src, viper.GetInt(FlagAhead)), func(a lazy.Ahead[int]) string {
			return fmt.Sprintf("%d (+%d)", a.Value, a.Remaining)
		})
	case OpPairs:
		return emit(w, lazy.AdjacentPairs(src), func(p lazy.Pair[int]) string {
			return fmt.Sprintf("(%d, %d)", p.First, p.Second)
		})
	case OpPopFront:
		leading, rest := lazy.PopFront(src, viper.GetInt(FlagCount))
		defer rest.Close()
		_, err := fmt.Fprintf(w, "leading: %s\nrest: %s\n", formatInts(leading), formatInts(drain(rest)))
		return err
	case OpPopFirst:
		first, rest, err := lazy.PopFirst(src)
		if err != nil {
			return xerrors.Errorf("popfirst: %w", err)
		}
		defer rest.Close()
		_, err = fmt.Fprintf(w, "first: %d\nrest: %s\n", first, formatInts(drain(rest)))
		return err
	case OpSquare:
		return emit(w, lazy.SelectCached(src, func(v int) int { return v * v }), strconv.Itoa)
	default:
		return xerrors.Errorf("unknown operation %q", op)
	}
}

func emit[T any](w io.Writer, s lazy.Sequence[T], format func(T) string) error {
	bw := bufio.NewWriter(w)
	for v := range lazy.All(s) {
		bw.WriteString(format(v))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return xerrors.Errorf("failed to write output: %w", err)
	}
	return nil
}

func drain(it lazy.Iterator[int]) []int {
	var result []int
	for it.Next() {
		result = append(result, it.Value())
	}
	return result
}

func formatInts(values []int) string {
	fields := make([]string, len(values))
	for i, v := range values {
		fields[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(fields, " ") + "]"
}

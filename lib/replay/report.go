package replay

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// WriteText renders the report as a table followed by the final history.
func (r *Report) WriteText(w io.Writer) error {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		status := "ok"
		if !res.OK {
			status = res.Err
		}
		rows = append(rows, []string{
			strconv.Itoa(res.Step),
			string(res.Op),
			res.Value,
			status,
			fmt.Sprintf("%d/%d", res.Active, res.Live),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("STEP", "OP", "VALUE", "STATUS", "ACTIVE/LIVE").
		Rows(rows...)

	var sb strings.Builder
	sb.WriteString(t.Render())
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "capacity: %d\n", r.Capacity)
	fmt.Fprintf(&sb, "history:  [%s]\n", strings.Join(r.Items, " "))
	fmt.Fprintf(&sb, "active:   [%s]\n", strings.Join(r.Active, " "))

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return xerrors.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return xerrors.Errorf("failed to encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return xerrors.Errorf("failed to flush report: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"parcels/internal/frame"
)

const maxCellWidth = 24

func newPreviewCmd() *cobra.Command {
	var in string
	var rows int
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the first rows of a normalized CSV as an aligned table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := osFs.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			df, err := frame.ReadDelimited(f, ',')
			if err != nil {
				return err
			}
			width := 0
			if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
				if w, _, err := term.GetSize(fd); err == nil {
					width = w
				}
			}
			renderTable(cmd.OutOrStdout(), df, rows, width)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "CSV file to preview")
	cmd.Flags().IntVar(&rows, "rows", 20, "number of rows to show")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// renderTable prints up to limit rows with padded columns. When width is
// positive, columns that would overflow it are left out.
func renderTable(w io.Writer, df *frame.Frame, limit, width int) {
	rows := df.Rows()
	if limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	cols := df.Columns()
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = min(runewidth.StringWidth(c), maxCellWidth)
		for _, r := range rows {
			widths[i] = max(widths[i], min(runewidth.StringWidth(frame.Format(r[c])), maxCellWidth))
		}
	}

	shown := len(cols)
	if width > 0 {
		used := 0
		for i := range cols {
			if used+widths[i] > width && i > 0 {
				shown = i
				break
			}
			used += widths[i] + 3
		}
	}

	// Trailing empty cells are left off so a line never ends in a separator.
	line := func(cell func(i int) string) {
		parts := make([]string, shown)
		last := -1
		for i := 0; i < shown; i++ {
			parts[i] = runewidth.Truncate(cell(i), widths[i], "…")
			if parts[i] != "" {
				last = i
			}
		}
		parts = parts[:last+1]
		for i := 0; i < last; i++ {
			parts[i] = runewidth.FillRight(parts[i], widths[i])
		}
		fmt.Fprintln(w, strings.Join(parts, " | "))
	}

	line(func(i int) string { return cols[i] })
	sep := make([]string, shown)
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(w, strings.Join(sep, "-+-"))
	for _, r := range rows {
		line(func(i int) string { return frame.Format(r[cols[i]]) })
	}
	if shown < len(cols) {
		fmt.Fprintf(w, "(%d more columns)\n", len(cols)-shown)
	}
	fmt.Fprintf(w, "(%d of %d rows)\n", len(rows), df.Len())
}

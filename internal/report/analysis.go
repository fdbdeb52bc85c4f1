package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"

	"github.com/chazuruo/histclean/internal/analyze"
	"github.com/chazuruo/histclean/internal/history"
)

const (
	// DefaultWidth is the widest the text report is drawn.
	DefaultWidth = 90

	// maxCellWidth is the widest a command is shown in the ranking table.
	maxCellWidth = 40

	// maxBarWidth is the longest bar in the activity chart.
	maxBarWidth = 40
)

// Options controls the text rendering.
type Options struct {
	// Width is the terminal width. Zero or anything above DefaultWidth
	// means DefaultWidth.
	Width int

	// Location is used to print dates. Nil means local time.
	Location *time.Location
}

func (o Options) width() int {
	if o.Width <= 0 || o.Width > DefaultWidth {
		return DefaultWidth
	}
	return o.Width
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// WriteAnalysis writes r to w in the requested format.
func WriteAnalysis(w io.Writer, r *analyze.Report, format Format, opts Options) error {
	switch format {
	case "", FormatTable:
		return writeAnalysisText(w, r, opts)
	default:
		return Encode(w, r, format)
	}
}

func writeAnalysisText(w io.Writer, r *analyze.Report, opts Options) error {
	s := newStyles(w)
	width := opts.width()

	lines := []string{
		fmt.Sprintf("📊 History Analysis for %s", s.title.Render(truncateLeft(r.Path, maxCellWidth+20))),
		"",
		spanLine(s, r.Span, opts.location()),
		fmt.Sprintf("📝 Total Commands: %s", s.number.Render(formatCount(r.TotalCommands))),
		fmt.Sprintf("🔎 Unique Commands: %s", s.number.Render(formatCount(r.UniqueCommands))),
		fmt.Sprintf("♻️ Duplicate Commands: %s %s",
			s.number.Render(formatCount(r.DuplicateCommands)),
			s.dim.Render("("+formatPercent(r.DuplicateRatio())+")")),
	}

	// Width excludes the border.
	box := s.box.Width(width - 2).Render(strings.Join(lines, "\n"))
	if _, err := fmt.Fprintln(w, box); err != nil {
		return err
	}

	if r.TopN > 0 {
		if _, err := fmt.Fprintf(w, "\n🔥 %s\n", s.section.Render(fmt.Sprintf("Top %d Most Used:", r.TopN))); err != nil {
			return err
		}
		writeRankingTable(w, s, r, width)
	}

	if len(r.Activity) > 0 {
		if _, err := fmt.Fprintf(w, "\n📈 %s\n", s.section.Render("Activity by month:")); err != nil {
			return err
		}
		return writeActivity(w, s, r.Activity)
	}

	return nil
}

func spanLine(s styles, span *analyze.Span, loc *time.Location) string {
	if span == nil {
		return fmt.Sprintf("🗓️ %s", s.dim.Render("no timestamped entries"))
	}

	earliest := time.Unix(span.Earliest, 0).In(loc)
	latest := time.Unix(span.Latest, 0).In(loc)

	return fmt.Sprintf("🗓️ %s → %s %s",
		s.date.Render(history.DateOf(earliest).String()),
		s.date.Render(history.DateOf(latest).String()),
		s.dim.Render("("+humanSpan(earliest, latest)+")"))
}

// humanSpan describes the distance between two times, e.g. "5 months".
func humanSpan(a, b time.Time) string {
	if b.Sub(a) < 24*time.Hour {
		return "less than a day"
	}
	return strings.TrimSpace(humanize.RelTime(a, b, "", ""))
}

func writeRankingTable(w io.Writer, s styles, r *analyze.Report, width int) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true
	tw.SetAllowedRowLength(width)

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
	})

	tw.AppendHeader(table.Row{"", s.header.Render("Commands"), s.header.Render("Executables")})

	rows := max(len(r.TopCommands), len(r.TopExecutables))
	for i := 0; i < rows; i++ {
		tw.AppendRow(table.Row{
			rankIcon(i + 1),
			rankCell(s, r.TopCommands, i),
			rankCell(s, r.TopExecutables, i),
		})
	}

	if rows == 0 {
		tw.AppendRow(table.Row{"-", "(no commands)", "-"})
	}

	_ = tw.Render()
}

func rankCell(s styles, ranks []analyze.Rank, i int) string {
	if i >= len(ranks) {
		return ""
	}
	name := strings.ReplaceAll(ranks[i].Name, "\t", " ")
	return fmt.Sprintf("%s %s",
		runewidth.Truncate(name, maxCellWidth, "..."),
		s.dim.Render(fmt.Sprintf("(%s times)", formatCount(ranks[i].Count))))
}

// rankIcon returns a medal for the first three ranks.
func rankIcon(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

func writeActivity(w io.Writer, s styles, buckets []analyze.Bucket) error {
	peak := 0
	for _, b := range buckets {
		peak = max(peak, b.Count)
	}

	for _, b := range buckets {
		n := b.Count * maxBarWidth / peak
		if n == 0 && b.Count > 0 {
			n = 1
		}
		if _, err := fmt.Fprintf(w, "  %s %s %s\n",
			b.Month, s.bar.Render(strings.Repeat("█", n)), formatCount(b.Count)); err != nil {
			return err
		}
	}
	return nil
}

// truncateLeft shortens s to width cells by dropping runes from the left
// and prefixing "...".
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}

	runes := []rune(s)
	w := 3
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > width {
			break
		}
		w += rw
		i--
	}
	return "..." + string(runes[i:])
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"nkl/internal/diag"
	"nkl/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, loc *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		loc:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.loc} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	var sb strings.Builder
	for _, d := range bag.Items() {
		f := fileOf(fs, d.Primary)
		sb.WriteString(pal.loc.Sprint(location(f, d.Primary, opts)))
		sb.WriteString(": ")
		sb.WriteString(pal.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()))
		sb.WriteString(": ")
		sb.WriteString(d.Message)
		sb.WriteByte('\n')
		if f != nil {
			writeSnippet(&sb, f, d.Primary, int(opts.Context), pal)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				nf := fileOf(fs, n.Span)
				fmt.Fprintf(&sb, "  %s %s: %s\n", pal.note.Sprint("note:"), location(nf, n.Span, opts), n.Msg)
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func location(f *source.File, sp source.Span, opts PrettyOpts) string {
	path := displayPath(f, opts.PathMode, opts.BaseDir)
	if f == nil {
		return path
	}
	start, _ := f.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// writeSnippet prints the primary line, context lines above it and a
// caret line under the span. Columns are measured in display cells.
func writeSnippet(sb *strings.Builder, f *source.File, sp source.Span, context int, pal palette) {
	start, end := f.Resolve(sp)
	context = max(context, 0)
	first := uint32(1)
	if int(start.Line) > context {
		first = start.Line - uint32(context) // #nosec G115 -- 0 <= context < start.Line
	}
	width := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(sb, "%s %s\n", pal.gutter.Sprintf("%*d |", width, ln), f.GetLine(ln))
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	underline := max(runewidth.StringWidth(line[col:max(stop, col)]), 1)

	fmt.Fprintf(sb, "%s %s%s\n",
		pal.gutter.Sprintf("%*s |", width, ""),
		pad(line[:col]),
		pal.caret.Sprint("^"+strings.Repeat("~", underline-1)))
}

// pad keeps tabs so the caret lines up with tab-indented source.
func pad(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

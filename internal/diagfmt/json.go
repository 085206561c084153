package diagfmt

import (
	"encoding/json"
	"io"

	"lifeline/internal/diag"
	"lifeline/internal/source"
)

// Position is a 1-based line and column.
type Position struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// Location is a byte range in a file; From/To are set when positions are
// requested and the file is known.
type Location struct {
	File  string    `json:"file"`
	Start uint32    `json:"start"`
	End   uint32    `json:"end"`
	From  *Position `json:"from,omitempty"`
	To    *Position `json:"to,omitempty"`
}

type Related struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

type Entry struct {
	Severity string    `json:"severity"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Location Location  `json:"location"`
	Notes    []Related `json:"notes,omitempty"`
}

// Report is the JSON document for one file. Count is the number of
// entries written, Truncated is set when JSONOpts.Max cut the list.
type Report struct {
	Diagnostics []Entry `json:"diagnostics"`
	Count       int     `json:"count"`
	Errors      int     `json:"errors"`
	Truncated   bool    `json:"truncated,omitempty"`
}

type locator struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (l locator) locate(span source.Span) Location {
	loc := Location{Start: span.Start, End: span.End}
	f := l.fs.Get(span.File)
	if f == nil {
		// ошибка загрузки: файла в наборе нет
		return loc
	}
	loc.File = f.FormatPath(l.opts.PathMode.String(), l.fs.BaseDir())
	if l.opts.IncludePositions {
		from, to := l.fs.Resolve(span)
		loc.From = &Position{Line: from.Line, Col: from.Col}
		loc.To = &Position{Line: to.Line, Col: to.Col}
	}
	return loc
}

// BuildReport converts bag into a Report without encoding it, so callers
// can nest reports for several files in one document.
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	items := bag.Items()
	rep := Report{Diagnostics: []Entry{}}
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
		rep.Truncated = true
	}

	l := locator{fs: fs, opts: opts}
	for _, d := range items {
		e := Entry{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: l.locate(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				e.Notes = append(e.Notes, Related{Message: n.Msg, Location: l.locate(n.Span)})
			}
		}
		if d.Severity == diag.SevError {
			rep.Errors++
		}
		rep.Diagnostics = append(rep.Diagnostics, e)
	}
	rep.Count = len(rep.Diagnostics)
	return rep
}

// JSON writes the report for bag as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}

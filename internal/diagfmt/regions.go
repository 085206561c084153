package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lifeline/internal/driver"
)

// RegionTable is the printable region table of one file.
type RegionTable struct {
	Path   string             `json:"path"`
	Errors int                `json:"errors"`
	Rows   []driver.RegionRow `json:"regions"`
}

// RegionOpts configures RegionsPretty.
type RegionOpts struct {
	Color bool
}

// RegionsPretty prints one aligned line per reference:
//
//	main.lf:3:17  'a       late(^1)           decl 1:6
func RegionsPretty(w io.Writer, t RegionTable, opts RegionOpts) error {
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintf(w, "%s: no lifetime references\n", t.Path)
		return err
	}
	name := color.New(color.Bold)
	kind := map[string]*color.Color{
		"static": color.New(color.FgMagenta),
		"early":  color.New(color.FgYellow),
		"late":   color.New(color.FgCyan),
		"free":   color.New(color.FgGreen),
	}
	dim := color.New(color.Faint)
	for _, c := range []*color.Color{name, kind["static"], kind["early"], kind["late"], kind["free"], dim} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	locs := make([]string, len(t.Rows))
	regions := make([]string, len(t.Rows))
	var locW, nameW, regW int
	for i, r := range t.Rows {
		locs[i] = fmt.Sprintf("%s:%d:%d", t.Path, r.Line, r.Col)
		regions[i] = regionText(r)
		locW = max(locW, runewidth.StringWidth(locs[i]))
		nameW = max(nameW, runewidth.StringWidth(r.Name))
		regW = max(regW, len(regions[i]))
	}

	for i, r := range t.Rows {
		var sb strings.Builder
		sb.WriteString(runewidth.FillRight(locs[i], locW))
		sb.WriteString("  ")
		sb.WriteString(name.Sprint(runewidth.FillRight(r.Name, nameW)))
		sb.WriteString("  ")
		c := kind[r.Kind]
		if c == nil {
			c = dim
		}
		if r.Decl == 0 {
			sb.WriteString(c.Sprint(regions[i]))
		} else {
			sb.WriteString(c.Sprint(runewidth.FillRight(regions[i], regW)))
			sb.WriteString("  ")
			sb.WriteString(dim.Sprintf("decl %d:%d", r.DeclLine, r.DeclCol))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// RegionsJSON writes all tables as one JSON document.
func RegionsJSON(w io.Writer, tables []RegionTable) error {
	for i := range tables {
		if tables[i].Rows == nil {
			tables[i].Rows = []driver.RegionRow{}
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Files []RegionTable `json:"files"`
	}{tables})
}

func regionText(r driver.RegionRow) string {
	switch r.Kind {
	case "early":
		return fmt.Sprintf("early(%s, %d)", r.Space, r.Index)
	case "late":
		return fmt.Sprintf("late(^%d)", r.Depth)
	case "free":
		return fmt.Sprintf("free(block#%d)", r.Extent)
	default:
		return r.Kind
	}
}

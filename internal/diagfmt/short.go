package diagfmt

import (
	"io"

	"lifeline/internal/diag"
	"lifeline/internal/source"
)

// Short writes one line per diagnostic, notes included as "note" lines.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	out := diag.FormatShort(bag.Items(), fs, true)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"lifeline/internal/diag"
	"lifeline/internal/project"
)

// Current schema version - increment when ExportPayload format changes
const exportSchemaVersion uint16 = 1

// ErrExportSchema is returned by Import for payloads written by an
// incompatible version.
var ErrExportSchema = errors.New("unsupported export schema")

// ExportPayload is the on-disk form of one file's region table.
type ExportPayload struct {
	Schema uint16 `msgpack:"schema"`
	Source string `msgpack:"source"`
	// ContentHash covers the source text and the prelude trait list, the
	// two inputs that decide the table.
	ContentHash project.Digest `msgpack:"content_hash"`
	Prelude     []string       `msgpack:"prelude"`
	Errors      int            `msgpack:"errors"`
	Rows        []RegionRow    `msgpack:"rows"`
}

// NewExportPayload captures res. A partial table from a failed run is
// exported as is, with Errors counting the error diagnostics.
func NewExportPayload(res *FileResult) *ExportPayload {
	errs := 0
	for _, d := range res.Bag.Items() {
		if d.Severity >= diag.SevError {
			errs++
		}
	}
	var content project.Digest
	if res.Source != nil {
		content = res.Source.Hash
	}
	return &ExportPayload{
		Schema:      exportSchemaVersion,
		Source:      res.Path,
		ContentHash: project.Combine(content, project.DigestStrings(res.Prelude...)),
		Prelude:     append([]string(nil), res.Prelude...),
		Errors:      errs,
		Rows:        Rows(res),
	}
}

// Export writes res to path atomically.
func Export(path string, res *FileResult) error {
	return WritePayload(path, NewExportPayload(res))
}

// WritePayload serializes payload next to path and renames it into place.
func WritePayload(path string, payload *ExportPayload) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".lfr-*")
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		_ = f.Close()
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), path)
}

// Import reads a payload written by Export.
func Import(path string) (*ExportPayload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out ExportPayload
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if out.Schema != exportSchemaVersion {
		return nil, fmt.Errorf("%w: %s has version %d, want %d", ErrExportSchema, path, out.Schema, exportSchemaVersion)
	}
	return &out, nil
}

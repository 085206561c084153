package testkit

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Chunk is one program of a chunked testdata file together with the
// diagnostics it is expected to produce.
//
// Chunks are separated by lines consisting of "---". A line carrying
// `### "regexp"` (usually inside a // comment) expects one diagnostic on
// that line whose message matches the Go-quoted regexp; several markers on
// one line expect several diagnostics, in order:
//
//	fn f(x: &'a u8) {} // ### "undeclared lifetime name `'a`"
//	---
//	fn g<'a, 'a>() {}  // ### "declared twice"
//
// Source keeps the line numbers of the whole file: earlier chunks are
// replaced by blank lines.
type Chunk struct {
	Source   string
	Line     int // first line of the chunk in the file
	filename string
	report   Reporter
	want     map[int][]*regexp.Regexp
}

// Reporter is implemented by *testing.T.
type Reporter interface {
	Errorf(format string, args ...any)
}

// ReadChunks loads filename and splits it into chunks. Malformed
// expectations are reported through report and skipped.
func ReadChunks(filename string, report Reporter) []Chunk {
	data, err := os.ReadFile(filename)
	if err != nil {
		report.Errorf("%s", err)
		return nil
	}
	return SplitChunks(filename, strings.ReplaceAll(string(data), "\r\n", "\n"), report)
}

// SplitChunks is ReadChunks on in-memory text.
func SplitChunks(filename, text string, report Reporter) []Chunk {
	var chunks []Chunk
	linenum := 1
	for _, body := range strings.Split(text, "\n---\n") {
		c := Chunk{
			Source:   strings.Repeat("\n", linenum-1) + body,
			Line:     linenum,
			filename: filename,
			report:   report,
			want:     map[int][]*regexp.Regexp{},
		}
		for _, line := range strings.Split(body, "\n") {
			parts := strings.Split(line, "###")
			for _, part := range parts[1:] {
				rest := strings.TrimSpace(part)
				pattern, err := strconv.Unquote(rest)
				if err != nil {
					report.Errorf("\n%s:%d: not a quoted regexp: %s", filename, linenum, rest)
					continue
				}
				rx, err := regexp.Compile(pattern)
				if err != nil {
					report.Errorf("\n%s:%d: %v", filename, linenum, err)
					continue
				}
				c.want[linenum] = append(c.want[linenum], rx)
			}
			linenum++
		}
		// the separator line
		linenum++
		chunks = append(chunks, c)
	}
	return chunks
}

// GotError records a diagnostic produced at linenum. Unexpected or
// mismatching diagnostics are reported.
func (c *Chunk) GotError(linenum int, msg string) {
	rxs := c.want[linenum]
	if len(rxs) == 0 {
		c.report.Errorf("\n%s:%d: unexpected error: %s", c.filename, linenum, msg)
		return
	}
	rx := rxs[0]
	if len(rxs) == 1 {
		delete(c.want, linenum)
	} else {
		c.want[linenum] = rxs[1:]
	}
	if !rx.MatchString(msg) {
		c.report.Errorf("\n%s:%d: error %q does not match pattern %q", c.filename, linenum, msg, rx)
	}
}

// Done reports every expected diagnostic that never arrived.
func (c *Chunk) Done() {
	for linenum, rxs := range c.want {
		for _, rx := range rxs {
			c.report.Errorf("\n%s:%d: expected error matching %q", c.filename, linenum, rx)
		}
	}
}

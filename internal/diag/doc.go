// Package diag defines the diagnostic model shared by every phase of the
// lifetime resolver: lexer, parser, definition map and the lifetime pass.
//
// A Diagnostic carries a Severity, a stable Code (see codes.go), a short
// message, the primary source.Span and optional Notes. Phases never print;
// they report through a Reporter. BagReporter collects into a Bag, which the
// driver sorts and hands to internal/diagfmt for rendering.
//
// Passes that must decide success on their own (the lifetime pass fails when
// it reported anything) wrap the caller's reporter in a CountingReporter.
package diag

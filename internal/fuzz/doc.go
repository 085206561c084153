// Package fuzztests houses Go fuzz harnesses for the resolver pipeline
// (source -> lexer -> parser -> symbols -> lifetimes). They guard against
// panics, hangs and broken span invariants on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests

package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadLifetime              Code = 1006

	// синтаксические
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynUnexpectedTopLevel   Code = 2002
	SynExpectIdentifier     Code = 2003
	SynExpectType           Code = 2004
	SynExpectExpression     Code = 2005
	SynExpectLifetime       Code = 2006
	SynExpectSemicolon      Code = 2007
	SynUnclosedParen        Code = 2008
	SynUnclosedBrace        Code = 2009
	SynUnclosedBracket      Code = 2010
	SynUnclosedAngleBracket Code = 2011
	SynUnclosedPipe         Code = 2012
	SynGenericsOrder        Code = 2013
	SynBadSelfParam         Code = 2014
	SynItemNotAllowed       Code = 2015

	// IO
	IOLoadFileError Code = 4001
	IOExportError   Code = 4002

	// lifetime resolution
	LftInfo          Code = 5000
	LftUndeclared    Code = 5001
	LftReservedName  Code = 5002
	LftDuplicateName Code = 5003

	// project configuration
	PrjInfo          Code = 6000
	PrjConfigInvalid Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid number literal",
	LexUnterminatedChar:         "Unterminated character literal",
	LexBadLifetime:              "Malformed lifetime name",

	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynUnexpectedTopLevel:   "Unexpected top-level construct",
	SynExpectIdentifier:     "Expected identifier",
	SynExpectType:           "Expected type",
	SynExpectExpression:     "Expected expression",
	SynExpectLifetime:       "Expected lifetime",
	SynExpectSemicolon:      "Expected semicolon",
	SynUnclosedParen:        "Unclosed parenthesis",
	SynUnclosedBrace:        "Unclosed brace",
	SynUnclosedBracket:      "Unclosed bracket",
	SynUnclosedAngleBracket: "Unclosed angle bracket",
	SynUnclosedPipe:         "Unclosed closure parameter list",
	SynGenericsOrder:        "Lifetime parameters must precede type parameters",
	SynBadSelfParam:         "Invalid self parameter",
	SynItemNotAllowed:       "Item not allowed here",

	IOLoadFileError: "I/O load file error",
	IOExportError:   "Region table export error",

	LftInfo:          "Lifetime resolution information",
	LftUndeclared:    "Use of undeclared lifetime name",
	LftReservedName:  "Invalid lifetime parameter name",
	LftDuplicateName: "Lifetime name declared twice in the same scope",

	PrjInfo:          "Project information",
	PrjConfigInvalid: "Invalid project configuration",
}

// ID is the stable short form, e.g. LFT5001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("LFT%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

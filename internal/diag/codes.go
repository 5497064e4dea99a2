package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntax.
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectSemicolon    Code = 2003
	SynUnclosedBrace      Code = 2004
	SynExpectType         Code = 2005
	SynVariadicMustBeLast Code = 2006
	SynBadTemplateHeader  Code = 2007
	SynExpectAngleClose   Code = 2008
	SynUnexpectedTopLevel Code = 2009

	// Input/output.
	IOInfo     Code = 4000
	IOFileRead Code = 4001

	// Template instantiation.
	TmplInfo           Code = 5000
	TmplUndefined      Code = 5001
	TmplNotATemplate   Code = 5002
	TmplTooManyParms   Code = 5003
	TmplNotEnoughParms Code = 5004
	TmplTypeRedefined  Code = 5005
	TmplAmbiguous      Code = 5006
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexInfo:                     "lexical info",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed number literal",

	SynInfo:               "syntax info",
	SynUnexpectedToken:    "unexpected token",
	SynExpectIdentifier:   "identifier expected",
	SynExpectSemicolon:    "';' expected",
	SynUnclosedBrace:      "'}' expected",
	SynExpectType:         "type expected",
	SynVariadicMustBeLast: "parameter pack must be the last parameter",
	SynBadTemplateHeader:  "malformed template header",
	SynExpectAngleClose:   "'>' expected",
	SynUnexpectedTopLevel: "unexpected top-level declaration",

	IOInfo:     "io info",
	IOFileRead: "cannot read input file",

	TmplInfo:           "template info",
	TmplUndefined:      "template undefined",
	TmplNotATemplate:   "not defined as a template",
	TmplTooManyParms:   "too many template arguments",
	TmplNotEnoughParms: "not enough template arguments",
	TmplTypeRedefined:  "type redefined",
	TmplAmbiguous:      "ambiguous partial specialization",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("TPL%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

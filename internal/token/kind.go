package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	KwTemplate  // template
	KwTypename  // typename
	KwClass     // class
	KwStruct    // struct
	KwConst     // const
	KwUnsigned  // unsigned
	KwSigned    // signed
	KwLong      // long
	KwShort     // short
	KwInt       // int
	KwChar      // char
	KwFloat     // float
	KwDouble    // double
	KwVoid      // void
	KwBool      // bool
	KwNamespace // namespace
	KwTypedef   // typedef
	KwUsing     // using
	KwOperator  // operator
	KwFriend    // friend
	KwPublic    // public
	KwProtected // protected
	KwPrivate   // private
	KwVirtual   // virtual
	KwStatic    // static
	KwInline    // inline
	KwExtern    // extern
	KwEnum      // enum
	KwThrow     // throw

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a floating point literal token.
	FloatLit
	// StringLit represents a string literal token.
	StringLit
	// CharLit represents a character literal token.
	CharLit

	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
	Lt         // <
	Gt         // >
	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Star       // *
	Amp        // &
	AmpAmp     // &&
	Ellipsis   // ...
	Assign     // =
	Tilde      // ~
	Plus       // +
	Minus      // -
	Dot        // .

	// DirTemplate represents the %template directive introducer.
	DirTemplate
	// DirExtend represents the %extend directive introducer.
	DirExtend
)

var kindNames = map[Kind]string{
	Invalid:     "invalid",
	EOF:         "eof",
	Ident:       "ident",
	KwTemplate:  "template",
	KwTypename:  "typename",
	KwClass:     "class",
	KwStruct:    "struct",
	KwConst:     "const",
	KwUnsigned:  "unsigned",
	KwSigned:    "signed",
	KwLong:      "long",
	KwShort:     "short",
	KwInt:       "int",
	KwChar:      "char",
	KwFloat:     "float",
	KwDouble:    "double",
	KwVoid:      "void",
	KwBool:      "bool",
	KwNamespace: "namespace",
	KwTypedef:   "typedef",
	KwUsing:     "using",
	KwOperator:  "operator",
	KwFriend:    "friend",
	KwPublic:    "public",
	KwProtected: "protected",
	KwPrivate:   "private",
	KwVirtual:   "virtual",
	KwStatic:    "static",
	KwInline:    "inline",
	KwExtern:    "extern",
	KwEnum:      "enum",
	KwThrow:     "throw",
	IntLit:      "int literal",
	FloatLit:    "float literal",
	StringLit:   "string literal",
	CharLit:     "char literal",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Lt:          "<",
	Gt:          ">",
	Comma:       ",",
	Semicolon:   ";",
	Colon:       ":",
	ColonColon:  "::",
	Star:        "*",
	Amp:         "&",
	AmpAmp:      "&&",
	Ellipsis:    "...",
	Assign:      "=",
	Tilde:       "~",
	Plus:        "+",
	Minus:       "-",
	Dot:         ".",
	DirTemplate: "%template",
	DirExtend:   "%extend",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

package token

var keywords = map[string]Kind{
	"template":  KwTemplate,
	"typename":  KwTypename,
	"class":     KwClass,
	"struct":    KwStruct,
	"const":     KwConst,
	"unsigned":  KwUnsigned,
	"signed":    KwSigned,
	"long":      KwLong,
	"short":     KwShort,
	"int":       KwInt,
	"char":      KwChar,
	"float":     KwFloat,
	"double":    KwDouble,
	"void":      KwVoid,
	"bool":      KwBool,
	"namespace": KwNamespace,
	"typedef":   KwTypedef,
	"using":     KwUsing,
	"operator":  KwOperator,
	"friend":    KwFriend,
	"public":    KwPublic,
	"protected": KwProtected,
	"private":   KwPrivate,
	"virtual":   KwVirtual,
	"static":    KwStatic,
	"inline":    KwInline,
	"extern":    KwExtern,
	"enum":      KwEnum,
	"throw":     KwThrow,
}

// LookupKeyword maps an identifier to its keyword kind, if it is one.
func LookupKeyword(name string) (Kind, bool) {
	k, ok := keywords[name]
	return k, ok
}

var directives = map[string]Kind{
	"template": DirTemplate,
	"extend":   DirExtend,
}

// LookupDirective maps a %-directive name to its kind, if it is one.
func LookupDirective(name string) (Kind, bool) {
	k, ok := directives[name]
	return k, ok
}

package lexer

// keywordTable is the lexer's only source of keyword-ness.
// The parser never re-derives keyword status from spelling; it only
// re-interprets a contextual keyword token as Identifier when the grammar
// forbids the keyword use at that point.
var keywordTable = map[string]Kind{
	"abstract": KwAbstract, "assert": KwAssert, "boolean": KwBoolean,
	"break": KwBreak, "byte": KwByte, "case": KwCase, "catch": KwCatch,
	"char": KwChar, "class": KwClass, "const": KwConst, "continue": KwContinue,
	"default": KwDefault, "do": KwDo, "double": KwDouble, "else": KwElse,
	"enum": KwEnum, "extends": KwExtends, "final": KwFinal, "finally": KwFinally,
	"float": KwFloat, "for": KwFor, "goto": KwGoto, "if": KwIf,
	"implements": KwImplements, "import": KwImport, "instanceof": KwInstanceof,
	"int": KwInt, "interface": KwInterface, "long": KwLong, "native": KwNative,
	"new": KwNew, "package": KwPackage, "private": KwPrivate,
	"protected": KwProtected, "public": KwPublic, "return": KwReturn,
	"short": KwShort, "static": KwStatic, "strictfp": KwStrictfp,
	"super": KwSuper, "switch": KwSwitch, "synchronized": KwSynchronized,
	"this": KwThis, "throw": KwThrow, "throws": KwThrows,
	"transient": KwTransient, "try": KwTry, "void": KwVoid,
	"volatile": KwVolatile, "while": KwWhile,

	"true": BooleanLiteral, "false": BooleanLiteral, "null": NullLiteral,

	// Contextual keywords.
	"record": KwRecord, "sealed": KwSealed, "permits": KwPermits,
	"yield": KwYield, "var": KwVar, "when": KwWhen, "module": KwModule,
	"requires": KwRequires, "exports": KwExports, "opens": KwOpens,
	"provides": KwProvides, "uses": KwUses, "with": KwWith, "to": KwTo,
	"transitive": KwTransitive, "open": KwOpen,
}

var keywordNames map[Kind]string

func init() {
	keywordNames = make(map[Kind]string, len(keywordTable))
	for text, kind := range keywordTable {
		keywordNames[kind] = text
	}
	keywordNames[KwNonSealed] = "non-sealed"
}

func lookupKeyword(text string) (Kind, bool) {
	k, ok := keywordTable[text]
	return k, ok
}

func keywordName(k Kind) (string, bool) {
	name, ok := keywordNames[k]
	return name, ok
}

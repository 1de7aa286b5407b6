package lexer

var operatorNames = map[Kind]string{
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	PlusPlus: "++", MinusMinus: "--",
	PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=", PercentEq: "%=",
	AmpEq: "&=", PipeEq: "|=", CaretEq: "^=",
	LShiftEq: "<<=", RShiftEq: ">>=", URShiftEq: ">>>=",
	Eq: "=", EqEq: "==", Bang: "!", BangEq: "!=",
	Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=",
	LShift: "<<", RShift: ">>", URShift: ">>>",
	AmpAmp: "&&", PipePipe: "||", Amp: "&", Pipe: "|", Caret: "^", Tilde: "~",
	Question: "?", Colon: ":", ColonColon: "::", Arrow: "->",
	Dot: ".", Ellipsis: "...", Comma: ",", Semicolon: ";", At: "@",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
}

func operatorName(k Kind) (string, bool) {
	s, ok := operatorNames[k]
	return s, ok
}

// maximalMunchOperators lists multi-byte operator lexemes in descending
// length order, so the lexer's scan always prefers the longest match.
var maximalMunchOperators = []struct {
	text string
	kind Kind
}{
	{">>>=", URShiftEq},
	{"...", Ellipsis},
	{">>>", URShift},
	{"<<=", LShiftEq},
	{">>=", RShiftEq},
	{"->", Arrow},
	{"::", ColonColon},
	{"++", PlusPlus},
	{"--", MinusMinus},
	{"+=", PlusEq},
	{"-=", MinusEq},
	{"*=", StarEq},
	{"/=", SlashEq},
	{"%=", PercentEq},
	{"&=", AmpEq},
	{"|=", PipeEq},
	{"^=", CaretEq},
	{"==", EqEq},
	{"!=", BangEq},
	{"<=", LtEq},
	{">=", GtEq},
	{"<<", LShift},
	{">>", RShift},
	{"&&", AmpAmp},
	{"||", PipePipe},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"%", Percent},
	{"=", Eq},
	{"!", Bang},
	{"<", Lt},
	{">", Gt},
	{"&", Amp},
	{"|", Pipe},
	{"^", Caret},
	{"~", Tilde},
	{"?", Question},
	{":", Colon},
	{".", Dot},
	{",", Comma},
	{";", Semicolon},
	{"@", At},
	{"(", LParen},
	{")", RParen},
	{"{", LBrace},
	{"}", RBrace},
	{"[", LBracket},
	{"]", RBracket},
}

package lexer

import "testing"

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func nonTrivia(toks []Token) []Token {
	var out []Token
	for _, t := range toks {
		if t.Kind.IsTrivia() {
			continue
		}
		out = append(out, t)
	}
	return out
}

func TestTokenizeAllEndsWithEOF(t *testing.T) {
	toks := TokenizeAll("class T {}")
	if toks[len(toks)-1].Kind != EOF {
		t.Fatalf("expected trailing EOF, got %v", toks[len(toks)-1].Kind)
	}
}

func TestNextTokenAfterEOFKeepsReturningEOF(t *testing.T) {
	lx := New("")
	first := lx.NextToken()
	second := lx.NextToken()
	if first.Kind != EOF || second.Kind != EOF {
		t.Fatalf("expected EOF twice, got %v then %v", first.Kind, second.Kind)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := nonTrivia(TokenizeAll("class Foo extends Bar"))
	want := []Kind{KwClass, Identifier, KwExtends, Identifier, EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestContextualKeywordRecord(t *testing.T) {
	toks := nonTrivia(TokenizeAll("record Point(int x, int y) {}"))
	if toks[0].Kind != KwRecord {
		t.Fatalf("expected record to lex as KwRecord, got %v", toks[0].Kind)
	}
}

func TestMaximalMunchGreaterThan(t *testing.T) {
	toks := nonTrivia(TokenizeAll("a >>>= b"))
	if toks[1].Kind != URShiftEq {
		t.Fatalf("expected >>>= as a single token, got %v", toks[1].Kind)
	}
}

func TestNumericLiterals(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
	}{
		{"42", IntLiteral},
		{"42L", LongLiteral},
		{"3.14", DoubleLiteral},
		{"3.14f", FloatLiteral},
		{"1e10", DoubleLiteral},
		{"1_000_000", IntLiteral},
		{"0x1F", IntLiteral},
		{"0b1010", IntLiteral},
	}
	for _, c := range cases {
		toks := nonTrivia(TokenizeAll(c.src))
		if toks[0].Kind != c.kind {
			t.Errorf("%q: got %v want %v", c.src, toks[0].Kind, c.kind)
		}
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	toks := nonTrivia(TokenizeAll(`"hello" 'c'`))
	if toks[0].Kind != StringLiteral || toks[1].Kind != CharLiteral {
		t.Fatalf("got %v %v", toks[0].Kind, toks[1].Kind)
	}
}

func TestTextBlockLiteral(t *testing.T) {
	src := "\"\"\"\n    hello\n    \"\"\""
	toks := nonTrivia(TokenizeAll(src))
	if toks[0].Kind != TextBlockLiteral {
		t.Fatalf("expected TextBlockLiteral, got %v", toks[0].Kind)
	}
}

func TestStringTemplateLiteral(t *testing.T) {
	toks := nonTrivia(TokenizeAll(`STR."value: \{x}"`))
	// STR is an ordinary identifier followed by '.'; the templated literal
	// is the third token.
	if toks[2].Kind != StringTemplateLiteral {
		t.Fatalf("expected StringTemplateLiteral, got %v", toks[2].Kind)
	}
}

func TestCommentKinds(t *testing.T) {
	toks := TokenizeAll("// line\n/* block */\n/** doc */\n")
	var sawLine, sawBlock, sawDoc bool
	for _, tk := range toks {
		switch tk.Kind {
		case LineComment:
			sawLine = true
		case BlockComment:
			sawBlock = true
		case DocComment:
			sawDoc = true
		}
	}
	if !sawLine || !sawBlock || !sawDoc {
		t.Fatalf("missing comment kinds: line=%v block=%v doc=%v", sawLine, sawBlock, sawDoc)
	}
}

func TestUnknownCharacterYieldsErrorToken(t *testing.T) {
	toks := nonTrivia(TokenizeAll("a ` b"))
	var sawError bool
	for _, tk := range toks {
		if tk.Kind == Error {
			sawError = true
		}
	}
	if !sawError {
		t.Fatal("expected an Error token for unknown character")
	}
}

func TestEveryByteAccountedFor(t *testing.T) {
	src := "class A { int x = 1 + 2; }"
	toks := TokenizeAll(src)
	pos := 0
	for _, tk := range toks {
		if tk.Kind == EOF {
			break
		}
		if tk.Start != pos {
			t.Fatalf("gap before token at %d: expected start %d, got %d", tk.Start, pos, tk.Start)
		}
		pos = tk.End
	}
	if pos != len(src) {
		t.Fatalf("did not consume whole source: stopped at %d of %d", pos, len(src))
	}
}

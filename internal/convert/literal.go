package convert

import "strings"

// discriminateLiteral performs lexeme-based secondary discrimination on a
// KindLiteralExpression's raw text, since the arena's LiteralAttrs schema
// carries only the lexeme and not a subtype tag.
func discriminateLiteral(lexeme string) LiteralKind {
	if lexeme == "" {
		return LiteralNone
	}
	switch lexeme {
	case "true", "false":
		return LiteralBoolean
	case "null":
		return LiteralNull
	}
	switch lexeme[0] {
	case '"':
		if strings.HasPrefix(lexeme, `"""`) {
			return LiteralTextBlock
		}
		return LiteralString
	case '\'':
		return LiteralChar
	default:
		return discriminateNumericLiteral(lexeme)
	}
}

func discriminateNumericLiteral(lexeme string) LiteralKind {
	isHex := len(lexeme) > 1 && lexeme[0] == '0' && (lexeme[1] == 'x' || lexeme[1] == 'X')
	// In a hex literal without a binary exponent, f/F/d/D are hex digits.
	hexDigitSuffix := isHex && !strings.ContainsAny(lexeme, "pP")
	switch lexeme[len(lexeme)-1] {
	case 'l', 'L':
		return LiteralLong
	case 'f', 'F':
		if !hexDigitSuffix {
			return LiteralFloat
		}
	case 'd', 'D':
		if !hexDigitSuffix {
			return LiteralDouble
		}
	}
	if strings.ContainsRune(lexeme, '.') {
		return LiteralDouble
	}
	if !isHex && strings.ContainsAny(lexeme, "eE") {
		return LiteralDouble
	}
	return LiteralInt
}

// decodeTextBlock applies the incidental-whitespace-stripping algorithm
// to a raw `"""`-delimited text block lexeme and decodes its escape
// sequences, producing the text a reader of the formatted source would
// actually see at runtime.
func decodeTextBlock(raw string) string {
	inner := strings.TrimPrefix(raw, `"""`)
	inner = strings.TrimSuffix(inner, `"""`)
	if i := strings.IndexByte(inner, '\n'); i >= 0 && strings.TrimSpace(inner[:i]) == "" {
		inner = inner[i+1:]
	}

	lines := strings.Split(inner, "\n")
	minIndent := -1
	for i, line := range lines {
		last := i == len(lines)-1
		if strings.TrimRight(line, " \t") == "" && !last {
			continue
		}
		indent := leadingWhitespaceWidth(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		stripped := line
		if len(stripped) >= minIndent {
			stripped = stripped[minIndent:]
		} else {
			stripped = strings.TrimLeft(stripped, " \t")
		}
		out[i] = strings.TrimRight(stripped, " \t")
	}
	return decodeEscapes(strings.Join(out, "\n"))
}

func leadingWhitespaceWidth(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}

// decodeEscapes resolves the escape sequences legal in a literal's body:
// the single-character escapes, a trailing line-continuation backslash,
// and bare backslashes left untouched when followed by anything else.
func decodeEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 'f':
			b.WriteByte('\f')
			i++
		case 'b':
			b.WriteByte('\b')
			i++
		case 's':
			b.WriteByte(' ')
			i++
		case '"', '\'', '\\':
			b.WriteByte(s[i+1])
			i++
		case '\n':
			i++ // line continuation: backslash and newline both vanish
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

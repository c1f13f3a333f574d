package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits a query expression into tokens. Bracket and shift
// contents are captured raw; a coalesce operator consumes the rest of
// the input.
func Tokenize(src string) ([]Token, error) {
	var dst []Token
	n := len(src)
	i := 0
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '.':
			dst = append(dst, Token{Type: TDot, Off: i})
			i++
		case c == '$':
			dst = append(dst, Token{Type: TRoot, Off: i})
			i++
		case c == '\'' || c == '"':
			text, end, err := scanQuoted(src, i)
			if err != nil {
				return nil, err
			}
			dst = append(dst, Token{Type: TString, Text: text, Off: i})
			i = end
		case c == '[':
			text, end, err := scanBalanced(src, i, '[', ']')
			if err != nil {
				return nil, err
			}
			dst = append(dst, Token{Type: TExpr, Text: text, Off: i})
			i = end
		case c == '-':
			if i+1 >= n || src[i+1] != '>' {
				return nil, syntaxErr(ErrUnexpected, i, near(src, i))
			}
			dst = append(dst, Token{Type: TArrow, Off: i})
			i += 2
		case c == '>':
			if i+1 >= n || src[i+1] != '>' {
				return nil, syntaxErr(ErrUnexpected, i, near(src, i))
			}
			tok, end, err := scanShift(src, i)
			if err != nil {
				return nil, err
			}
			dst = append(dst, tok)
			i = end
		case c == '?':
			if i+1 >= n || src[i+1] != '?' {
				return nil, syntaxErr(ErrUnexpected, i, near(src, i))
			}
			tail := strings.TrimSpace(src[i+2:])
			if tail == "" {
				return nil, syntaxErr(ErrUnterminated, i, "??")
			}
			dst = append(dst, Token{Type: TCoalesce, Text: tail, Off: i})
			return dst, nil
		default:
			text, end, err := scanIdent(src, i)
			if err != nil {
				return nil, err
			}
			dst = append(dst, Token{Type: TIdent, Text: text, Off: i})
			i = end
		}
	}
	if len(dst) == 0 {
		return nil, syntaxErr(ErrEmpty, 0, "")
	}
	return dst, nil
}

func scanQuoted(src string, start int) (string, int, error) {
	q := src[start]
	var b strings.Builder
	i := start + 1
	n := len(src)
	for i < n {
		c := src[i]
		switch c {
		case '\\':
			if i+1 >= n {
				return "", 0, syntaxErr(ErrBadEscape, i, near(src, i))
			}
			switch src[i+1] {
			case '\'', '"', '\\':
				b.WriteByte(src[i+1])
			default:
				return "", 0, syntaxErr(ErrBadEscape, i, near(src, i))
			}
			i += 2
		case q:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, syntaxErr(ErrUnterminated, start, string(q))
}

// scanBalanced captures the source between open and close, tracking
// nesting and skipping string literals so that keys like ids["a]b"]
// lex correctly.
func scanBalanced(src string, start int, open, close byte) (string, int, error) {
	depth := 0
	i := start
	n := len(src)
	for i < n {
		c := src[i]
		switch c {
		case open:
			depth++
			i++
		case close:
			depth--
			if depth == 0 {
				return src[start+1 : i], i + 1, nil
			}
			i++
		case '\'', '"':
			end, err := skipString(src, i)
			if err != nil {
				return "", 0, err
			}
			i = end
		default:
			i++
		}
	}
	return "", 0, syntaxErr(ErrUnterminated, start, string(open))
}

// skipString advances past a quoted literal without validating its
// escapes. Bracket contents are captured raw and carry their own
// string syntax; only quoted path fields use the strict escape set.
func skipString(src string, start int) (int, error) {
	q := src[start]
	i := start + 1
	n := len(src)
	for i < n {
		switch src[i] {
		case '\\':
			i += 2
		case q:
			return i + 1, nil
		default:
			i++
		}
	}
	return 0, syntaxErr(ErrUnterminated, start, string(q))
}

func scanShift(src string, start int) (Token, int, error) {
	i := start + 2
	n := len(src)
	for i < n && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	if i < n && src[i] == '(' {
		text, end, err := scanBalanced(src, i, '(', ')')
		if err != nil {
			return Token{}, 0, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return Token{}, 0, syntaxErr(ErrUnexpected, i, "()")
		}
		return Token{Type: TShift, Text: text, Off: start}, end, nil
	}
	// bare type name: everything up to whitespace or a coalesce operator
	j := i
	for j < n {
		if src[j] == ' ' || src[j] == '\t' || src[j] == '\n' {
			break
		}
		if src[j] == '?' && j+1 < n && src[j+1] == '?' {
			break
		}
		j++
	}
	if j == i {
		return Token{}, 0, syntaxErr(ErrUnterminated, start, ">>")
	}
	return Token{Type: TShift, Text: src[i:j], Off: start}, j, nil
}

func scanIdent(src string, start int) (string, int, error) {
	i := start
	n := len(src)
	for i < n {
		r, sz := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && sz == 1 {
			return "", 0, syntaxErr(ErrUnexpected, i, near(src, i))
		}
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			i += sz
			continue
		}
		break
	}
	if i == start {
		return "", 0, syntaxErr(ErrUnexpected, start, near(src, start))
	}
	return src[start:i], i, nil
}

func near(src string, i int) string {
	end := i + 8
	if end > len(src) {
		end = len(src)
	}
	return src[i:end]
}

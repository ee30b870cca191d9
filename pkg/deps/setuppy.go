package deps

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// SetupPy extracts install_requires from a setuptools build script. The
// script is never executed: the source is tokenized and scanned for calls
// to a function named setup, either a direct name or an attribute such as
// setuptools.setup, whose install_requires keyword argument holds a literal
// list. String elements of that list become specifiers; anything dynamic
// (variables, comprehensions, call results) is ignored.
type SetupPy struct{}

func (p *SetupPy) Path() string { return SetupPyFile }
func (p *SetupPy) Type() string { return "setup-py" }

func (p *SetupPy) Extract(root string, _ Options) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(root, SetupPyFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	toks, err := scanPython(string(data))
	if err != nil {
		return nil, err
	}
	return collectInstallRequires(toks), nil
}

// collectInstallRequires walks the token stream, finds every setup(...)
// call, and gathers string elements of literal install_requires lists at
// the top level of each call's argument list.
func collectInstallRequires(toks []pyToken) []string {
	var specs []string
	for i := 0; i < len(toks); i++ {
		if !isSetupCall(toks, i) {
			continue
		}

		depth := 1
		j := i + 2
		for j < len(toks) && depth > 0 {
			t := toks[j]
			switch {
			case t.isPunct("(", "[", "{"):
				depth++
			case t.isPunct(")", "]", "}"):
				depth--
			case depth == 1 && t.kind == tokIdent && t.text == "install_requires" &&
				j+2 < len(toks) && toks[j+1].isPunct("=") && toks[j+2].isPunct("["):
				var vals []string
				vals, j = stringList(toks, j+3)
				specs = append(specs, vals...)
				continue
			}
			j++
		}
		i = j - 1 // resume past the call
	}
	return specs
}

// isSetupCall reports whether the token at i opens a call to a function
// named setup. Definitions (def setup, class setup) do not count.
func isSetupCall(toks []pyToken, i int) bool {
	if toks[i].kind != tokIdent || toks[i].text != "setup" {
		return false
	}
	if i+1 >= len(toks) || !toks[i+1].isPunct("(") {
		return false
	}
	if i > 0 && toks[i-1].kind == tokIdent && (toks[i-1].text == "def" || toks[i-1].text == "class") {
		return false
	}
	return true
}

// stringList consumes a literal list from just inside its opening "[" and
// returns the string elements found at the top level of the list, plus the
// index past the closing "]". Adjacent string literals concatenate the way
// they do in Python source.
func stringList(toks []pyToken, start int) ([]string, int) {
	var vals []string
	depth := 1
	adjacent := false
	for j := start; j < len(toks); j++ {
		t := toks[j]
		switch {
		case t.isPunct("(", "[", "{"):
			depth++
			adjacent = false
		case t.isPunct(")", "]", "}"):
			depth--
			if depth == 0 {
				return vals, j + 1
			}
			adjacent = false
		case t.kind == tokString && depth == 1:
			if adjacent && len(vals) > 0 {
				vals[len(vals)-1] += t.text
			} else {
				vals = append(vals, t.text)
			}
			adjacent = true
		default:
			adjacent = false
		}
	}
	return vals, len(toks)
}

type pyTokenKind int

const (
	tokIdent pyTokenKind = iota
	tokString
	tokPunct
	tokOther
)

// pyToken is a single lexical element of a Python source file. For string
// tokens, text holds the decoded literal value.
type pyToken struct {
	kind pyTokenKind
	text string
}

func (t pyToken) isPunct(texts ...string) bool {
	if t.kind != tokPunct {
		return false
	}
	for _, s := range texts {
		if t.text == s {
			return true
		}
	}
	return false
}

// stringPrefixes are the literal prefixes Python allows before a quote.
var stringPrefixes = map[string]bool{
	"r": true, "b": true, "u": true, "f": true,
	"rb": true, "br": true, "rf": true, "fr": true,
}

// scanPython tokenizes Python source just far enough to walk call
// expressions: identifiers, decoded string literals, bracket and operator
// punctuation. Comments, whitespace and line continuations are dropped.
// The only fatal condition is an unterminated string literal.
func scanPython(src string) ([]pyToken, error) {
	var toks []pyToken
	n := len(src)
	for i := 0; i < n; {
		c := src[i]
		switch {
		case c == '#':
			for i < n && src[i] != '\n' {
				i++
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\\':
			i++
		case isIdentStart(c):
			start := i
			for i < n && isIdentPart(src[i]) {
				i++
			}
			word := src[start:i]
			if i < n && (src[i] == '\'' || src[i] == '"') && stringPrefixes[strings.ToLower(word)] {
				val, next, err := scanPyString(src, i, strings.ContainsAny(word, "rR"))
				if err != nil {
					return nil, err
				}
				toks = append(toks, pyToken{kind: tokString, text: val})
				i = next
				continue
			}
			toks = append(toks, pyToken{kind: tokIdent, text: word})
		case c == '\'' || c == '"':
			val, next, err := scanPyString(src, i, false)
			if err != nil {
				return nil, err
			}
			toks = append(toks, pyToken{kind: tokString, text: val})
			i = next
		case c >= '0' && c <= '9':
			start := i
			for i < n && (isIdentPart(src[i]) || src[i] == '.') {
				i++
			}
			toks = append(toks, pyToken{kind: tokOther, text: src[start:i]})
		default:
			// Keep "==", "<=", ":=" and friends as one token so a bare
			// "=" reliably means a keyword argument.
			if i+1 < n && src[i+1] == '=' && strings.IndexByte("=<>!:+-*/%&|^@", c) >= 0 {
				toks = append(toks, pyToken{kind: tokPunct, text: src[i : i+2]})
				i += 2
				continue
			}
			toks = append(toks, pyToken{kind: tokPunct, text: string(c)})
			i++
		}
	}
	return toks, nil
}

// scanPyString consumes a string literal from its opening quote and returns
// the decoded value plus the index past the closing quote. Both quoting
// styles and their triple-quoted forms are handled; raw mode keeps escape
// sequences verbatim.
func scanPyString(src string, i int, raw bool) (string, int, error) {
	q := src[i]
	n := len(src)
	quote := src[i : i+1]
	if i+2 < n && src[i+1] == q && src[i+2] == q {
		quote = src[i : i+3]
	}
	i += len(quote)

	var b strings.Builder
	for i < n {
		if strings.HasPrefix(src[i:], quote) {
			return b.String(), i + len(quote), nil
		}
		c := src[i]
		if c == '\n' && len(quote) == 1 {
			break
		}
		if c == '\\' && i+1 < n {
			if raw {
				b.WriteByte(c)
				b.WriteByte(src[i+1])
			} else {
				b.WriteString(unescapePy(src[i+1]))
			}
			i += 2
			continue
		}
		b.WriteByte(c)
		i++
	}
	return "", i, errors.New("unterminated string literal")
}

// unescapePy decodes a single-character escape sequence. Unrecognized
// escapes keep their backslash, matching Python.
func unescapePy(c byte) string {
	switch c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case '\\':
		return "\\"
	case '\'':
		return "'"
	case '"':
		return "\""
	case '0':
		return "\x00"
	default:
		return "\\" + string(c)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

package mathml

import (
	"io"
	"unicode"

	"github.com/pkg/errors"
)

// verbatimCommands take their argument as plain text
var verbatimCommands = map[string]bool{
	"\\text": true, "\\textrm": true, "\\textit": true, "\\textbf": true, "\\mbox": true, "\\operatorname": true,
}

// Tokenizer splits math mode TeX into tokens, whitespace and comments are skipped
type Tokenizer struct {
	r       io.RuneScanner
	pending []any
}

func NewTokenizer(r io.RuneScanner) *Tokenizer {
	return &Tokenizer{r: r}
}

func (l *Tokenizer) Token() (any, error) {
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t, nil
	}

	if err := l.whitespaces(); err != nil {
		return nil, err
	}

	char, _, err := l.r.ReadRune()
	if err != nil {
		return nil, err
	}

	switch {
	case char == '{':
		return ParameterStart{}, nil
	case char == '}':
		return ParameterEnd{}, nil
	case char == '[':
		return OptionalStart{}, nil
	case char == ']':
		return OptionalEnd{}, nil
	case char == '%':
		if err := l.readLineComment(); err != nil {
			return nil, err
		}

		return l.Token()
	case char == '$':
		// math delimiters around the formula
		return l.Token()
	case char == '\\':
		return l.readBackslash()
	case char == '\'':
		return l.readPrimes()
	case isDigit(char) || char == '.':
		return l.readNumber(char)
	case unicode.IsLetter(char):
		return Letter(char), nil
	default:
		return Symbol(char), nil
	}
}

// readNumber reads digits with at most one decimal point, a point which isn't followed by a digit is a symbol
func (l *Tokenizer) readNumber(first rune) (any, error) {
	runes := []rune{first}
	point := first == '.'

	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		if isDigit(read) {
			runes = append(runes, read)
			continue
		}

		if read == '.' && !point {
			next, _, err := l.r.ReadRune()
			if err != nil && err != io.EOF {
				return nil, err
			}

			if err == nil && isDigit(next) {
				point = true
				runes = append(runes, read, next)
				continue
			}

			if err == nil {
				if err := l.r.UnreadRune(); err != nil {
					return nil, err
				}
			}

			l.pending = append(l.pending, Symbol("."))
			break
		}

		if err := l.r.UnreadRune(); err != nil {
			return nil, err
		}

		break
	}

	if string(runes) == "." {
		return Symbol("."), nil
	}

	return Number(runes), nil
}

func (l *Tokenizer) readBackslash() (any, error) {
	r, _, err := l.r.ReadRune()
	if err == io.EOF {
		return nil, errors.New("command name expected after \\")
	}

	if err != nil {
		return nil, err
	}

	// one symbol command: \, \{ \|
	if !isLetter(r) {
		return Command([]rune{'\\', r}), nil
	}

	if err := l.r.UnreadRune(); err != nil {
		return nil, err
	}

	name, err := l.word()
	if err != nil {
		return nil, err
	}

	command := "\\" + name
	if verbatimCommands[command] {
		return l.readVerbatim(command)
	}

	return Command(command), nil
}

// readVerbatim reads balanced braced argument of a command as plain text
func (l *Tokenizer) readVerbatim(command string) (any, error) {
	if err := l.forwardTo('{'); err != nil {
		return nil, errors.Wrapf(err, "argument of %s", command)
	}

	var runes []rune
	depth := 0
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return nil, errors.Errorf("argument of %s is not closed", command)
		}

		if err != nil {
			return nil, err
		}

		switch read {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return Verbatim{Command: command, Data: string(runes)}, nil
			}

			depth--
		}

		runes = append(runes, read)
	}
}

// readLineComment skips the rest of the line after %
func (l *Tokenizer) readLineComment() error {
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF || read == '\n' {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// readPrimes reads ' '' and ''' as one symbol
func (l *Tokenizer) readPrimes() (any, error) {
	line := []rune{'\''}
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return Symbol(line), nil
		}

		if err != nil {
			return nil, err
		}

		if read != '\'' || len(line) == 3 {
			return Symbol(line), l.r.UnreadRune()
		}

		line = append(line, read)
	}
}

// whitespaces skips until next non-whitespace symbol
func (l *Tokenizer) whitespaces() error {
	for {
		r, _, err := l.r.ReadRune()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		if !isWhitespace(r) {
			return l.r.UnreadRune()
		}
	}
}

// forwardTo skips whitespaces and makes sure next symbol is "e"
func (l *Tokenizer) forwardTo(e rune) error {
	if err := l.whitespaces(); err != nil {
		return err
	}

	return l.expect(e)
}

// expect verifies than following symbol is "e"
func (l *Tokenizer) expect(e rune) error {
	r, _, err := l.r.ReadRune()
	if err == io.EOF {
		return errors.Errorf("expected symbol %c, got end of input", e)
	}

	if err != nil {
		return err
	}

	if r != e {
		return errors.Errorf("expected symbol %c, got %c instead", e, r)
	}

	return nil
}

// word reads sequence of letters
func (l *Tokenizer) word() (string, error) {
	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return string(runes), nil
		}

		if err != nil {
			return "", err
		}

		if !isLetter(read) {
			return string(runes), l.r.UnreadRune()
		}

		runes = append(runes, read)
	}
}

// isLetter returns true for a letter which may be a part of command name
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\n', '\t', '\r':
		return true
	default:
		return false
	}
}

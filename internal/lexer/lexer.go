package lexer

import (
	"strconv"
	"unicode"

	"github.com/tinyscript-lang/tinyscript/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnexpectedCharacter LexerErrorKind = iota
	ErrUnterminatedString
	ErrUnterminatedBlockComment
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnexpectedCharacter:
		return diag.CodeUnexpectedCharacter
	case ErrUnterminatedString:
		return diag.CodeUnterminatedString
	case ErrUnterminatedBlockComment:
		return diag.CodeUnterminatedBlockComment
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer represents the lexer state
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string
	failed   bool // set on the first unexpected character

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	span.Filename = l.filename
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1, // start before first rune
		ch:     0,
		line:   1,
		column: 0, // will be 1 after first read()
	}
	l.read() // move to first character
	return l
}

// SetFilename attributes all subsequently produced spans to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// Scan tokenizes the whole input. On success the returned slice ends
// with exactly one EOF token whose offset is the input length. On the
// first character no rule matches, scanning stops where it stands: the
// grammar offers no character-level resynchronization point.
func Scan(input string) ([]Token, []diag.Diagnostic) {
	return ScanFile("", input)
}

// ScanFile is Scan with spans attributed to the given filename.
func ScanFile(filename, input string) ([]Token, []diag.Diagnostic) {
	l := New(input)
	l.SetFilename(filename)

	var toks []Token
	for {
		tok := l.NextToken()
		if tok.Type == ILLEGAL {
			break
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}

	var diags []diag.Diagnostic
	for _, err := range l.Errors {
		diags = append(diags, err.ToDiagnostic())
	}
	return toks, diags
}

// read advances the lexer to the next character.
// Line/column always reflect the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		// We've moved past the last rune; normalize position to virtual EOF
		if prevPos >= 0 && prevPos < inputLen {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else if prevPos < 0 {
			// Empty input: column should point to the first position
			l.column = 1
		}
		l.ch = 0 // EOF
		return
	}

	l.ch = l.input[l.pos]

	if prevPos >= 0 && prevPos < inputLen && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// currentSpanStart returns the current position for span tracking
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

// makeToken creates a token with span information
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, raw, value string) Token {
	return Token{
		Type:  tokType,
		Raw:   raw,
		Value: value,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      endPos,
		},
	}
}

// skipWhitespace skips inter-token whitespace
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

// skipLineComment consumes "//" to end-of-line or EOF. The "//" has
// already been consumed by the caller.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		l.read()
	}
}

// skipBlockComment consumes a (possibly multi-line) "/* ... */".
func (l *Lexer) skipBlockComment(startLine, startColumn, startPos int) {
	for {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedBlockComment,
				"unterminated block comment",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			return
		}
		if l.ch == '*' && l.peek() == '/' {
			l.read() // consume '*'
			l.read() // consume '/'
			return
		}
		l.read()
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readNumber reads a number literal: digits with an optional single
// fractional part. No hex, no exponent; a trailing '.' without digits
// belongs to whatever follows.
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.read()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		l.read() // consume '.'
		for isDigit(l.ch) {
			l.read()
		}
	}
	return string(l.input[start:l.pos])
}

// NextToken returns the next token from the input. After the first
// unexpected character it keeps returning the ILLEGAL token: the scan
// does not resynchronize.
func (l *Lexer) NextToken() Token {
	for {
		if l.failed {
			startLine, startColumn, startPos := l.currentSpanStart()
			return l.makeToken(ILLEGAL, startLine, startColumn, startPos, startPos, "", "")
		}

		l.skipWhitespace()

		switch l.ch {
		case 0:
			startLine, startColumn, startPos := l.currentSpanStart()
			if startColumn == 0 {
				startColumn = 1
			}
			return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "", "")

		case '=':
			startLine, startColumn, startPos := l.currentSpanStart()
			if l.peek() == '>' {
				ch := l.ch
				l.read()
				raw := string(ch) + string(l.ch)
				l.read()
				return l.makeToken(FATARROW, startLine, startColumn, startPos, l.pos, raw, raw)
			}
			raw := string(l.ch)
			l.read()
			return l.makeToken(ASSIGN, startLine, startColumn, startPos, l.pos, raw, raw)

		case '+':
			return l.singleRune(PLUS)

		case '?':
			return l.singleRune(QUESTION)

		case '|':
			return l.singleRune(PIPE)

		case '<':
			return l.singleRune(LT)

		case '>':
			return l.singleRune(GT)

		case ';':
			return l.singleRune(SEMICOLON)

		case ',':
			return l.singleRune(COMMA)

		case ':':
			return l.singleRune(COLON)

		case '(':
			return l.singleRune(LPAREN)

		case ')':
			return l.singleRune(RPAREN)

		case '{':
			return l.singleRune(LBRACE)

		case '}':
			return l.singleRune(RBRACE)

		case '[':
			return l.singleRune(LBRACKET)

		case ']':
			return l.singleRune(RBRACKET)

		case '/':
			startLine, startColumn, startPos := l.currentSpanStart()
			switch l.peek() {
			case '/':
				l.read() // consume first '/'
				l.read() // consume second '/'
				l.skipLineComment()
				continue
			case '*':
				l.read() // consume '/'
				l.read() // consume '*'
				l.skipBlockComment(startLine, startColumn, startPos)
				continue
			default:
				return l.fail(startLine, startColumn, startPos)
			}

		case '"', '\'':
			startLine, startColumn, startPos := l.currentSpanStart()
			raw, value, terminated := l.readString(startLine, startColumn, startPos, l.ch)
			if !terminated {
				l.failed = true
				return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
			}
			return l.makeToken(STRING, startLine, startColumn, startPos, l.pos, raw, value)

		default:
			if isLetter(l.ch) {
				startLine, startColumn, startPos := l.currentSpanStart()
				literal := l.readIdentifier()
				tokType := LookupIdent(literal)
				return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, literal, literal)
			} else if isDigit(l.ch) {
				startLine, startColumn, startPos := l.currentSpanStart()
				literal := l.readNumber()
				return l.makeToken(NUMBER, startLine, startColumn, startPos, l.pos, literal, literal)
			}
			startLine, startColumn, startPos := l.currentSpanStart()
			return l.fail(startLine, startColumn, startPos)
		}
	}
}

// singleRune emits a one-rune token of the given type.
func (l *Lexer) singleRune(tt TokenType) Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	raw := string(l.ch)
	l.read()
	return l.makeToken(tt, startLine, startColumn, startPos, l.pos, raw, raw)
}

// fail records an unexpected-character error and poisons the lexer.
func (l *Lexer) fail(startLine, startColumn, startPos int) Token {
	raw := string(l.ch)
	l.read()
	tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
	l.addError(
		ErrUnexpectedCharacter,
		"unexpected character "+strconv.Quote(raw),
		tok.Span,
	)
	l.failed = true
	return tok
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}

// readString reads a string literal delimited by quote, handling
// escape sequences. Returns both raw (with escapes) and decoded values,
// along with a flag indicating whether the string was terminated.
func (l *Lexer) readString(startLine, startColumn, startPos int, quote rune) (raw string, value string, terminated bool) {
	var rawRunes []rune
	var decodedRunes []rune

	rawRunes = append(rawRunes, quote) // include opening quote
	l.read()                           // skip opening quote

	for {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedString,
				"unterminated string literal",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			break
		}
		if l.ch == quote {
			rawRunes = append(rawRunes, quote) // include closing quote
			l.read()                           // consume closing quote
			return string(rawRunes), string(decodedRunes), true
		}
		if l.ch == '\n' || l.ch == '\r' {
			l.addError(
				ErrUnterminatedString,
				"newline in string literal",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			break
		}
		if l.ch == '\\' {
			rawRunes = append(rawRunes, '\\')
			l.read() // skip '\'
			if l.ch != 0 {
				rawRunes = append(rawRunes, l.ch)
				switch l.ch {
				case 'n':
					decodedRunes = append(decodedRunes, '\n')
				case 't':
					decodedRunes = append(decodedRunes, '\t')
				case 'r':
					decodedRunes = append(decodedRunes, '\r')
				case '\\':
					decodedRunes = append(decodedRunes, '\\')
				case '"':
					decodedRunes = append(decodedRunes, '"')
				case '\'':
					decodedRunes = append(decodedRunes, '\'')
				default:
					// Unknown escapes keep the backslash.
					decodedRunes = append(decodedRunes, '\\')
					decodedRunes = append(decodedRunes, l.ch)
				}
				l.read() // skip escaped char
			}
			continue
		}
		rawRunes = append(rawRunes, l.ch)
		decodedRunes = append(decodedRunes, l.ch)
		l.read()
	}

	return string(rawRunes), string(decodedRunes), false
}

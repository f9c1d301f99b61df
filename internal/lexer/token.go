package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune or original string
	End      int    // exclusive end index
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Raw   string // exact runes from source
	Value string // decoded value (for strings, same as Raw for others)
	Span  Span   // source location information
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // add, foobar, x, y, ...
	NUMBER TokenType = "NUMBER" // 42, 3.14
	STRING TokenType = "STRING" // "hello", 'hello'

	// Operators
	ASSIGN   TokenType = "="
	FATARROW TokenType = "=>"
	PLUS     TokenType = "+"
	QUESTION TokenType = "?"
	PIPE     TokenType = "|"
	LT       TokenType = "<"
	GT       TokenType = ">"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	CONST  TokenType = "CONST"
	RETURN TokenType = "RETURN"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"

	// Type keywords. Each reserved type name lexes as its own kind so
	// the annotation grammar never has to second-guess an IDENT.
	TY_NUMBER  TokenType = "number"
	TY_STRING  TokenType = "string"
	TY_BOOLEAN TokenType = "boolean"
	TY_VOID    TokenType = "void"
	TY_ARRAY   TokenType = "Array"
	TY_UVOID   TokenType = "Void"
	TY_FLOAT   TokenType = "Float"
	TY_BOOL    TokenType = "Bool"
	TY_UNIT    TokenType = "Unit"
)

var keywords = map[string]TokenType{
	"const":   CONST,
	"return":  RETURN,
	"true":    TRUE,
	"false":   FALSE,
	"number":  TY_NUMBER,
	"string":  TY_STRING,
	"boolean": TY_BOOLEAN,
	"void":    TY_VOID,
	"Array":   TY_ARRAY,
	"Void":    TY_UVOID,
	"Float":   TY_FLOAT,
	"Bool":    TY_BOOL,
	"Unit":    TY_UNIT,
}

// LookupIdent checks if the identifier is a keyword. Keywords win over
// general identifiers; the word boundary is implicit because the caller
// hands over a maximal identifier run, so "constellation" stays IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsTypeKeyword reports whether tt names one of the reserved primitive
// type keywords (Array excluded; it heads the generic form).
func IsTypeKeyword(tt TokenType) bool {
	switch tt {
	case TY_NUMBER, TY_STRING, TY_BOOLEAN, TY_VOID, TY_UVOID, TY_FLOAT, TY_BOOL, TY_UNIT:
		return true
	default:
		return false
	}
}

package vader

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// TokenKind classifies expression tokens.
type TokenKind int

const (
	TokenOther TokenKind = iota
	TokenString
	TokenNumber
	TokenIdent
	TokenOperator
	TokenPunct
	TokenSpace
)

// Token is one lexeme of an expression. Concatenating the Text of all tokens
// reproduces the input exactly.
type Token struct {
	Kind TokenKind
	Text string
}

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'|` + "`[^`]*`"},
	{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Operator", Pattern: `==|!=|<=|>=|&&|\|\||\+=|-=|\*=|/=|->|=>|[-+*/%<>=!&|^]`},
	{Name: "Punct", Pattern: `[(){}\[\],.:;?@$#~]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `.`},
})

var tokenKinds = func() map[lexer.TokenType]TokenKind {
	sym := exprLexer.Symbols()
	return map[lexer.TokenType]TokenKind{
		sym["String"]:     TokenString,
		sym["Number"]:     TokenNumber,
		sym["Ident"]:      TokenIdent,
		sym["Operator"]:   TokenOperator,
		sym["Punct"]:      TokenPunct,
		sym["Whitespace"]: TokenSpace,
		sym["Other"]:      TokenOther,
	}
}()

// Tokenize splits an expression into tokens. It never fails: input the lexer
// cannot handle is returned as a single TokenOther.
func Tokenize(expr string) []Token {
	if expr == "" {
		return nil
	}
	lx, err := exprLexer.LexString("", expr)
	if err != nil {
		return []Token{{Kind: TokenOther, Text: expr}}
	}
	raw, err := lexer.ConsumeAll(lx)
	if err != nil {
		return []Token{{Kind: TokenOther, Text: expr}}
	}

	tokens := make([]Token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			break
		}
		tokens = append(tokens, Token{Kind: tokenKinds[t.Type], Text: t.Value})
	}
	return tokens
}

// Join concatenates token texts.
func Join(tokens []Token) string {
	n := 0
	for _, t := range tokens {
		n += len(t.Text)
	}
	b := make([]byte, 0, n)
	for _, t := range tokens {
		b = append(b, t.Text...)
	}
	return string(b)
}

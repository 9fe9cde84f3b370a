package scanner_test

import (
	"testing"

	"github.com/mna/ghost/lang/scanner"
	"github.com/mna/ghost/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	s := scanner.New([]byte(src))
	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "(){},.-+;/*! != = == > >= < <=")
	require.Equal(t, []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.MINUS, token.PLUS, token.SEMI, token.SLASH, token.STAR,
		token.BANG, token.BANG_EQ, token.EQ, token.EQ_EQ, token.GT, token.GT_EQ,
		token.LT, token.LT_EQ, token.EOF,
	}, kinds(toks))
}

func TestScanKeywords(t *testing.T) {
	toks := scanAll(t, "and class else false for function if null or print return super this true var while")
	want := []token.Kind{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR, token.FUNCTION,
		token.IF, token.NULL, token.OR, token.PRINT, token.RETURN, token.SUPER,
		token.THIS, token.TRUE, token.VAR, token.WHILE, token.EOF,
	}
	require.Equal(t, want, kinds(toks))
}

func TestScanIdentifierNotKeyword(t *testing.T) {
	toks := scanAll(t, "classic")
	require.Equal(t, []token.Kind{token.IDENT, token.EOF}, kinds(toks))
	require.Equal(t, "classic", toks[0].Lexeme)
}

func TestScanNumbers(t *testing.T) {
	toks := scanAll(t, "123 1.5 0.25")
	require.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
	require.Equal(t, "123", toks[0].Lexeme)
	require.Equal(t, "1.5", toks[1].Lexeme)
	require.Equal(t, "0.25", toks[2].Lexeme)
}

func TestScanNumberTrailingDotIsNotConsumed(t *testing.T) {
	toks := scanAll(t, "123.method()")
	require.Equal(t, []token.Kind{
		token.NUMBER, token.DOT, token.IDENT, token.LPAREN, token.RPAREN, token.EOF,
	}, kinds(toks))
	require.Equal(t, "123", toks[0].Lexeme)
}

func TestScanString(t *testing.T) {
	toks := scanAll(t, `"hello world"`)
	require.Equal(t, []token.Kind{token.STRING, token.EOF}, kinds(toks))
	require.Equal(t, `"hello world"`, toks[0].Lexeme)
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(t, `"oops`)
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
	require.Contains(t, toks[0].Lexeme, "unterminated")
}

func TestScanLineComment(t *testing.T) {
	toks := scanAll(t, "1 // ignored\n2")
	require.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[1].Line)
}

func TestScanTracksLineNumbers(t *testing.T) {
	toks := scanAll(t, "1\n2\n\n3")
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[1].Line)
	require.Equal(t, 4, toks[2].Line)
}

func TestScanIllegalCharacter(t *testing.T) {
	toks := scanAll(t, "@")
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
}

func TestScanEOFIsSticky(t *testing.T) {
	s := scanner.New([]byte(""))
	require.Equal(t, token.EOF, s.Next().Kind)
	require.Equal(t, token.EOF, s.Next().Kind)
}

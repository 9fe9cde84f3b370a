package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		require.NotEmpty(t, k.String(), "kind %d missing a string representation", k)
	}
	require.Equal(t, "invalid token", Kind(-1).String())
	require.Equal(t, "invalid token", maxKind.String())
}

func TestKeywordsRoundTrip(t *testing.T) {
	for lexeme, kind := range Keywords {
		require.Equal(t, lexeme, kind.String())
	}
}

func TestTokenStringQuotesStringLiteral(t *testing.T) {
	tok := Token{Kind: STRING, Lexeme: `"hi"`, Line: 1}
	require.Equal(t, `string "hi"`, tok.String())

	tok = Token{Kind: PLUS, Lexeme: "+", Line: 1}
	require.Equal(t, "+", tok.String())
}

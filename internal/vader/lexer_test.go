package vader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeRoundTrips(t *testing.T) {
	inputs := []string{
		`x > 5 y no activo`,
		`"hola y adiós" + nombre`,
		`longitud(lista) >= 3.5`,
		`año == 2024`,
		`"sin cerrar`,
	}
	for _, in := range inputs {
		assert.Equal(t, in, Join(Tokenize(in)), in)
	}
}

func TestTokenizeKinds(t *testing.T) {
	tokens := Tokenize(`si_x == "y" o 3`)
	var got []TokenKind
	for _, tok := range tokens {
		got = append(got, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokenIdent, TokenSpace, TokenOperator, TokenSpace, TokenString,
		TokenSpace, TokenIdent, TokenSpace, TokenNumber,
	}, got)
	assert.Empty(t, Tokenize(""))
}

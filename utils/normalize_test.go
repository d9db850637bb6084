package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Arroz Branco", "arroz branco"},
		{"  Feijão   Preto  ", "feijao preto"},
		{"Brócolis", "brocolis"},
		{"couve-flor", "couve flor"},
		{"Açaí c/ granola (300g)", "acai c granola 300g"},
		{"MAÇÃ", "maca"},
		{"", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeName(c.in), "input %q", c.in)
	}
}

func TestNormalizeState(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"cru", "raw"},
		{"Crua", "raw"},
		{"cozido", "cooked"},
		{"COZIDA", "cooked"},
		{"grelhado", "grilled"},
		{"frita", "fried"},
		{"fried", "fried"},
		{"al dente", ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeState(c.in), "input %q", c.in)
	}
}

package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"first and last", "Maria da Silva", "maria.silva"},
		{"accents folded", "João de Lima", "joao.lima"},
		{"uppercase", "JOÃO DE LIMA", "joao.lima"},
		{"single token", "Madonna", "madonna"},
		{"surrounding and inner whitespace", "  Pedro   Alves  ", "pedro.alves"},
		{"empty", "", FallbackUsername},
		{"whitespace only", "   \t ", FallbackUsername},
		{"cedilla and tilde", "Conceição São João", "conceicao.joao"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Username(tt.in))
		})
	}
}

func TestUsernameIdempotent(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Maria da Silva", "João de Lima", "Madonna", ""} {
		once := Username(name)
		assert.Equal(t, once, Username(once), "deriving from %q twice", name)
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso date", "2003-11-01", "01112003"},
		{"slash date", "01/11/2003", "01112003"},
		{"iso default scenario", "1940-03-15", "15031940"},
		{"raw digits pass through", "15031940", "15031940"},
		{"short digit run", "1940-03", "194003"},
		{"long digit run", "1940-03-15-99", "1940031599"},
		{"no digits", "unknown", ""},
		{"dotted separator bypasses reformat", "01.11.2003", "01112003"},
		{"dash wins over slash", "01/11-2003", "03200111"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Password(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "maria.silva", NormalizeUsername("  Maria.Silva "))
	assert.Equal(t, "", NormalizeUsername("   "))
	assert.Equal(t, "01112003", NormalizePassword("01/11/2003"))
	assert.Equal(t, "", NormalizePassword("senhaerrada"))
}

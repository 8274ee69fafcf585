package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	assert.Equal(t, "1.234.567", Int(1234567))
	assert.Equal(t, "42", Int(42))
}

func TestBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", BRL(1234.5))
	assert.Equal(t, "R$ 0,00", BRL(0))
	assert.Equal(t, "-R$ 10,25", BRL(-10.25))
}

func TestPercentAndSigned(t *testing.T) {
	assert.Equal(t, "73%", Percent(0.734))
	assert.Equal(t, "0%", Percent(0))
	assert.Equal(t, "+1,5", Signed(1.5))
	assert.Equal(t, "-0,4", Signed(-0.4))
}

package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	token, err := Generate(8)
	assert.NoError(t, err)
	assert.Equal(t, 8, len(token))

	token2, err := Generate(8)
	assert.NoError(t, err)
	assert.NotEqual(t, token, token2)
}

func TestGenerate_Alphabet(t *testing.T) {
	a := assert.New(t)

	re := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 20; i++ {
		code, err := Generate(6)
		a.NoError(err)
		a.Regexp(re, code)
	}
}

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixPattern(t *testing.T) {
	assert.Equal(t, "par%", PrefixPattern("Par"))
	assert.Equal(t, "%", PrefixPattern(""))
	assert.Equal(t, `100\%%`, PrefixPattern("100%"))
	assert.Equal(t, `a\_b%`, PrefixPattern("a_b"))
	assert.Equal(t, `c:\\%`, PrefixPattern(`c:\`))
}

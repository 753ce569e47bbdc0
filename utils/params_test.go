package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageDefaults(t *testing.T) {
	assert.Equal(t, "1", Page(""))
	assert.Equal(t, "1", Page("0"))
	assert.Equal(t, "1", Page("-3"))
	assert.Equal(t, "1", Page("abc"))
}

func TestPagePassThrough(t *testing.T) {
	// Positive raw values survive unconverted, zero padding and all.
	assert.Equal(t, "2", Page("2"))
	assert.Equal(t, "007", Page("007"))
	assert.Equal(t, "2.5", Page("2.5"))
}

func TestLimitDefaults(t *testing.T) {
	assert.Equal(t, "20", Limit(""))
	assert.Equal(t, "20", Limit("0"))
	assert.Equal(t, "20", Limit("nope"))
	assert.Equal(t, "50", Limit("50"))
}

func TestDescriptionLengthDefaults(t *testing.T) {
	assert.Equal(t, "200", DescriptionLength(""))
	assert.Equal(t, "200", DescriptionLength("-1"))
	assert.Equal(t, "120", DescriptionLength("120"))
}

func TestAtoiTruncates(t *testing.T) {
	assert.Equal(t, 2, Atoi("2.5"))
	assert.Equal(t, 7, Atoi("007"))
	assert.Equal(t, 0, Atoi("garbage"))
	assert.Equal(t, 0, Atoi(""))
}

func TestUniqueIDLengthAndAlphabet(t *testing.T) {
	id := UniqueID(11)
	assert.Len(t, id, 11)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(idAlphabet, r), "unexpected rune %q", r)
	}
}

func TestUniqueIDVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		seen[UniqueID(11)] = true
	}
	assert.Greater(t, len(seen), 1)
}

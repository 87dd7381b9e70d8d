package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewName(t *testing.T) {
	name, err := NewName("  Foundation work  ")
	require.NoError(t, err)
	assert.Equal(t, "Foundation work", name, "should trim surrounding whitespace")

	_, err = NewName("   ")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "name", validation.Field)

	// 200 runes is the limit; multibyte characters count as one rune each.
	long := strings.Repeat("工", 200)
	name, err = NewName(long)
	require.NoError(t, err)
	assert.Equal(t, long, name)

	_, err = NewName(strings.Repeat("工", 201))
	assert.Error(t, err)
}

func TestNewPriority(t *testing.T) {
	for p := 0; p <= 9; p++ {
		got, err := NewPriority(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := NewPriority(-1)
	assert.Error(t, err)
	_, err = NewPriority(10)
	assert.Error(t, err)
}

func TestNewTemplatePriority(t *testing.T) {
	for p := 0; p <= 2; p++ {
		got, err := NewTemplatePriority(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := NewTemplatePriority(3)
	assert.Error(t, err)
	_, err = NewTemplatePriority(-1)
	assert.Error(t, err)
}

func TestCapacityError_Message(t *testing.T) {
	err := &CapacityError{Requested: 7, Remaining: 2}
	assert.Equal(t, "requested 7 units but only 2 remaining on parent task", err.Error())
}

func TestConsistencyError_Message(t *testing.T) {
	err := &ConsistencyError{Actual: 6, Planned: 5}
	assert.Equal(t, "actual count 6 exceeds planned count 5", err.Error())
}

package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID("member")

	prefix, rest, ok := strings.Cut(id, ":")
	require.True(t, ok)
	assert.Equal(t, "member", prefix)
	_, err := uuid.Parse(rest)
	assert.NoError(t, err)

	assert.NotEqual(t, id, GenerateID("member"))
}

func TestItemUpdateEmpty(t *testing.T) {
	assert.True(t, ItemUpdate{}.Empty())
	name := "x"
	assert.False(t, ItemUpdate{Name: &name}.Empty())
}

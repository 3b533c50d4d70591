package cybersource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldSetInsertionOrder(t *testing.T) {
	fs := NewFieldSet()
	fs.Set("b", "2")
	fs.Set("a", "1")
	fs.Set("c", "3")

	assert.Equal(t, []string{"b", "a", "c"}, fs.Names())
	assert.Equal(t, 3, fs.Len())
}

func TestFieldSetOverwriteKeepsPosition(t *testing.T) {
	fs := NewFieldSet()
	fs.Set("a", "1")
	fs.Set("b", "2")
	fs.Set("a", "overwritten")

	assert.Equal(t, []string{"a", "b"}, fs.Names())
	assert.Equal(t, "overwritten", fs.Get("a"))
	assert.Equal(t, 2, fs.Len())
}

func TestFieldSetGetAbsent(t *testing.T) {
	fs := NewFieldSet()

	assert.Equal(t, "", fs.Get("missing"))
	assert.False(t, fs.Has("missing"))

	fs.Set("present", "")
	assert.True(t, fs.Has("present"))
}

func TestFieldSetPairs(t *testing.T) {
	fs := NewFieldSet()
	fs.Set("x", "1")
	fs.Set("y", "2")

	assert.Equal(t, []FieldPair{{Name: "x", Value: "1"}, {Name: "y", Value: "2"}}, fs.Pairs())
}

package uview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataOrder(t *testing.T) {
	md := NewMetadata()
	md.Set("b", Int(1))
	md.Set("a", Quantity(2.5, "V"))
	md.Set("c", Text("x"))
	md.Set("b", Int(3))

	assert.Equal(t, []string{"b", "a", "c"}, md.Keys())
	assert.Equal(t, "b: 3\na: 2.5 V\nc: x\n", md.String())

	var seen []string
	md.Each(func(name string, v Value) bool {
		seen = append(seen, name)
		return name != "a"
	})
	assert.Equal(t, []string{"b", "a"}, seen)
}

package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(bs string) Slice {
	s := make(Slice, len(bs))
	for i := 0; i < len(bs); i++ {
		s[i] = Atom{Byte: bs[i]}
	}
	return s
}

func wild(n int) Slice {
	s := make(Slice, n)
	for i := range s {
		s[i] = Atom{Wildcard: true}
	}
	return s
}

func TestShapeAll(t *testing.T) {
	for _, pattern := range []string{"%", "%%", "%%%"} {
		p := Parse([]byte(pattern))
		assert.Equal(t, ShapeAll, p.Shape, "pattern %q", pattern)
		assert.Equal(t, 0, p.MinLength)
	}
}

func TestShapeExactEmptyPattern(t *testing.T) {
	p := Parse([]byte(""))
	require.Equal(t, ShapeExact, p.Shape)
	assert.Empty(t, p.Slices)
	assert.Equal(t, 0, p.MinLength)
}

func TestShapePureWildcards(t *testing.T) {
	p := Parse([]byte("___"))
	require.Equal(t, ShapePureWildcards, p.Shape)
	assert.Equal(t, 3, p.MinLength)
	assert.True(t, cmp.Equal([]Slice{wild(3)}, p.Slices))
}

func TestShapeExactLiteral(t *testing.T) {
	p := Parse([]byte("abc"))
	require.Equal(t, ShapeExact, p.Shape)
	assert.True(t, cmp.Equal([]Slice{lit("abc")}, p.Slices))
	assert.Equal(t, 3, p.MinLength)
}

func TestShapeExactWithUnderscore(t *testing.T) {
	p := Parse([]byte("a_c"))
	require.Equal(t, ShapeExact, p.Shape)
	want := Slice{{Byte: 'a'}, {Wildcard: true}, {Byte: 'c'}}
	assert.True(t, cmp.Equal([]Slice{want}, p.Slices))
}

func TestShapePrefix(t *testing.T) {
	p := Parse([]byte("abc%"))
	require.Equal(t, ShapePrefix, p.Shape)
	assert.False(t, p.StartsWithPercent)
	assert.True(t, p.EndsWithPercent)
	assert.True(t, cmp.Equal([]Slice{lit("abc")}, p.Slices))
}

func TestShapeSuffix(t *testing.T) {
	p := Parse([]byte("%abc"))
	require.Equal(t, ShapeSuffix, p.Shape)
	assert.True(t, p.StartsWithPercent)
	assert.False(t, p.EndsWithPercent)
}

func TestShapeContainsOne(t *testing.T) {
	p := Parse([]byte("%abc%"))
	require.Equal(t, ShapeContainsOne, p.Shape)
	assert.True(t, p.StartsWithPercent)
	assert.True(t, p.EndsWithPercent)
	assert.False(t, p.ContainsByteFast)
}

func TestShapeContainsOneFastPathSingleByte(t *testing.T) {
	p := Parse([]byte("%c%"))
	require.Equal(t, ShapeContainsOne, p.Shape)
	require.True(t, p.ContainsByteFast)
	assert.Equal(t, byte('c'), p.ContainsByte)
}

func TestShapeContainsOneFastPathExcludesWildcard(t *testing.T) {
	p := Parse([]byte("%_%"))
	require.Equal(t, ShapeContainsOne, p.Shape)
	assert.False(t, p.ContainsByteFast, "a single '_' is not a literal-byte fast path")
}

func TestShapeMulti(t *testing.T) {
	p := Parse([]byte("ab%cd%ef"))
	require.Equal(t, ShapeMulti, p.Shape)
	assert.False(t, p.StartsWithPercent)
	assert.False(t, p.EndsWithPercent)
	assert.True(t, cmp.Equal([]Slice{lit("ab"), lit("cd"), lit("ef")}, p.Slices))
	assert.Equal(t, 6, p.MinLength)
}

func TestShapeMultiWithLeadingAndTrailingPercent(t *testing.T) {
	p := Parse([]byte("%ab%cd%"))
	require.Equal(t, ShapeMulti, p.Shape)
	assert.True(t, p.StartsWithPercent)
	assert.True(t, p.EndsWithPercent)
	assert.True(t, cmp.Equal([]Slice{lit("ab"), lit("cd")}, p.Slices))
}

func TestConsecutivePercentRunsCollapse(t *testing.T) {
	p := Parse([]byte("a%%%b"))
	require.Equal(t, ShapeMulti, p.Shape)
	assert.True(t, cmp.Equal([]Slice{lit("a"), lit("b")}, p.Slices))
}

package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"likeindex/internal/index"
)

func buildExecutor(t *testing.T, records []string, cap int) *Executor {
	t.Helper()
	raw := make([][]byte, len(records))
	for i, s := range records {
		raw[i] = []byte(s)
	}
	idx, err := index.Build(index.NewSliceSource(raw), cap)
	require.NoError(t, err)
	return New(idx)
}

func idSet(ids []uint32) map[uint32]bool {
	out := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

// corpus: 0:"" 1:"a" 2:"ab" 3:"abc" 4:"abcd" 5:"xaby" 6:"banana"
func sampleCorpus() []string {
	return []string{"", "a", "ab", "abc", "abcd", "xaby", "banana"}
}

func TestShapeAllMatchesEverything(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs("%"))
	assert.Len(t, got, 7)
	assert.Equal(t, 7, e.QueryCount("%"))
}

func TestShapeExactEmptyPatternMatchesEmptyRecordOnly(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs(""))
	assert.Equal(t, map[uint32]bool{0: true}, got)
}

func TestShapePureWildcardsSingleUnderscore(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs("_"))
	assert.Equal(t, map[uint32]bool{1: true}, got)
}

func TestShapePureWildcardsGroupsByLength(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs("____"))
	assert.Equal(t, map[uint32]bool{4: true, 5: true}, got, "abcd and xaby are both length 4")
}

func TestShapeExactLiteral(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs("a"))
	assert.Equal(t, map[uint32]bool{1: true}, got)
}

func TestShapePrefix(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs("a%"))
	assert.Equal(t, map[uint32]bool{1: true, 2: true, 3: true, 4: true}, got)
}

func TestShapeSuffix(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs("%a"))
	assert.Equal(t, map[uint32]bool{1: true, 6: true}, got)
}

func TestShapeContainsOneFastPath(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs("%a%"))
	assert.Equal(t, map[uint32]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true}, got)
}

func TestShapeContainsOneMultiByte(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs("%an%"))
	assert.Equal(t, map[uint32]bool{6: true}, got)
}

func TestUnderscoreAnchoredEmptyResult(t *testing.T) {
	// "_a_" requires the middle byte to be 'a'; "abc" has 'b' there, so
	// the only length-3 record fails to match and the result is empty.
	e := buildExecutor(t, sampleCorpus(), 256)
	got := e.QueryIDs("_a_")
	assert.Empty(t, got)
	assert.Equal(t, 0, e.QueryCount("_a_"))
}

func TestMixedLiteralAndUnderscoreExact(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs("a_c"))
	assert.Equal(t, map[uint32]bool{3: true}, got)
}

func TestShapeMultiDualAnchor(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs("a%c"))
	assert.Equal(t, map[uint32]bool{3: true}, got)
}

func TestShapeMultiDistinctAnchors(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	got := idSet(e.QueryIDs("x%y"))
	assert.Equal(t, map[uint32]bool{5: true}, got)
}

func TestQueryRowsHydratesBytes(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	rows := e.QueryRows("%a%")
	var texts []string
	for _, r := range rows {
		texts = append(texts, string(r))
	}
	assert.ElementsMatch(t, []string{"a", "ab", "abc", "abcd", "xaby", "banana"}, texts)
}

func TestQueryIDsAreAscending(t *testing.T) {
	e := buildExecutor(t, sampleCorpus(), 256)
	ids := e.QueryIDs("%")
	for i := 1; i < len(ids); i++ {
		require.Less(t, ids[i-1], ids[i])
	}
}

func TestPrefixBeyondCappedLengthFallsBackToVerification(t *testing.T) {
	corpus := []string{"abcde", "abcxy", "xxxxx"}
	e := buildExecutor(t, corpus, 2)

	got := idSet(e.QueryIDs("abc%"))
	assert.Equal(t, map[uint32]bool{0: true, 1: true}, got)
}

func TestSuffixBeyondCappedLengthFallsBackToVerification(t *testing.T) {
	corpus := []string{"xxcde", "yycde", "xxxxx"}
	e := buildExecutor(t, corpus, 2)

	got := idSet(e.QueryIDs("%cde"))
	assert.Equal(t, map[uint32]bool{0: true, 1: true}, got)
}

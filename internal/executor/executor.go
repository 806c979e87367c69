// Package executor evaluates a parsed LIKE pattern against a positional
// bitmap index: per-shape bitmap-algebra plans narrow the candidate set as
// far as possible, and a single greedy verification pass (the same
// backtracking strategy a hand-written glob matcher uses) resolves
// whichever part of the match bitmap algebra alone cannot prove exact.
package executor

import (
	"likeindex/internal/bitmap"
	"likeindex/internal/index"
	"likeindex/internal/planner"
)

// Executor answers LIKE queries against a built index.
type Executor struct {
	idx *index.Index
}

// New wraps idx for querying.
func New(idx *index.Index) *Executor {
	return &Executor{idx: idx}
}

// QueryCount returns the number of records matching pattern.
func (e *Executor) QueryCount(pattern string) int {
	return e.evaluate(planner.Parse([]byte(pattern))).Cardinality()
}

// QueryIDs returns the ascending ids of records matching pattern.
func (e *Executor) QueryIDs(pattern string) []uint32 {
	return Emit(e.evaluate(planner.Parse([]byte(pattern))))
}

// QueryRows returns the ascending ids' record bytes for records matching
// pattern.
func (e *Executor) QueryRows(pattern string) [][]byte {
	return EmitRows(e.idx, e.evaluate(planner.Parse([]byte(pattern))))
}

// Emit converts a match bitmap into its ascending member list. Cardinality
// is known before enumeration begins, so the backing slice is sized once;
// members stream from the bitmap's own lazy iterator rather than an
// eagerly materialized intermediate.
func Emit(bm *bitmap.Bitmap) []uint32 {
	out := make([]uint32, 0, bm.Cardinality())
	it := bm.Iterator()
	for it.Next() {
		out = append(out, it.Value())
	}
	return out
}

// EmitRows hydrates a match bitmap's members into their record bytes, in
// ascending id order.
func EmitRows(idx *index.Index, bm *bitmap.Bitmap) [][]byte {
	rows := make([][]byte, 0, bm.Cardinality())
	it := bm.Iterator()
	for it.Next() {
		rows = append(rows, idx.RecordBytes(it.Value()))
	}
	return rows
}

// evaluate dispatches on the plan's shape, building a candidate bitmap and
// falling back to verification when the bitmap-algebra result is not
// already provably exact.
func (e *Executor) evaluate(p *planner.Plan) *bitmap.Bitmap {
	switch p.Shape {
	case planner.ShapeAll:
		return e.idx.AllIDs().Clone()

	case planner.ShapePureWildcards:
		candidate, exact := e.idx.LengthEq(p.MinLength)
		if exact {
			return candidate
		}
		return e.verify(candidate, p)

	case planner.ShapeExact:
		if len(p.Slices) == 0 {
			// The empty pattern matches only the empty record: no slice to
			// index into, length_eq(0) is the whole answer.
			candidate, exact := e.idx.LengthEq(0)
			if exact {
				return candidate
			}
			return e.verify(candidate, p)
		}
		m, mExact := e.matchAt(p.Slices[0], 0)
		l, lExact := e.idx.LengthEq(len(p.Slices[0]))
		candidate := m.And(l)
		if mExact && lExact {
			return candidate
		}
		return e.verify(candidate, p)

	case planner.ShapePrefix:
		candidate, exact := e.matchAt(p.Slices[0], 0)
		if exact {
			return candidate
		}
		return e.verify(candidate, p)

	case planner.ShapeSuffix:
		candidate, exact := e.matchAtEnd(p.Slices[0], 1)
		if exact {
			return candidate
		}
		return e.verify(candidate, p)

	case planner.ShapeContainsOne:
		if p.ContainsByteFast {
			bm := e.idx.Anywhere(p.ContainsByte)
			if bm == nil {
				return bitmap.New()
			}
			// A single literal byte anywhere is already exact: no
			// verification pass needed.
			return bm.Clone()
		}
		candidate, _ := e.containsCandidates(p.Slices[0])
		return e.verify(candidate, p)

	case planner.ShapeMulti:
		return e.verify(e.multiCandidates(p), p)

	default:
		return e.verify(e.idx.AllIDs().Clone(), p)
	}
}

// matchAt ANDs together, for each atom of slice, the positional bitmap at
// offset+i: PosBitmap(byte, offset+i) for a literal atom, AnyByteAt(offset+i)
// for a wildcard. Offsets at or beyond the capped length cannot be checked
// by the index and are skipped, making the result a candidate superset
// (exact=false) rather than a final answer.
func (e *Executor) matchAt(slice planner.Slice, offset int) (*bitmap.Bitmap, bool) {
	cap := e.idx.CappedLength()
	result := e.idx.AllIDs().Clone()
	exact := true
	for i, atom := range slice {
		p := offset + i
		if p >= cap {
			exact = false
			continue
		}
		var bm *bitmap.Bitmap
		if atom.Wildcard {
			bm = e.idx.AnyByteAt(p)
		} else {
			bm = e.idx.PosBitmap(atom.Byte, p)
		}
		if bm == nil {
			return bitmap.New(), true
		}
		result.AndInPlace(bm)
	}
	return result, exact
}

// matchAtEnd is matchAt's mirror image, anchoring slice's last atom fromEnd
// bytes from the record's end (fromEnd=1 is the final byte) and walking
// backward through the slice.
func (e *Executor) matchAtEnd(slice planner.Slice, fromEnd int) (*bitmap.Bitmap, bool) {
	cap := e.idx.CappedLength()
	result := e.idx.AllIDs().Clone()
	exact := true
	n := len(slice)
	for i, atom := range slice {
		k := fromEnd + (n - 1 - i)
		if k > cap {
			exact = false
			continue
		}
		var bm *bitmap.Bitmap
		if atom.Wildcard {
			bm, _ = e.idx.LengthGe(k)
		} else {
			bm = e.idx.NegBitmap(atom.Byte, k)
		}
		if bm == nil {
			return bitmap.New(), true
		}
		result.AndInPlace(bm)
	}
	return result, exact
}

// containsCandidates narrows to records that could contain slice
// somewhere, without fixing a position: records with slice's every literal
// byte present anywhere, intersected, and (if slice has any wildcard-free
// length requirement) the length_ge bound for a pure-wildcard slice. This
// is always a superset, never exact — order and adjacency still need
// verification.
func (e *Executor) containsCandidates(slice planner.Slice) (*bitmap.Bitmap, bool) {
	hasLiteral := false
	for _, a := range slice {
		if !a.Wildcard {
			hasLiteral = true
			break
		}
	}
	if !hasLiteral {
		return e.idx.LengthGe(len(slice))
	}

	candidate := e.idx.AllIDs().Clone()
	for _, a := range slice {
		if a.Wildcard {
			continue
		}
		bm := e.idx.Anywhere(a.Byte)
		if bm == nil {
			return bitmap.New(), true
		}
		candidate.AndInPlace(bm)
	}
	return candidate, false
}

// multiCandidates narrows a MULTI-shape plan's candidate set: the first
// and last slices apply their anchored or unanchored filter, and every
// interior slice applies its anywhere-byte filter. The order constraint
// between slices is never captured by bitmap algebra, so the result always
// needs a verification pass.
func (e *Executor) multiCandidates(p *planner.Plan) *bitmap.Bitmap {
	n := len(p.Slices)
	candidate := e.idx.AllIDs().Clone()

	first := p.Slices[0]
	if !p.StartsWithPercent {
		bm, _ := e.matchAt(first, 0)
		candidate.AndInPlace(bm)
	} else {
		bm, _ := e.containsCandidates(first)
		candidate.AndInPlace(bm)
	}

	last := p.Slices[n-1]
	if !p.EndsWithPercent {
		bm, _ := e.matchAtEnd(last, 1)
		candidate.AndInPlace(bm)
	} else {
		bm, _ := e.containsCandidates(last)
		candidate.AndInPlace(bm)
	}

	for i := 1; i < n-1; i++ {
		bm, _ := e.containsCandidates(p.Slices[i])
		candidate.AndInPlace(bm)
	}

	return candidate
}

// verify runs the greedy backtracking matcher over every candidate id's
// actual bytes, the final arbiter whenever bitmap algebra alone cannot
// prove a match.
func (e *Executor) verify(candidate *bitmap.Bitmap, p *planner.Plan) *bitmap.Bitmap {
	toks := flatten(p)
	out := bitmap.New()
	for _, id := range candidate.EnumerateAscending() {
		if matchTokens(e.idx.RecordBytes(id), toks) {
			out.Add(id)
		}
	}
	return out
}

// token is one position of a pattern flattened back into its normalized
// form: a literal byte, a '_' wildcard, or a '%' run (star).
type token struct {
	star     bool
	wildcard bool
	b        byte
}

func flatten(p *planner.Plan) []token {
	var toks []token
	if p.StartsWithPercent {
		toks = append(toks, token{star: true})
	}
	for si, s := range p.Slices {
		if si > 0 {
			toks = append(toks, token{star: true})
		}
		for _, a := range s {
			toks = append(toks, token{wildcard: a.Wildcard, b: a.Byte})
		}
	}
	if p.EndsWithPercent {
		toks = append(toks, token{star: true})
	}
	return toks
}

// matchTokens is the classic two-pointer greedy-with-backtrack wildcard
// matcher: advance through text and toks in lockstep, and whenever a star
// is hit, remember the position to retry from if a later mismatch forces a
// backtrack.
func matchTokens(text []byte, toks []token) bool {
	i, j := 0, 0
	starIdx, match := -1, 0
	for i < len(text) {
		switch {
		case j < len(toks) && !toks[j].star && (toks[j].wildcard || toks[j].b == text[i]):
			i++
			j++
		case j < len(toks) && toks[j].star:
			starIdx = j
			match = i
			j++
		case starIdx != -1:
			j = starIdx + 1
			match++
			i = match
		default:
			return false
		}
	}
	for j < len(toks) && toks[j].star {
		j++
	}
	return j == len(toks)
}

// Package index builds and serves the positional-bitmap index described by
// the engine's data model: per-byte forward and backward positional
// bitmaps, a character-anywhere bitmap per byte, and a length bitmap per
// capped length, plus the verbatim corpus they are derived from.
//
// The index is built once by Build and is immutable afterward: every
// accessor returns a bitmap owned by the index. Callers that intend to
// mutate a returned bitmap (AndInPlace/OrInPlace) must Clone it first.
package index

import (
	"fmt"
	"sort"

	"likeindex/internal/bitmap"
	"likeindex/internal/encoding"
)

// DefaultCappedLength is the build-time positional cap L used when a host
// does not specify one.
const DefaultCappedLength = 256

// PreconditionError signals an internal invariant breach — a malformed
// offset reaching the positional index. It is never returned to a caller;
// it is recovered only by tests that deliberately probe the boundary.
type PreconditionError struct {
	Offset int
	Cap    int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("index: offset %d outside capped range [0,%d)", e.Offset, e.Cap)
}

// Source yields raw record payloads in assigned-id order. A null/absent
// column value decodes to an empty byte slice, the same as an explicit
// empty string — there is no separate "null" representation at this layer.
type Source interface {
	// Next returns the next record, or ok=false when exhausted. An error
	// aborts the build; the partial index is discarded.
	Next() (data []byte, ok bool, err error)
}

// SliceSource adapts an in-memory slice of records to Source.
type SliceSource struct {
	records [][]byte
	pos     int
}

// NewSliceSource wraps records for use as a build Source.
func NewSliceSource(records [][]byte) *SliceSource {
	return &SliceSource{records: records}
}

// Next implements Source.
func (s *SliceSource) Next() ([]byte, bool, error) {
	if s.pos >= len(s.records) {
		return nil, false, nil
	}
	data := s.records[s.pos]
	s.pos++
	return data, true, nil
}

// Index is the immutable, single-owner positional bitmap index.
type Index struct {
	cap      int
	records  [][]byte
	pos      [256]map[int]*bitmap.Bitmap
	neg      [256]map[int]*bitmap.Bitmap // keyed by k = 1..cap, the k-th byte from the end
	anywhere [256]*bitmap.Bitmap
	byLength []*bitmap.Bitmap // index 0..cap
	lengthGe []*bitmap.Bitmap // cumulative suffix-OR; lengthGe[n] = OR_{k>=n} byLength[k], for n in 0..cap
	all      *bitmap.Bitmap
}

// Stats summarizes index size for introspection (grounded on the original
// implementation's status endpoint and the teacher's Segment.PrintInfo).
type Stats struct {
	NumRecords            int
	CappedLength          int
	DistinctBytes         int
	ApproxPositionalBytes int
}

// CappedLength returns L, the build-time positional cap.
func (idx *Index) CappedLength() int { return idx.cap }

// NumRecords returns the number of ingested records.
func (idx *Index) NumRecords() int { return len(idx.records) }

// RecordBytes returns the verbatim payload for id. Panics if id is out of
// range — callers only ever hold ids drawn from the index's own bitmaps.
func (idx *Index) RecordBytes(id uint32) []byte {
	return idx.records[id]
}

// AllIDs returns the bitmap of every record id. Owned by the index; clone
// before mutating.
func (idx *Index) AllIDs() *bitmap.Bitmap { return idx.all }

// PosBitmap returns the forward positional bitmap for byte b at offset p,
// or nil if no record has b at p. Panics if p is outside [0, CappedLength).
func (idx *Index) PosBitmap(b byte, p int) *bitmap.Bitmap {
	if p < 0 || p >= idx.cap {
		panic(&PreconditionError{Offset: p, Cap: idx.cap})
	}
	return idx.pos[b][p]
}

// NegBitmap returns the backward positional bitmap for byte b, k bytes from
// the end (k=1 is the last byte), or nil if absent. Panics if k is outside
// [1, CappedLength].
func (idx *Index) NegBitmap(b byte, k int) *bitmap.Bitmap {
	if k < 1 || k > idx.cap {
		panic(&PreconditionError{Offset: -k, Cap: idx.cap})
	}
	return idx.neg[b][k]
}

// Anywhere returns the character-anywhere bitmap for b, or nil if b never
// occurs in the corpus.
func (idx *Index) Anywhere(b byte) *bitmap.Bitmap { return idx.anywhere[b] }

// AnyByteAt returns the set of ids having some byte at offset p. It is
// exactly length_ge(p+1): a record has a byte at offset p iff its length
// exceeds p. Valid only for p in [0, CappedLength); the executor never
// calls it otherwise.
func (idx *Index) AnyByteAt(p int) *bitmap.Bitmap {
	bm, _ := idx.LengthGe(p + 1)
	return bm
}

// LengthEq returns the ids of capped length exactly n, and whether the
// answer is exact. For n < CappedLength the bitmap is exact. For n at or
// beyond the cap it returns the ids capped at CappedLength (true length >=
// cap) as a non-exact candidate set; the caller must verify true length == n.
func (idx *Index) LengthEq(n int) (*bitmap.Bitmap, bool) {
	if n < 0 {
		return bitmap.New(), true
	}
	if n >= idx.cap {
		return idx.byLength[idx.cap], false
	}
	return idx.byLength[n], true
}

// LengthGe returns the ids of capped length >= n, and whether the answer is
// exact. Exact for n <= CappedLength; for n beyond the cap, returns the
// ids capped at CappedLength as a non-exact candidate set needing
// verification of true length >= n.
func (idx *Index) LengthGe(n int) (*bitmap.Bitmap, bool) {
	if n <= 0 {
		return idx.all, true
	}
	if n > idx.cap {
		return idx.byLength[idx.cap], false
	}
	return idx.lengthGe[n], true
}

// Stats reports index size and an estimate of positional-directory memory:
// the delta-varint encoded size of each byte's sorted offset list, computed
// without building the encoding (nothing is written to disk — persistence
// is out of scope).
func (idx *Index) Stats() Stats {
	s := Stats{NumRecords: len(idx.records), CappedLength: idx.cap}
	for b := 0; b < 256; b++ {
		offsets := idx.pos[b]
		if len(offsets) == 0 {
			continue
		}
		s.DistinctBytes++
		keys := make([]uint16, 0, len(offsets))
		for off := range offsets {
			keys = append(keys, uint16(off))
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		s.ApproxPositionalBytes += encoding.EncodedSize(keys)
	}
	return s
}

// Build performs a single-pass ingest of source, producing a fully
// populated immutable Index capped at cappedLength positions. Failure
// discards the partial index; the caller receives only the error.
func Build(source Source, cappedLength int) (*Index, error) {
	if cappedLength <= 0 {
		cappedLength = DefaultCappedLength
	}

	idx := &Index{cap: cappedLength}
	for b := 0; b < 256; b++ {
		idx.pos[b] = make(map[int]*bitmap.Bitmap)
		idx.neg[b] = make(map[int]*bitmap.Bitmap)
	}
	idx.byLength = make([]*bitmap.Bitmap, cappedLength+1)
	for i := range idx.byLength {
		idx.byLength[i] = bitmap.New()
	}
	idx.all = bitmap.New()

	var id uint32
	for {
		data, ok, err := source.Next()
		if err != nil {
			return nil, fmt.Errorf("index: ingest failed at record %d: %w", id, err)
		}
		if !ok {
			break
		}

		idx.records = append(idx.records, data)
		idx.all.Add(id)

		n := len(data)
		if n > cappedLength {
			n = cappedLength
		}
		for p := 0; p < n; p++ {
			fwd := data[p]
			if idx.pos[fwd][p] == nil {
				idx.pos[fwd][p] = bitmap.New()
			}
			idx.pos[fwd][p].Add(id)

			back := data[len(data)-1-p]
			k := p + 1
			if idx.neg[back][k] == nil {
				idx.neg[back][k] = bitmap.New()
			}
			idx.neg[back][k].Add(id)
		}
		idx.byLength[n].Add(id)

		// Bytes past the cap have no positional entry but still occur
		// somewhere in the record.
		for _, c := range data[n:] {
			if idx.anywhere[c] == nil {
				idx.anywhere[c] = bitmap.New()
			}
			idx.anywhere[c].Add(id)
		}

		id++
	}

	for b := 0; b < 256; b++ {
		if len(idx.pos[b]) == 0 {
			continue
		}
		union := idx.anywhere[b]
		if union == nil {
			union = bitmap.New()
		}
		for _, bm := range idx.pos[b] {
			union.OrInPlace(bm)
		}
		idx.anywhere[b] = union
	}

	idx.lengthGe = make([]*bitmap.Bitmap, cappedLength+1)
	running := bitmap.New()
	for n := cappedLength; n >= 0; n-- {
		running = running.Or(idx.byLength[n])
		idx.lengthGe[n] = running
	}

	return idx, nil
}

// Package planner parses a LIKE pattern into literal "slices" separated by
// runs of '%', and classifies the pattern into a closed shape set. The
// executor dispatches on Shape to pick a bitmap-algebra plan instead of
// falling back to a generic backtracking matcher for every query.
package planner

// Shape is the closed classification of a parsed pattern.
type Shape int

const (
	// ShapeAll matches every record: the pattern is one or more '%' and
	// nothing else.
	ShapeAll Shape = iota
	// ShapePureWildcards matches records of an exact length, with no byte
	// constraints: the pattern is one or more '_' and no '%'.
	ShapePureWildcards
	// ShapeExact requires the full record to equal the single slice
	// (modulo '_' wildcard bytes): no leading or trailing '%'.
	ShapeExact
	// ShapePrefix anchors the single slice at the start only.
	ShapePrefix
	// ShapeSuffix anchors the single slice at the end only.
	ShapeSuffix
	// ShapeContainsOne requires the single slice to occur anywhere,
	// unanchored on both ends.
	ShapeContainsOne
	// ShapeMulti has two or more slices separated by '%' runs, in order,
	// with anchoring determined independently by StartsWithPercent and
	// EndsWithPercent.
	ShapeMulti
)

func (s Shape) String() string {
	switch s {
	case ShapeAll:
		return "ALL"
	case ShapePureWildcards:
		return "PURE_WILDCARDS"
	case ShapeExact:
		return "EXACT"
	case ShapePrefix:
		return "PREFIX"
	case ShapeSuffix:
		return "SUFFIX"
	case ShapeContainsOne:
		return "CONTAINS_ONE"
	case ShapeMulti:
		return "MULTI"
	default:
		return "UNKNOWN"
	}
}

// Atom is one position within a slice: either a literal byte or a '_'
// wildcard that matches exactly one arbitrary byte.
type Atom struct {
	Wildcard bool
	Byte     byte
}

// Slice is a maximal run of the pattern between two '%' boundaries (or the
// pattern's own start/end), holding one atom per matched byte.
type Slice []Atom

// Plan is the parsed, classified form of a LIKE pattern.
type Plan struct {
	Shape             Shape
	Slices            []Slice
	StartsWithPercent bool
	EndsWithPercent   bool
	// MinLength is the minimum record length any match requires: the sum
	// of every slice's atom count.
	MinLength int
	// ContainsByteFast is true when Shape is ShapeContainsOne and the sole
	// slice is exactly one literal (non-wildcard) byte: anywhere[byte] is
	// already the exact answer, no verification pass is needed.
	ContainsByteFast bool
	ContainsByte     byte
}

// Parse splits pattern on '%' runs and classifies the result.
func Parse(pattern []byte) *Plan {
	startsWithPercent := len(pattern) > 0 && pattern[0] == '%'
	endsWithPercent := len(pattern) > 0 && pattern[len(pattern)-1] == '%'

	var slices []Slice
	var current Slice
	for _, c := range pattern {
		if c == '%' {
			if len(current) > 0 {
				slices = append(slices, current)
				current = nil
			}
			continue
		}
		if c == '_' {
			current = append(current, Atom{Wildcard: true})
		} else {
			current = append(current, Atom{Byte: c})
		}
	}
	if len(current) > 0 {
		slices = append(slices, current)
	}

	return classify(slices, startsWithPercent, endsWithPercent)
}

func classify(slices []Slice, startsWithPercent, endsWithPercent bool) *Plan {
	p := &Plan{
		Slices:            slices,
		StartsWithPercent: startsWithPercent,
		EndsWithPercent:   endsWithPercent,
	}
	for _, s := range slices {
		p.MinLength += len(s)
	}

	switch {
	case len(slices) == 0:
		if startsWithPercent || endsWithPercent {
			p.Shape = ShapeAll
		} else {
			p.Shape = ShapeExact
		}
	case len(slices) == 1 && !startsWithPercent && !endsWithPercent:
		if isPureWildcardSlice(slices[0]) {
			p.Shape = ShapePureWildcards
		} else {
			p.Shape = ShapeExact
		}
	case len(slices) == 1 && !startsWithPercent && endsWithPercent:
		p.Shape = ShapePrefix
	case len(slices) == 1 && startsWithPercent && !endsWithPercent:
		p.Shape = ShapeSuffix
	case len(slices) == 1 && startsWithPercent && endsWithPercent:
		p.Shape = ShapeContainsOne
		if len(slices[0]) == 1 && !slices[0][0].Wildcard {
			p.ContainsByteFast = true
			p.ContainsByte = slices[0][0].Byte
		}
	default:
		p.Shape = ShapeMulti
	}
	return p
}

func isPureWildcardSlice(s Slice) bool {
	for _, a := range s {
		if !a.Wildcard {
			return false
		}
	}
	return true
}

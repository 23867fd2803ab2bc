package builder

import (
	"fmt"
	"slices"
	"strconv"
)

// IDFn names a plain link from its zero-based index: the position in the
// document's link list for Build, the running link count for constructors.
// It must be pure. Negative indices are a programming error and panic.
type IDFn func(idx int) string

// LetterIDFn labels links the way linkage drawings do: 0→"A", 25→"Z",
// 26→"AA", 27→"AB".
func LetterIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("LetterIDFn: idx must be ≥ 0, got %d", idx))
	}
	var out []byte
	for i := idx; i >= 0; i = i/26 - 1 {
		out = append(out, byte('A'+i%26))
	}
	slices.Reverse(out)

	return string(out)
}

// KinematicIDFn numbers moving links from 2, link 1 being the frame:
// 0→"L2", 1→"L3". A four-bar reads crank L2, coupler L3, rocker L4.
func KinematicIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("KinematicIDFn: idx must be ≥ 0, got %d", idx))
	}

	return "L" + strconv.Itoa(idx+2)
}

// NumberedIDFn returns prefix followed by first+idx, e.g. "bar0", "bar1" for
// NumberedIDFn("bar", 0).
func NumberedIDFn(prefix string, first int) IDFn {
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("NumberedIDFn: idx must be ≥ 0, got %d", idx))
		}
		return prefix + strconv.Itoa(first+idx)
	}
}

// WithLetterIDs names unnamed links "A", "B", … "Z", "AA", ….
func WithLetterIDs() BuilderOption {
	return WithIDScheme(LetterIDFn)
}

// WithKinematicIDs names unnamed links "L2", "L3", ….
func WithKinematicIDs() BuilderOption {
	return WithIDScheme(KinematicIDFn)
}

// WithNumberedIDs names unnamed links prefix+first, prefix+(first+1), ….
// Panics on an empty prefix, which would yield bare numbers.
func WithNumberedIDs(prefix string, first int) BuilderOption {
	if prefix == "" {
		panic("builder: WithNumberedIDs with empty prefix")
	}

	return WithIDScheme(NumberedIDFn(prefix, first))
}

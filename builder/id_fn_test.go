package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linkage/builder"
)

// unnamedLinks returns a document with n links, all unnamed except those in
// named (index → name).
func unnamedLinks(n int, named map[int]string) builder.Document {
	doc := builder.Document{Links: make([]builder.LinkDoc, n)}
	for i := range doc.Links {
		doc.Links[i] = builder.LinkDoc{Name: named[i], Origin: builder.Vec{float64(i), 0}}
	}

	return doc
}

// linkNames lists the plain link names of a built document, anchor excluded.
func linkNames(t *testing.T, doc builder.Document, opts ...builder.BuilderOption) []string {
	t.Helper()
	a, err := builder.Build(doc, opts...)
	require.NoError(t, err)

	var out []string
	for _, l := range a.Links()[1:] {
		out = append(out, l.Name())
	}

	return out
}

// TestLinkIDSchemes checks each scheme names unnamed links by their position
// in the document, leaving explicit names alone.
func TestLinkIDSchemes(t *testing.T) {
	t.Parallel()

	doc := unnamedLinks(4, map[int]string{1: "crank"})
	cases := []struct {
		name string
		opt  builder.BuilderOption
		want []string
	}{
		{"Letters", builder.WithLetterIDs(), []string{"A", "crank", "C", "D"}},
		{"Kinematic", builder.WithKinematicIDs(), []string{"L2", "crank", "L4", "L5"}},
		{"Numbered", builder.WithNumberedIDs("bar", 1), []string{"bar1", "crank", "bar3", "bar4"}},
		{"Custom", builder.WithIDScheme(func(i int) string { return string(rune('p' + i)) }), []string{"p", "crank", "r", "s"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, linkNames(t, doc, tc.opt))
		})
	}

	// Without a scheme the assembly policy numbers links as they are added.
	require.Equal(t, []string{"Link1", "crank", "Link2", "Link3"}, linkNames(t, doc))
}

// TestLetterIDsPastZ continues with two-letter labels after "Z".
func TestLetterIDsPastZ(t *testing.T) {
	t.Parallel()

	got := linkNames(t, unnamedLinks(28, nil), builder.WithLetterIDs())
	require.Equal(t, "Z", got[25])
	require.Equal(t, "AA", got[26])
	require.Equal(t, "AB", got[27])
	require.Equal(t, "ZZ", builder.LetterIDFn(701))
	require.Equal(t, "AAA", builder.LetterIDFn(702))
}

// TestGeneratedNamesAreReferences lets joints refer to generated names and
// rejects a generated name that collides with an explicit one.
func TestGeneratedNamesAreReferences(t *testing.T) {
	t.Parallel()

	doc := unnamedLinks(2, nil)
	doc.Anchor.Markers = []builder.Vec{{0, 0}}
	doc.Joints = []builder.JointDoc{{Ends: []builder.EndDoc{{Link: "Anchor"}, {Link: "L2"}}}}
	a, err := builder.Build(doc, builder.WithKinematicIDs())
	require.NoError(t, err)
	require.Same(t, a.Link("L2"), a.Coaxials()[0].Link(1))

	_, err = builder.Build(unnamedLinks(2, map[int]string{0: "B"}), builder.WithLetterIDs())
	require.ErrorIs(t, err, builder.ErrDuplicateName)
}

// TestIDSchemePanics checks negative indices and meaningless options panic.
func TestIDSchemePanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { builder.LetterIDFn(-1) })
	require.Panics(t, func() { builder.KinematicIDFn(-1) })
	require.Panics(t, func() { builder.NumberedIDFn("bar", 0)(-1) })
	require.Panics(t, func() { builder.WithNumberedIDs("", 0) })
}

package datamodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTree_TopicNameRoundtrip(t *testing.T) {
	tree := NewTree(8)
	leaf := NewUint16Leaf(tree, "depth/belowKeel/raw")
	require.Equal(t, "depth/belowKeel/raw", leaf.FullTopic())
}

func TestTree_PlusWildcardMatchesOneLevel(t *testing.T) {
	tree := NewTree(8)
	NewUint16Leaf(tree, "wind/speed")
	NewUint16Leaf(tree, "wind/angle")
	NewUint16Leaf(tree, "wind/gust/peak")

	sub := &recordingSubscriber{}
	count, err := tree.Subscribe("wind/+", sub, 1)
	require.NoError(t, err)
	require.Equal(t, 2, count) // speed, angle — not gust/peak, two levels down
}

func TestTree_HashWildcardMatchesEverythingUnderRoot(t *testing.T) {
	tree := NewTree(8)
	NewUint16Leaf(tree, "gps/time")
	NewUint16Leaf(tree, "depth/belowKeel/meters")
	NewBoolLeaf(tree, "gps/fix")

	sub := &recordingSubscriber{}
	count, err := tree.Subscribe("#", sub, 1)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestTree_HashWildcardScopedToInterior(t *testing.T) {
	tree := NewTree(8)
	NewUint16Leaf(tree, "depth/belowKeel/meters")
	NewUint16Leaf(tree, "depth/belowKeel/feet")
	NewUint16Leaf(tree, "gps/time")

	sub := &recordingSubscriber{}
	count, err := tree.Subscribe("depth/#", sub, 1)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestTree_UnsubscribeAllDetachesFromEveryLeaf(t *testing.T) {
	tree := NewTree(8)
	gpsFix := NewBoolLeaf(tree, "gps/fix")
	gpsFix.Set(true)
	depth := NewUint16Leaf(tree, "depth/belowKeel/meters")
	depth.Set(10)

	sub := &recordingSubscriber{}
	_, err := tree.Subscribe("#", sub, 1)
	require.NoError(t, err)

	tree.UnsubscribeAll(sub)

	sub.published = nil
	gpsFix.Set(false)
	depth.Set(11)
	require.Empty(t, sub.published)
}

func TestTree_MalformedFilterRejected(t *testing.T) {
	tree := NewTree(8)
	sub := &recordingSubscriber{}

	_, err := tree.Subscribe("gps/#/time", sub, 1)
	require.ErrorIs(t, err, ErrMalformedFilter)

	_, err = tree.Subscribe("", sub, 1)
	require.ErrorIs(t, err, ErrEmptyFilter)
}

func TestTree_SameNameUnderDifferentParentsDoesNotCollide(t *testing.T) {
	tree := NewTree(8)
	require.NotPanics(t, func() {
		NewUint16Leaf(tree, "gps/time")
		NewUint16Leaf(tree, "depth/time")
	})
}

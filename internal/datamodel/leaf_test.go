package datamodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingSubscriber struct {
	id        string
	published []publishedMessage
}

type publishedMessage struct {
	topic   string
	payload string
	retain  bool
}

func (s *recordingSubscriber) Publish(topic, payload string, retain bool) {
	s.published = append(s.published, publishedMessage{topic, payload, retain})
}

func TestLeaf_SetIsIdempotent(t *testing.T) {
	tree := NewTree(8)
	leaf := NewUint16Leaf(tree, "depth/belowKeel")
	sub := &recordingSubscriber{id: "s1"}

	_, err := tree.Subscribe("depth/belowKeel", sub, 1)
	require.NoError(t, err)

	leaf.Set(42)
	leaf.Set(42)
	leaf.Set(42)

	require.Len(t, sub.published, 1)
	require.Equal(t, "42", sub.published[0].payload)
	require.False(t, sub.published[0].retain)
}

func TestLeaf_RemovePublishesRetainedEmptyString(t *testing.T) {
	tree := NewTree(8)
	leaf := NewBoolLeaf(tree, "gps/fix")
	sub := &recordingSubscriber{}
	_, err := tree.Subscribe("gps/fix", sub, 1)
	require.NoError(t, err)

	leaf.Set(true)
	leaf.Remove()

	require.Len(t, sub.published, 2)
	require.Equal(t, "", sub.published[1].payload)
	require.True(t, sub.published[1].retain)
	require.False(t, leaf.HasValue())
}

func TestLeaf_RetainedDeliveryOnSubscribe(t *testing.T) {
	tree := NewTree(8)
	leaf := NewHundredthsUint16Leaf(tree, "depth/belowKeel/meters")
	leaf.Set(Hundredths[uint16](1230))

	sub := &recordingSubscriber{}
	count, err := tree.Subscribe("depth/belowKeel/meters", sub, 1)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.Len(t, sub.published, 1)
	require.Equal(t, "12.30", sub.published[0].payload)
	require.True(t, sub.published[0].retain)
}

func TestLeaf_ResubscribeDoesNotResendRetained(t *testing.T) {
	tree := NewTree(8)
	leaf := NewUint8Leaf(tree, "gps/numberSatellites")
	leaf.Set(8)

	sub := &recordingSubscriber{}
	_, err := tree.Subscribe("gps/numberSatellites", sub, 1)
	require.NoError(t, err)
	_, err = tree.Subscribe("gps/numberSatellites", sub, 2)
	require.NoError(t, err)

	require.Len(t, sub.published, 1)
}

func TestLeaf_UnsubscribeFromUnknownFilterIsSilent(t *testing.T) {
	tree := NewTree(8)
	NewUint8Leaf(tree, "gps/numberSatellites")
	sub := &recordingSubscriber{}

	err := tree.Unsubscribe("gps/numberSatellites", sub)
	require.NoError(t, err)
}

func TestLeaf_NoSelfSubscribeDuplication(t *testing.T) {
	tree := NewTree(8)
	leaf := NewUint8Leaf(tree, "gps/numberSatellites")
	sub := &recordingSubscriber{}

	_, err := tree.Subscribe("gps/numberSatellites", sub, 1)
	require.NoError(t, err)
	_, err = tree.Subscribe("gps/numberSatellites", sub, 2)
	require.NoError(t, err)

	require.Len(t, leaf.subscribers, 1)
}

func TestLeaf_SubscriberTableFull(t *testing.T) {
	tree := NewTree(1)
	leaf := NewUint8Leaf(tree, "gps/numberSatellites")

	_, err := tree.Subscribe("gps/numberSatellites", &recordingSubscriber{id: "a"}, 1)
	require.NoError(t, err)

	count, err := tree.Subscribe("gps/numberSatellites", &recordingSubscriber{id: "b"}, 1)
	require.Error(t, err)
	require.Equal(t, 0, count)
	require.Len(t, leaf.subscribers, 1)
}

// blockingSubscriber's Publish blocks until released, standing in for a
// slow session socket write.
type blockingSubscriber struct {
	release   chan struct{}
	published chan publishedMessage
}

func (s *blockingSubscriber) Publish(topic, payload string, retain bool) {
	<-s.release
	s.published <- publishedMessage{topic, payload, retain}
}

func TestLeaf_SetDoesNotHoldTreeLockDuringPublish(t *testing.T) {
	tree := NewTree(8)
	slow := NewUint8Leaf(tree, "gps/numberSatellites")
	other := NewUint8Leaf(tree, "gps/hdop")

	blocker := &blockingSubscriber{release: make(chan struct{}), published: make(chan publishedMessage, 1)}
	_, err := tree.Subscribe("gps/numberSatellites", blocker, 1)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		slow.Set(8)
		close(done)
	}()

	// Give Set a moment to reach the blocked Publish call, then confirm an
	// unrelated leaf can still be written while that publish is in flight.
	time.Sleep(10 * time.Millisecond)
	unblocked := make(chan struct{})
	go func() {
		other.Set(1)
		close(unblocked)
	}()

	select {
	case <-unblocked:
	case <-done:
		t.Fatal("slow subscriber's Set returned before its Publish was unblocked")
	}

	close(blocker.release)
	<-done
	require.Equal(t, publishedMessage{"gps/numberSatellites", "8", false}, <-blocker.published)
}

func TestFormatTenthsInt16(t *testing.T) {
	cases := []struct {
		value Tenths[int16]
		want  string
	}{
		{0, "0.0"},
		{5, "0.5"},
		{-5, "-0.5"},
		{15, "1.5"},
		{-15, "-1.5"},
	}

	for _, c := range cases {
		require.Equal(t, c.want, FormatTenthsInt16(c.value))
	}
}

func TestFormatHundredths(t *testing.T) {
	require.Equal(t, "12.30", FormatHundredthsUint16(1230))
	require.Equal(t, "0.05", FormatHundredthsUint16(5))
}

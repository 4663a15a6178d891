package sources

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/bridges"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingSubscriber struct {
	mu        chan struct{}
	published []string
}

func newRecordingSubscriber() *recordingSubscriber {
	return &recordingSubscriber{mu: make(chan struct{}, 64)}
}

func (s *recordingSubscriber) Publish(topic, payload string, retain bool) {
	s.published = append(s.published, payload)
	s.mu <- struct{}{}
}

func TestTCPSource_DispatchesParsedSentence(t *testing.T) {
	tree := datamodel.NewTree(4)
	set := bridges.NewSet(tree, 2, discardLogger())

	sub := newRecordingSubscriber()
	_, err := tree.Subscribe("gps/numberSatellites", sub, 1)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	connected := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			connected <- conn
		}
	}()

	source := NewTCPSource(ln.Addr().String(), set, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go source.Run(ctx)

	serverConn := <-connected
	defer serverConn.Close()

	_, err = serverConn.Write([]byte("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\r\n"))
	require.NoError(t, err)

	select {
	case <-sub.mu:
	case <-time.After(time.Second):
		t.Fatal("did not observe a publish to gps/numberSatellites")
	}
	require.Equal(t, []string{"8"}, sub.published)
}

func TestTCPSource_RunReturnsOnContextCancel(t *testing.T) {
	tree := datamodel.NewTree(4)
	set := bridges.NewSet(tree, 2, discardLogger())

	source := NewTCPSource("127.0.0.1:1", set, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- source.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

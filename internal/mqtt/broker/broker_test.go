package broker

import (
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// The helpers below hand-encode/decode raw MQTT bytes the way a real client
// library would. internal/mqtt/packets deliberately only implements
// ReadFrom for packets the broker receives and WriteTo for packets it
// emits, so a test acting as the client can't reuse it for either side.

func encodeString(s string) []byte {
	b := make([]byte, 2+len(s))
	binary.BigEndian.PutUint16(b, uint16(len(s)))
	copy(b[2:], s)
	return b
}

func encodeRemainingLength(n int) []byte {
	var out []byte
	for {
		b := byte(n % 128)
		n /= 128
		if n > 0 {
			b |= 0x80
		}
		out = append(out, b)
		if n == 0 {
			break
		}
	}
	return out
}

func buildConnect(clientID string, cleanSession bool) []byte {
	var body []byte
	body = append(body, encodeString("MQTT")...)
	body = append(body, 4) // protocol level 3.1.1
	var flags byte
	if cleanSession {
		flags |= 0x02
	}
	body = append(body, flags)
	body = append(body, 0, 60) // keep-alive, unused by the broker
	body = append(body, encodeString(clientID)...)

	header := append([]byte{0x10}, encodeRemainingLength(len(body))...)
	return append(header, body...)
}

func buildSubscribe(packetID uint16, filter string) []byte {
	var body []byte
	body = append(body, byte(packetID>>8), byte(packetID))
	body = append(body, encodeString(filter)...)
	body = append(body, 0) // requested QoS 0

	header := append([]byte{0x82}, encodeRemainingLength(len(body))...)
	return append(header, body...)
}

func readFixedHeader(r io.Reader) (packetType byte, flags byte, payload []byte, err error) {
	first := make([]byte, 1)
	if _, err = io.ReadFull(r, first); err != nil {
		return
	}
	packetType = first[0] >> 4
	flags = first[0] & 0x0F

	multiplier := 1
	remaining := 0
	for {
		b := make([]byte, 1)
		if _, err = io.ReadFull(r, b); err != nil {
			return
		}
		remaining += int(b[0]&0x7F) * multiplier
		if b[0]&0x80 == 0 {
			break
		}
		multiplier *= 128
	}

	payload = make([]byte, remaining)
	_, err = io.ReadFull(r, payload)
	return
}

const (
	typeCONNACK = 2
	typeSUBACK  = 9
	typePUBLISH = 3
)

// buildConnectRaw assembles a CONNECT with the wire-level flags and fields
// buildConnect doesn't expose, for exercising the refusal paths.
func buildConnectRaw(clientID string, flags byte, willTopic, willMessage, username, password string) []byte {
	var body []byte
	body = append(body, encodeString("MQTT")...)
	body = append(body, 4) // protocol level 3.1.1
	body = append(body, flags)
	body = append(body, 0, 60) // keep-alive, unused by the broker
	body = append(body, encodeString(clientID)...)

	if flags&0x04 != 0 { // will flag
		body = append(body, encodeString(willTopic)...)
		body = append(body, encodeString(willMessage)...)
	}
	if flags&0x80 != 0 { // username flag
		body = append(body, encodeString(username)...)
	}
	if flags&0x40 != 0 { // password flag
		body = append(body, encodeString(password)...)
	}

	header := append([]byte{0x10}, encodeRemainingLength(len(body))...)
	return append(header, body...)
}

func buildConnectUnsupportedProtocol() []byte {
	var body []byte
	body = append(body, encodeString("MQXX")...)
	body = append(body, 4)
	body = append(body, byte(0x02))
	body = append(body, 0, 60)
	body = append(body, encodeString("c")...)

	header := append([]byte{0x10}, encodeRemainingLength(len(body))...)
	return append(header, body...)
}

func dialAndReadConnack(t *testing.T, addr string, payload []byte) byte {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write(payload)
	require.NoError(t, err)

	packetType, _, ackPayload, err := readFixedHeader(conn)
	require.NoError(t, err)
	require.EqualValues(t, typeCONNACK, packetType)
	return ackPayload[1]
}

func TestBroker_RejectsUnsupportedProtocol(t *testing.T) {
	tree := datamodel.NewTree(5)
	b := NewBroker("", 5, tree, discardLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Serve(ctx, ln)

	code := dialAndReadConnack(t, ln.Addr().String(), buildConnectUnsupportedProtocol())
	require.Equal(t, byte(0x01), code)
}

func TestBroker_RejectsWillFlag(t *testing.T) {
	tree := datamodel.NewTree(5)
	b := NewBroker("", 5, tree, discardLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Serve(ctx, ln)

	payload := buildConnectRaw("c1", 0x06, "will/topic", "gone", "", "")
	code := dialAndReadConnack(t, ln.Addr().String(), payload)
	require.Equal(t, byte(0x03), code)
}

func TestBroker_RejectsCredentials(t *testing.T) {
	tree := datamodel.NewTree(5)
	b := NewBroker("", 5, tree, discardLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Serve(ctx, ln)

	payload := buildConnectRaw("c1", 0xC2, "", "", "bob", "secret")
	code := dialAndReadConnack(t, ln.Addr().String(), payload)
	require.Equal(t, byte(0x04), code)
}

func TestBroker_RejectsEmptyClientIDWithoutCleanSession(t *testing.T) {
	tree := datamodel.NewTree(5)
	b := NewBroker("", 5, tree, discardLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Serve(ctx, ln)

	code := dialAndReadConnack(t, ln.Addr().String(), buildConnect("", false))
	require.Equal(t, byte(0x02), code)
}

func TestBroker_SynthesizesClientIDForEmptyIDWithCleanSession(t *testing.T) {
	tree := datamodel.NewTree(5)
	b := NewBroker("", 5, tree, discardLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Serve(ctx, ln)

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write(buildConnect("", true))
	require.NoError(t, err)

	packetType, _, payload, err := readFixedHeader(conn)
	require.NoError(t, err)
	require.EqualValues(t, typeCONNACK, packetType)
	require.Equal(t, byte(0x00), payload[1]) // accepted, not IdentifierRejected
}

func TestBroker_ConnectSubscribeRetained(t *testing.T) {
	tree := datamodel.NewTree(5)
	depth := datamodel.NewTenthsUint16Leaf(tree, "depth/belowKeel/meters")
	depth.Set(123) // "12.3"

	b := NewBroker("", 5, tree, discardLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Serve(ctx, ln)

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write(buildConnect("c1", true))
	require.NoError(t, err)

	packetType, _, payload, err := readFixedHeader(conn)
	require.NoError(t, err)
	require.EqualValues(t, typeCONNACK, packetType)
	require.Equal(t, byte(0x00), payload[0]) // sessionPresent = 0
	require.Equal(t, byte(0x00), payload[1]) // accepted

	_, err = conn.Write(buildSubscribe(1, "depth/#"))
	require.NoError(t, err)

	packetType, _, payload, err = readFixedHeader(conn)
	require.NoError(t, err)
	require.EqualValues(t, typeSUBACK, packetType)
	require.Equal(t, []byte{0x00, 0x01, 0x00}, payload)

	packetType, flags, payload, err := readFixedHeader(conn)
	require.NoError(t, err)
	require.EqualValues(t, typePUBLISH, packetType)
	require.Equal(t, byte(0x01), flags&0x01) // retain set

	topicLen := binary.BigEndian.Uint16(payload[:2])
	topic := string(payload[2 : 2+topicLen])
	message := string(payload[2+topicLen:])
	require.Equal(t, "depth/belowKeel/meters", topic)
	require.Equal(t, "12.3", message)
}

func TestBroker_ReconnectWithNonCleanSessionKeepsSubscriptions(t *testing.T) {
	tree := datamodel.NewTree(5)
	wind := datamodel.NewTenthsUint16Leaf(tree, "wind/speed")

	b := NewBroker("", 5, tree, discardLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Serve(ctx, ln)

	conn1, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)

	_, err = conn1.Write(buildConnect("c2", false))
	require.NoError(t, err)
	_, _, payload, err := readFixedHeader(conn1)
	require.NoError(t, err)
	require.Equal(t, byte(0x00), payload[0]) // first connect, no prior session

	_, err = conn1.Write(buildSubscribe(1, "wind/+"))
	require.NoError(t, err)
	_, _, _, err = readFixedHeader(conn1)
	require.NoError(t, err)

	conn1.Close()
	time.Sleep(50 * time.Millisecond) // let the broker notice the dropped read

	conn2, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn2.Close()

	_, err = conn2.Write(buildConnect("c2", false))
	require.NoError(t, err)
	_, _, payload, err = readFixedHeader(conn2)
	require.NoError(t, err)
	require.Equal(t, byte(0x01), payload[0]) // sessionPresent = 1, resumed

	wind.Set(42) // "4.2", no re-subscribe needed

	packetType, _, payload, err := readFixedHeader(conn2)
	require.NoError(t, err)
	require.EqualValues(t, typePUBLISH, packetType)
	topicLen := binary.BigEndian.Uint16(payload[:2])
	require.Equal(t, "wind/speed", string(payload[2:2+topicLen]))
	require.Equal(t, "4.2", string(payload[2+topicLen:]))
}

func TestBroker_PoolExhaustion(t *testing.T) {
	tree := datamodel.NewTree(5)
	b := NewBroker("", 5, tree, discardLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Serve(ctx, ln)

	var conns []net.Conn
	for i := 0; i < 5; i++ {
		conn, err := net.Dial("tcp", ln.Addr().String())
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Write(buildConnect(string(rune('a'+i)), true))
		require.NoError(t, err)
		_, _, _, err = readFixedHeader(conn)
		require.NoError(t, err)
		conns = append(conns, conn)
	}

	sixth, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer sixth.Close()

	_, err = sixth.Write(buildConnect("overflow", true))
	require.NoError(t, err)

	buf := make([]byte, 1)
	sixth.SetReadDeadline(time.Now().Add(time.Second))
	_, err = sixth.Read(buf)
	require.Error(t, err) // closed without a CONNACK

	time.Sleep(50 * time.Millisecond)
	b.exportStats()

	snapshot := b.Stats()
	require.EqualValues(t, 5, snapshot.MaximumClients)
	require.EqualValues(t, 5, snapshot.ConnectedClients)
}

package broker

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/mqtt/packets"
)

type signalKind int

const (
	sigNewConnection signalKind = iota
	sigShutdown
)

// signal is the session's mailbox message. Grounded on MQTTSession.h's
// notification bitmask (newConnectionId/shutdown/messageReady/
// connectionLost), collapsed to two kinds: messageReady is implicit in a
// blocking net.Conn.Read, and connectionLost surfaces as that same read's
// error rather than a separate notification.
type signal struct {
	kind           signalKind
	connID         uint8
	sessionPresent bool
	cleanSession   bool
}

// Session is a paired client identity: subscriptions, clean/non-clean
// semantics, and the counters MQTTSession tracked, reattached across
// reconnects of a non-clean client. It implements datamodel.Subscriber so
// leaves can publish straight to it.
type Session struct {
	id     uint8
	broker *Broker
	tree   *datamodel.Tree
	log    *slog.Logger

	mailbox chan signal

	mu           sync.Mutex
	conn         *Connection
	clientID     string
	cleanSession bool
	shuttingDown bool

	messagesReceived        atomic.Uint32
	messagesSent            atomic.Uint32
	publishMessagesSent     atomic.Uint32
	publishMessagesDropped  atomic.Uint32
	publishMessagesReceived atomic.Uint32
}

func newSession(id uint8, broker *Broker, tree *datamodel.Tree, log *slog.Logger) *Session {
	s := &Session{
		id:      id,
		broker:  broker,
		tree:    tree,
		log:     log.With("session", id),
		mailbox: make(chan signal, 2),
	}
	go s.serve()
	return s
}

func (s *Session) ID() uint8 { return s.id }

// isForClient reports whether this session already belongs to clientID,
// used by the pairing pool to find a session to resume or displace.
func (s *Session) isForClient(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientID != "" && s.clientID == clientID
}

// assignConnection hands a freshly paired connection to the session. Called
// by the pool under the broker's session lock; the channel send establishes
// happens-before with serve()'s read, so cleanSession and the rest of the
// signal need no further synchronization.
func (s *Session) assignConnection(connID uint8, sessionPresent, cleanSession bool) {
	s.mailbox <- signal{kind: sigNewConnection, connID: connID, sessionPresent: sessionPresent, cleanSession: cleanSession}
}

// initiateShutdown forces this session to give up its current connection. A
// session parked in readLoop blocked on a live socket Read can't service
// its own mailbox, so shutdown instead closes the socket out from under it:
// the blocked Read returns an error, the read loop notices shuttingDown and
// tears down onto the free list instead of the disconnected list. A session
// with no live connection (already disconnected, or momentarily idle) is
// signaled through the mailbox instead.
func (s *Session) initiateShutdown() {
	s.mu.Lock()
	s.shuttingDown = true
	conn := s.conn
	s.mu.Unlock()

	if conn != nil {
		conn.close()
		return
	}

	select {
	case s.mailbox <- signal{kind: sigShutdown}:
	default:
	}
}

func (s *Session) serve() {
	for sig := range s.mailbox {
		switch sig.kind {
		case sigNewConnection:
			s.handleConnection(sig.connID, sig.sessionPresent, sig.cleanSession)
		case sigShutdown:
			s.finishShutdown()
		}
	}
}

func (s *Session) handleConnection(connID uint8, sessionPresent, cleanSession bool) {
	conn := s.broker.connectionForID(connID)

	s.mu.Lock()
	s.conn = conn
	s.clientID = conn.clientID
	s.cleanSession = cleanSession
	s.shuttingDown = false
	s.mu.Unlock()

	ack := packets.Connack{SessionPresent: sessionPresent, ReturnCode: packets.ConnectionAccepted}
	buf := new(bytes.Buffer)
	ack.WriteTo(buf)
	if err := conn.write(buf.Bytes()); err != nil {
		s.log.Warn("failed writing CONNACK", "error", err)
		s.teardown(conn)
		return
	}
	s.messagesSent.Add(1)

	s.log.Info("client connected", "clientID", s.clientID, "cleanSession", cleanSession, "sessionPresent", sessionPresent, "conn_id", conn.correlation)
	s.readLoop(conn)
	s.teardown(conn)
}

// readLoop runs until the connection errors, the client sends DISCONNECT,
// or the socket is force-closed by initiateShutdown.
func (s *Session) readLoop(conn *Connection) {
	for {
		var fh packets.FixedHeader
		if _, err := fh.ReadFrom(conn.reader); err != nil {
			if err != io.EOF {
				s.log.Debug("connection read error", "error", err)
			}
			return
		}
		s.messagesReceived.Add(1)

		switch fh.GetType() {
		case packets.SUBSCRIBE:
			if err := s.handleSubscribe(conn, fh); err != nil {
				s.log.Warn("malformed SUBSCRIBE", "error", err)
				return
			}
		case packets.UNSUBSCRIBE:
			if err := s.handleUnsubscribe(conn, fh); err != nil {
				s.log.Warn("malformed UNSUBSCRIBE", "error", err)
				return
			}
		case packets.PINGREQ:
			var ping packets.PingReq
			if _, err := ping.ReadFrom(conn.reader); err != nil {
				return
			}
			var pong packets.PingResp
			buf := new(bytes.Buffer)
			pong.WriteTo(buf)
			if err := conn.write(buf.Bytes()); err != nil {
				return
			}
			s.messagesSent.Add(1)
		case packets.DISCONNECT:
			var d packets.Disconnect
			d.ReadFrom(conn.reader)
			s.log.Info("client disconnected", "clientID", s.clientID)
			return
		case packets.PUBLISH:
			s.publishMessagesReceived.Add(1)
			s.log.Warn("client PUBLISH is not supported, disconnecting", "clientID", s.clientID)
			return
		default:
			s.log.Warn("unexpected packet type from client", "type", fh.GetType())
			return
		}
	}
}

func (s *Session) handleSubscribe(conn *Connection, fh packets.FixedHeader) error {
	sub := packets.Subscribe{Header: fh}
	if _, err := sub.ReadFrom(conn.reader); err != nil {
		return err
	}

	codes := make([]packets.SubscribeReturnCode, len(sub.Topics))
	for i, topic := range sub.Topics {
		if _, err := s.tree.Subscribe(topic.Filter, s, uint32(sub.PacketIdentifier)); err != nil {
			s.log.Warn("subscribe failed", "filter", topic.Filter, "error", err)
			codes[i] = packets.SubscribeFailure
			continue
		}
		codes[i] = packets.SubscribeSuccessQoS0
	}

	ack := packets.Suback{PacketIdentifier: sub.PacketIdentifier, ReturnCodes: codes}
	buf := new(bytes.Buffer)
	ack.WriteTo(buf)
	if err := conn.write(buf.Bytes()); err != nil {
		return err
	}
	s.messagesSent.Add(1)
	return nil
}

func (s *Session) handleUnsubscribe(conn *Connection, fh packets.FixedHeader) error {
	unsub := packets.Unsubscribe{Header: fh}
	if _, err := unsub.ReadFrom(conn.reader); err != nil {
		return err
	}

	for _, filter := range unsub.Filters {
		if err := s.tree.Unsubscribe(filter, s); err != nil {
			s.log.Warn("unsubscribe failed", "filter", filter, "error", err)
		}
	}

	ack := packets.Unsuback{PacketIdentifier: unsub.PacketIdentifier}
	buf := new(bytes.Buffer)
	ack.WriteTo(buf)
	if err := conn.write(buf.Bytes()); err != nil {
		return err
	}
	s.messagesSent.Add(1)
	return nil
}

// teardown runs once the read loop returns, deciding whether this session's
// subscriptions survive (a dropped non-clean session waiting for reconnect)
// or are torn down (clean session, or a shutdown forced by a reconnecting
// duplicate client id).
func (s *Session) teardown(conn *Connection) {
	s.mu.Lock()
	cleanSession := s.cleanSession
	shuttingDown := s.shuttingDown
	s.conn = nil
	s.mu.Unlock()

	s.broker.connectionGoingIdle(conn)

	if cleanSession || shuttingDown {
		s.tree.UnsubscribeAll(s)
		s.mu.Lock()
		s.clientID = ""
		s.mu.Unlock()
		s.broker.sessionGoingIdle(s)
		return
	}

	s.broker.sessionLostConnection(s)
}

// finishShutdown handles the rarer case of initiateShutdown firing while
// this session has no live connection to force-close.
func (s *Session) finishShutdown() {
	s.tree.UnsubscribeAll(s)
	s.mu.Lock()
	s.clientID = ""
	s.shuttingDown = false
	s.mu.Unlock()
	s.broker.sessionGoingIdle(s)
}

// Publish implements datamodel.Subscriber. Leaf writes call this after
// releasing the tree's subscription lock, but the retained delivery on
// subscribe calls it with that lock held, so it must never block on
// anything but the connection's own write mutex.
func (s *Session) Publish(topic, payload string, retain bool) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		s.publishMessagesDropped.Add(1)
		return
	}

	pub := packets.Publish{Retain: retain, Topic: topic, Payload: []byte(payload)}
	buf := new(bytes.Buffer)
	if _, err := pub.WriteTo(buf); err != nil {
		s.publishMessagesDropped.Add(1)
		return
	}

	if err := conn.write(buf.Bytes()); err != nil {
		s.publishMessagesDropped.Add(1)
		return
	}
	s.messagesSent.Add(1)
	s.publishMessagesSent.Add(1)
}

func (s *Session) MessagesReceived() uint32        { return s.messagesReceived.Load() }
func (s *Session) MessagesSent() uint32            { return s.messagesSent.Load() }
func (s *Session) PublishMessagesSent() uint32     { return s.publishMessagesSent.Load() }
func (s *Session) PublishMessagesDropped() uint32  { return s.publishMessagesDropped.Load() }
func (s *Session) PublishMessagesReceived() uint32 { return s.publishMessagesReceived.Load() }

// ClientID returns the client id this session currently (or most recently)
// belonged to, for the per-session diagnostic leaf.
func (s *Session) ClientID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientID
}

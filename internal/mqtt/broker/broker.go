package broker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/mqtt/packets"
)

// Broker is a QoS-0-only MQTT 3.1.1 server over a fixed-size connection and
// session pool, grounded on MQTTBroker.{h,cpp}. It never allocates a
// Connection or Session past startup; a client arriving once the pool is
// full gets CONNACK(ServerUnavailable) or a closed socket, never a dynamic
// allocation.
type Broker struct {
	listenAddr string
	maxClients int
	tree       *datamodel.Tree
	log        *slog.Logger

	connections []*Connection

	connMu            sync.Mutex
	idleConnections   []*Connection
	activeConnections []*Connection

	sessions             []*Session
	sessionMu            sync.Mutex
	freeSessions         []*Session
	activeSessions       []*Session
	disconnectedSessions []*Session

	stats brokerStats
}

// NewBroker preallocates maxClients connections and sessions and builds the
// "broker/..." and "messages/..." diagnostic leaves MQTTBroker.cpp's
// constructor wires up ahead of ever accepting a socket.
func NewBroker(listenAddr string, maxClients int, tree *datamodel.Tree, log *slog.Logger) *Broker {
	b := &Broker{
		listenAddr: listenAddr,
		maxClients: maxClients,
		tree:       tree,
		log:        log,
	}

	b.connections = make([]*Connection, maxClients+1)
	for id := 1; id <= maxClients; id++ {
		conn := newConnection(uint8(id), b)
		b.connections[id] = conn
		b.idleConnections = append(b.idleConnections, conn)
	}

	b.sessions = make([]*Session, maxClients+1)
	for id := 1; id <= maxClients; id++ {
		session := newSession(uint8(id), b, tree, log)
		b.sessions[id] = session
		b.freeSessions = append(b.freeSessions, session)
	}

	b.stats = newBrokerStats(tree, maxClients)
	b.stats.maximumClients.Set(uint32(maxClients))

	return b
}

func (b *Broker) connectionForID(id uint8) *Connection {
	if int(id) >= len(b.connections) {
		return nil
	}
	return b.connections[id]
}

// Run listens on listenAddr until ctx is cancelled, accepting connections
// into the preallocated pool. It returns nil on a clean shutdown.
func (b *Broker) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", b.listenAddr)
	if err != nil {
		return fmt.Errorf("mqtt broker listen: %w", err)
	}

	return b.Serve(ctx, ln)
}

// Serve runs the accept loop against an already-open listener, letting
// callers (tests, or a supervisor binding to an ephemeral port) control
// listener setup themselves. It returns nil once ctx is cancelled.
func (b *Broker) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	b.log.Info("mqtt broker listening", "addr", ln.Addr(), "maxClients", b.maxClients)

	for {
		netConn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.log.Warn("accept failed", "error", err)
			continue
		}

		go b.acceptConnection(netConn)
	}
}

// acceptConnection claims a pooled Connection, reads the mandatory leading
// CONNECT, and pairs it with a session. Past that point the session's own
// serve goroutine (handleConnection and its readLoop) owns the socket.
func (b *Broker) acceptConnection(netConn net.Conn) {
	conn, ok := b.acquireIdleConnection()
	if !ok {
		b.log.Warn("max MQTT connections exceeded, rejecting", "remote", netConn.RemoteAddr())
		netConn.Close()
		return
	}
	conn.assign(netConn)

	var fh packets.FixedHeader
	if _, err := fh.ReadFrom(conn.reader); err != nil || fh.GetType() != packets.CONNECT {
		b.log.Warn("expected CONNECT as first packet", "remote", netConn.RemoteAddr(), "error", err)
		b.connectionGoingIdle(conn)
		netConn.Close()
		return
	}

	connect := packets.Connect{Header: fh}
	if _, err := connect.ReadFrom(conn.reader); err != nil {
		if err == packets.ErrUnsupportedProtocol {
			b.log.Warn("rejecting CONNECT with unsupported protocol", "remote", netConn.RemoteAddr())
			b.refuseConnect(conn, netConn, packets.UnacceptableProtocolVersion)
			return
		}
		b.log.Warn("malformed CONNECT", "remote", netConn.RemoteAddr(), "error", err)
		b.connectionGoingIdle(conn)
		netConn.Close()
		return
	}

	if connect.WillFlag {
		b.log.Warn("rejecting CONNECT with will flag set", "remote", netConn.RemoteAddr())
		b.refuseConnect(conn, netConn, packets.ServerUnavailable)
		return
	}

	if connect.UsernameFlag || connect.PasswordFlag {
		b.log.Warn("rejecting CONNECT with credentials", "remote", netConn.RemoteAddr())
		b.refuseConnect(conn, netConn, packets.BadUsernameOrPassword)
		return
	}

	conn.clientID = connect.ClientID.String()

	if conn.clientID == "" {
		if !connect.CleanSession {
			b.log.Warn("rejecting CONNECT with empty client id", "remote", netConn.RemoteAddr())
			b.refuseConnect(conn, netConn, packets.IdentifierRejected)
			return
		}
		conn.clientID = netConn.RemoteAddr().String()
	}

	session := b.pairConnectionWithSession(conn.clientID, connect.CleanSession, conn.id)
	if session == nil {
		b.log.Warn("max MQTT sessions exceeded", "clientID", conn.clientID)
		b.refuseConnect(conn, netConn, packets.ServerUnavailable)
		return
	}

	datamodel.Increment(b.stats.totalClients)
}

// refuseConnect sends a CONNACK carrying code and tears the connection back
// down, returning it to the idle pool the way a normal malformed-CONNECT
// close does.
func (b *Broker) refuseConnect(conn *Connection, netConn net.Conn, code packets.ConnectReturnCode) {
	ack := packets.Connack{ReturnCode: code}
	buf := new(bytes.Buffer)
	ack.WriteTo(buf)
	conn.write(buf.Bytes())
	b.connectionGoingIdle(conn)
	netConn.Close()
}

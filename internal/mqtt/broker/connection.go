package broker

import (
	"bufio"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

type connectionState int

const (
	connectionIdle connectionState = iota
	connectionActive
)

// Connection owns the raw TCP socket for one client slot. The broker
// preallocates maxClients of these; accept only ever hands an idle one a
// net.Conn, never allocates a new one, matching MQTTConnection's
// preallocated-pool role in the original firmware.
type Connection struct {
	id     uint8
	broker *Broker

	state connectionState

	writeMu sync.Mutex
	conn    net.Conn
	reader  *bufio.Reader

	clientID     string
	correlation  uuid.UUID
	messagesSent atomic.Uint32
}

func newConnection(id uint8, broker *Broker) *Connection {
	return &Connection{id: id, broker: broker}
}

func (c *Connection) ID() uint8 { return c.id }

// assign hands the connection a fresh socket and a fresh correlation id for
// log lines spanning its lifetime.
func (c *Connection) assign(conn net.Conn) {
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	c.correlation = uuid.New()
	c.clientID = ""
	c.state = connectionActive
}

func (c *Connection) clear() {
	c.conn = nil
	c.reader = nil
	c.clientID = ""
	c.messagesSent.Store(0)
	c.state = connectionIdle
}

// write serializes concurrent writers (the session's own protocol replies
// and, separately, whatever goroutine triggered a leaf publish).
func (c *Connection) write(p []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := c.conn.Write(p)
	if err == nil {
		c.messagesSent.Add(1)
	}
	return err
}

func (c *Connection) MessagesSent() uint32 {
	return c.messagesSent.Load()
}

func (c *Connection) RemoteAddr() net.Addr {
	if c.conn == nil {
		return nil
	}
	return c.conn.RemoteAddr()
}

func (c *Connection) close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

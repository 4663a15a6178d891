package broker

// The pool and pairing logic below is a direct port of MQTTBroker.cpp's
// newConnection/pairConnectionWithCleanSession/
// pairConnectionWithNonCleanSession, substituting Go slices under a
// sync.Mutex for the original's intrusive lists under a FreeRTOS
// semaphore. The lock order is unchanged: whenever both locks are needed,
// the session lock is taken first to avoid a starving-philosopher
// deadlock between a session signaling its connection and a connection
// trying to pair with a session.

// acquireIdleConnection pops the front idle connection, or reports none
// available (the pool-exhaustion case).
func (b *Broker) acquireIdleConnection() (*Connection, bool) {
	b.connMu.Lock()
	defer b.connMu.Unlock()

	if len(b.idleConnections) == 0 {
		return nil, false
	}

	conn := b.idleConnections[0]
	b.idleConnections = b.idleConnections[1:]
	b.activeConnections = append(b.activeConnections, conn)
	return conn, true
}

// connectionGoingIdle moves a connection from active back to idle once its
// session handoff is done (or failed) and its socket is closed.
func (b *Broker) connectionGoingIdle(conn *Connection) {
	b.connMu.Lock()
	defer b.connMu.Unlock()

	b.activeConnections = removeConnection(b.activeConnections, conn)
	conn.clear()
	b.idleConnections = append(b.idleConnections, conn)
}

func removeConnection(list []*Connection, target *Connection) []*Connection {
	for i, c := range list {
		if c == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// pairConnectionWithSession implements the clean/non-clean CONNECT pairing
// algorithm. It returns nil if the session pool is exhausted.
func (b *Broker) pairConnectionWithSession(clientID string, cleanSession bool, connID uint8) *Session {
	if cleanSession {
		return b.pairWithCleanSession(clientID, connID)
	}
	return b.pairWithNonCleanSession(clientID, connID)
}

func (b *Broker) pairWithCleanSession(clientID string, connID uint8) *Session {
	b.sessionMu.Lock()
	defer b.sessionMu.Unlock()

	for _, session := range b.disconnectedSessions {
		if session.isForClient(clientID) {
			session.initiateShutdown()
			break
		}
	}
	for _, session := range b.activeSessions {
		if session.isForClient(clientID) {
			session.initiateShutdown()
			break
		}
	}

	if len(b.freeSessions) == 0 {
		return nil
	}

	session := b.freeSessions[0]
	b.freeSessions = b.freeSessions[1:]
	b.activeSessions = append(b.activeSessions, session)
	session.assignConnection(connID, false, true)
	return session
}

func (b *Broker) pairWithNonCleanSession(clientID string, connID uint8) *Session {
	b.sessionMu.Lock()
	defer b.sessionMu.Unlock()

	for i, session := range b.disconnectedSessions {
		if session.isForClient(clientID) {
			b.disconnectedSessions = append(b.disconnectedSessions[:i], b.disconnectedSessions[i+1:]...)
			b.activeSessions = append(b.activeSessions, session)
			session.assignConnection(connID, true, false)
			return session
		}
	}

	for _, session := range b.activeSessions {
		if session.isForClient(clientID) {
			session.assignConnection(connID, true, false)
			return session
		}
	}

	if len(b.freeSessions) == 0 {
		return nil
	}

	session := b.freeSessions[0]
	b.freeSessions = b.freeSessions[1:]
	b.activeSessions = append(b.activeSessions, session)
	session.assignConnection(connID, false, false)
	return session
}

// sessionGoingIdle moves session (from either active or disconnected) back
// to the free list — called once a clean-session client disconnects or a
// shut-down session finishes tearing down.
func (b *Broker) sessionGoingIdle(session *Session) {
	b.sessionMu.Lock()
	defer b.sessionMu.Unlock()

	b.activeSessions = removeSession(b.activeSessions, session)
	b.disconnectedSessions = removeSession(b.disconnectedSessions, session)
	b.freeSessions = append(b.freeSessions, session)
}

// sessionLostConnection moves session from active to disconnected — a
// non-clean session survives its TCP drop, waiting to be reclaimed by a
// reconnect with the same client id.
func (b *Broker) sessionLostConnection(session *Session) {
	b.sessionMu.Lock()
	defer b.sessionMu.Unlock()

	b.activeSessions = removeSession(b.activeSessions, session)
	b.disconnectedSessions = append(b.disconnectedSessions, session)
}

func removeSession(list []*Session, target *Session) []*Session {
	for i, s := range list {
		if s == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
)

// brokerStats holds the leaves MQTTBroker.cpp's constructor wires up ahead
// of accepting any socket: aggregate client/message counters plus one
// per-slot leaf publishing each pooled connection's and session's current
// client id (StatsManager / exportStats in the original).
type brokerStats struct {
	connectedClients    *datamodel.Leaf[uint32]
	disconnectedClients *datamodel.Leaf[uint32]
	maximumClients      *datamodel.Leaf[uint32]
	totalClients        *datamodel.Leaf[uint32]

	messagesReceived *datamodel.Leaf[uint32]
	messagesSent     *datamodel.Leaf[uint32]
	publishReceived  *datamodel.Leaf[uint32]
	publishSent      *datamodel.Leaf[uint32]
	publishDropped   *datamodel.Leaf[uint32]

	connectionLeaves []*datamodel.Leaf[string]
	sessionLeaves    []*datamodel.Leaf[string]
}

func newBrokerStats(tree *datamodel.Tree, maxClients int) brokerStats {
	s := brokerStats{
		connectedClients:    datamodel.NewUint32Leaf(tree, "broker/clients/connected"),
		disconnectedClients: datamodel.NewUint32Leaf(tree, "broker/clients/disconnected"),
		maximumClients:      datamodel.NewUint32Leaf(tree, "broker/clients/maximum"),
		totalClients:        datamodel.NewUint32Leaf(tree, "broker/clients/total"),

		messagesReceived: datamodel.NewUint32Leaf(tree, "messages/received"),
		messagesSent:     datamodel.NewUint32Leaf(tree, "messages/sent"),
		publishReceived:  datamodel.NewUint32Leaf(tree, "messages/publish/received"),
		publishSent:      datamodel.NewUint32Leaf(tree, "messages/publish/sent"),
		publishDropped:   datamodel.NewUint32Leaf(tree, "messages/publish/dropped"),
	}

	for id := 1; id <= maxClients; id++ {
		s.connectionLeaves = append(s.connectionLeaves,
			datamodel.NewStringLeaf(tree, fmt.Sprintf("broker/connections/%d", id)))
		s.sessionLeaves = append(s.sessionLeaves,
			datamodel.NewStringLeaf(tree, fmt.Sprintf("broker/sessions/%d", id)))
	}

	return s
}

// RunStats periodically walks the connection and session pools, publishing
// aggregate counters and per-slot client ids, until ctx is cancelled.
// Messages-sent is tallied from sessions only, not connections: every
// session write already goes through its Connection's write() (which keeps
// its own count for per-connection diagnostics), so summing both here would
// double-count — unlike the original, where MQTTSession wrote straight to
// the raw socket instead of through MQTTConnection.
func (b *Broker) RunStats(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			b.exportStats()
		}
	}
}

func (b *Broker) exportStats() {
	b.connMu.Lock()
	connected := len(b.activeConnections)
	for i, leaf := range b.stats.connectionLeaves {
		if i < len(b.activeConnections) {
			leaf.Set(b.activeConnections[i].clientID)
		} else {
			leaf.Set("")
		}
	}
	b.connMu.Unlock()

	b.sessionMu.Lock()
	var received, sent, publishReceived, publishSent, publishDropped uint32
	idx := 0
	tally := func(group []*Session, publishLeaf bool) {
		for _, session := range group {
			received += session.MessagesReceived()
			sent += session.MessagesSent()
			publishReceived += session.PublishMessagesReceived()
			publishSent += session.PublishMessagesSent()
			publishDropped += session.PublishMessagesDropped()
			if publishLeaf && idx < len(b.stats.sessionLeaves) {
				b.stats.sessionLeaves[idx].Set(session.ClientID())
				idx++
			}
		}
	}
	tally(b.activeSessions, true)
	tally(b.disconnectedSessions, true)
	tally(b.freeSessions, false)

	disconnected := len(b.disconnectedSessions)
	for ; idx < len(b.stats.sessionLeaves); idx++ {
		b.stats.sessionLeaves[idx].Set("")
	}
	b.sessionMu.Unlock()

	b.stats.connectedClients.Set(uint32(connected))
	b.stats.disconnectedClients.Set(uint32(disconnected))
	b.stats.messagesReceived.Set(received)
	b.stats.messagesSent.Set(sent)
	b.stats.publishReceived.Set(publishReceived)
	b.stats.publishSent.Set(publishSent)
	b.stats.publishDropped.Set(publishDropped)
}

// Snapshot is a point-in-time read of the broker's aggregate counters, used
// by internal/metrics to back Prometheus gauges without duplicating the
// pool-walking logic above.
type Snapshot struct {
	ConnectedClients    uint32
	DisconnectedClients uint32
	MaximumClients      uint32
	TotalClients        uint32
	MessagesReceived    uint32
	MessagesSent        uint32
	PublishReceived     uint32
	PublishSent         uint32
	PublishDropped      uint32
}

func (b *Broker) Stats() Snapshot {
	get := func(l *datamodel.Leaf[uint32]) uint32 {
		v, _ := l.Value()
		return v
	}
	return Snapshot{
		ConnectedClients:    get(b.stats.connectedClients),
		DisconnectedClients: get(b.stats.disconnectedClients),
		MaximumClients:      get(b.stats.maximumClients),
		TotalClients:        get(b.stats.totalClients),
		MessagesReceived:    get(b.stats.messagesReceived),
		MessagesSent:        get(b.stats.messagesSent),
		PublishReceived:     get(b.stats.publishReceived),
		PublishSent:         get(b.stats.publishSent),
		PublishDropped:      get(b.stats.publishDropped),
	}
}

// Package metrics exposes the broker's Stats snapshot over a Prometheus
// /metrics endpoint. Grounded on golang-io-mqtt's stat.go, which registers
// a small set of prometheus.Collector values and serves promhttp.Handler()
// on a dedicated mux rather than the default one.
package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/mqtt/broker"
)

// Exporter polls a broker.Broker's Stats snapshot into a handful of gauges
// on its own prometheus.Registry, then serves them on listenAddr.
type Exporter struct {
	broker *broker.Broker

	registry *prometheus.Registry

	connectedClients    prometheus.Gauge
	disconnectedClients prometheus.Gauge
	maximumClients      prometheus.Gauge
	totalClients        prometheus.Gauge
	messagesReceived    prometheus.Gauge
	messagesSent        prometheus.Gauge
	publishReceived     prometheus.Gauge
	publishSent         prometheus.Gauge
	publishDropped      prometheus.Gauge
}

func NewExporter(b *broker.Broker) *Exporter {
	e := &Exporter{
		broker:   b,
		registry: prometheus.NewRegistry(),

		connectedClients:    prometheus.NewGauge(prometheus.GaugeOpts{Name: "lunamon_mqtt_connected_clients", Help: "Currently connected MQTT clients"}),
		disconnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{Name: "lunamon_mqtt_disconnected_clients", Help: "Sessions held open for a disconnected client"}),
		maximumClients:      prometheus.NewGauge(prometheus.GaugeOpts{Name: "lunamon_mqtt_maximum_clients", Help: "Size of the connection pool"}),
		totalClients:        prometheus.NewGauge(prometheus.GaugeOpts{Name: "lunamon_mqtt_total_clients", Help: "Clients accepted since startup"}),
		messagesReceived:    prometheus.NewGauge(prometheus.GaugeOpts{Name: "lunamon_mqtt_messages_received", Help: "MQTT packets received"}),
		messagesSent:        prometheus.NewGauge(prometheus.GaugeOpts{Name: "lunamon_mqtt_messages_sent", Help: "MQTT packets sent"}),
		publishReceived:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "lunamon_mqtt_publish_received", Help: "PUBLISH packets received"}),
		publishSent:         prometheus.NewGauge(prometheus.GaugeOpts{Name: "lunamon_mqtt_publish_sent", Help: "PUBLISH packets sent"}),
		publishDropped:      prometheus.NewGauge(prometheus.GaugeOpts{Name: "lunamon_mqtt_publish_dropped", Help: "PUBLISH packets dropped because the session had no connection or the write failed"}),
	}

	e.registry.MustRegister(
		e.connectedClients, e.disconnectedClients, e.maximumClients, e.totalClients,
		e.messagesReceived, e.messagesSent, e.publishReceived, e.publishSent, e.publishDropped,
	)

	return e
}

// refresh copies the broker's current Stats snapshot into the gauges.
func (e *Exporter) refresh() {
	snap := e.broker.Stats()
	e.connectedClients.Set(float64(snap.ConnectedClients))
	e.disconnectedClients.Set(float64(snap.DisconnectedClients))
	e.maximumClients.Set(float64(snap.MaximumClients))
	e.totalClients.Set(float64(snap.TotalClients))
	e.messagesReceived.Set(float64(snap.MessagesReceived))
	e.messagesSent.Set(float64(snap.MessagesSent))
	e.publishReceived.Set(float64(snap.PublishReceived))
	e.publishSent.Set(float64(snap.PublishSent))
	e.publishDropped.Set(float64(snap.PublishDropped))
}

// Run serves /metrics on listenAddr until ctx is cancelled, refreshing the
// gauges from the broker on every scrape.
func (e *Exporter) Run(ctx context.Context, listenAddr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		e.refresh()
		promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})

	server := &http.Server{Addr: listenAddr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

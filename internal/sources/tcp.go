// Package sources feeds complete NMEA 0183 lines from an external peer into
// a parser and on into the bridges that own the data model's leaves.
// Grounded on the original firmware's NMEAWiFiSource, reconnecting with the
// same backoff-with-jitter loop used elsewhere in this codebase. A
// software-UART serial source is out of scope; only the TCP case is built
// here.
package sources

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/ais"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/bridges"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/nmea"
)

// TCPSource dials addr, reads newline-delimited NMEA sentences, and
// dispatches every parsed message or decoded AIS report into bridges. A
// dropped connection is redialed with backoff until ctx is cancelled.
type TCPSource struct {
	addr    string
	bridges *bridges.Set
	log     *slog.Logger
}

func NewTCPSource(addr string, set *bridges.Set, log *slog.Logger) *TCPSource {
	return &TCPSource{addr: addr, bridges: set, log: log.With("source", addr)}
}

// Run blocks until ctx is cancelled, redialing on every connection loss.
func (s *TCPSource) Run(ctx context.Context) error {
	err := retryWithBackoff(ctx, func() error {
		return s.readOnce(ctx)
	})
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return nil
	}
	return err
}

func (s *TCPSource) readOnce(ctx context.Context) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		s.log.Warn("dial failed", "error", err)
		return io.EOF
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	s.log.Info("nmea source connected")

	parser := nmea.NewParser()
	decap := ais.NewDecapsulator(s.log)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, nmea.MaxLine), nmea.MaxLine)

	for scanner.Scan() {
		s.handleLine(parser, decap, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		s.log.Warn("nmea source connection error", "error", err)
		return io.EOF
	}
	s.log.Warn("nmea source connection closed")
	return io.EOF
}

func (s *TCPSource) handleLine(parser *nmea.Parser, decap *ais.Decapsulator, line string) {
	msg, frag, err := parser.ParseLine(line)
	if err != nil {
		s.log.Debug("dropping unparseable nmea line", "error", err, "line", line)
		return
	}

	if frag != nil {
		s.handleFragment(decap, frag)
		return
	}

	s.bridges.Dispatch(msg)
}

func (s *TCPSource) handleFragment(decap *ais.Decapsulator, frag *nmea.EncapsulatedFragment) {
	complete := decap.AddFragment(frag)
	if !complete {
		return
	}
	defer decap.Reset()

	data, bitLength := decap.Bits()
	report, ok := ais.Decode(s.log, data, bitLength)
	if !ok {
		return
	}
	s.bridges.HandleAidToNavigationReport(report)
}

package sensors

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeEnvironment struct {
	reading Reading
	err     error
}

func (f *fakeEnvironment) Read() (Reading, error) { return f.reading, f.err }

type fakeAirQuality struct {
	aqi uint8
	err error
}

func (f *fakeAirQuality) ReadAQI() (uint8, error) { return f.aqi, f.err }

func TestPoller_DetectsBothSensorsWhenPresent(t *testing.T) {
	tree := datamodel.NewTree(4)
	env := &fakeEnvironment{reading: Reading{
		TemperatureTenths: 215,
		HumidityTenths:    480,
		PressureTenths:    10132,
	}}
	air := &fakeAirQuality{aqi: 2}

	poller := NewPoller(tree, env, air, time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Run(ctx)
	time.Sleep(10 * time.Millisecond)
	cancel()

	require.True(t, poller.environmentFunctional)
	require.True(t, poller.airQualityFunctional)
}

func TestPoller_SkipsFaultySensorAfterDetect(t *testing.T) {
	tree := datamodel.NewTree(4)
	env := &fakeEnvironment{err: errors.New("no ack from device")}
	air := &fakeAirQuality{aqi: 1}

	poller := NewPoller(tree, env, air, 5*time.Millisecond, discardLogger())
	poller.detect()

	require.False(t, poller.environmentFunctional)
	require.True(t, poller.airQualityFunctional)

	poller.poll()

	_, ok := poller.leaves.temperature.Value()
	require.False(t, ok)

	aqi, ok := poller.aqi.Value()
	require.True(t, ok)
	require.EqualValues(t, 1, aqi)
}

// Package sensors polls the environmental sensors on the boat's I²C bus and
// feeds their readings into the data model. Grounded on the original
// firmware's EnvironmentalMon (components/EnvironmentalMon/include/
// EnvironmentalMon.h, per _examples/original_source/_INDEX.md): a BME280
// (temperature/humidity/pressure) and an ENS160 (air quality index), each
// detected once at startup and, if present, polled on a fixed interval.
// The I²C driver itself is someone else's concern — this package only
// consumes the narrow Driver interfaces below.
package sensors

import (
	"context"
	"log/slog"
	"time"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
)

// Reading is one BME280 sample: temperature in tenths of a degree Celsius,
// relative humidity in tenths of a percent, and barometric pressure in
// tenths of a hectopascal.
type Reading struct {
	TemperatureTenths datamodel.Tenths[int16]
	HumidityTenths    datamodel.Tenths[uint16]
	PressureTenths    datamodel.Tenths[uint32]
}

// EnvironmentDriver is the narrow interface a BME280 (or compatible) driver
// implements. The actual I²C transaction is someone else's concern.
type EnvironmentDriver interface {
	Read() (Reading, error)
}

// AirQualityDriver is the narrow interface an ENS160 (or compatible) driver
// implements, returning a single air-quality index (1-5 per the ENS160's
// own UBA scale).
type AirQualityDriver interface {
	ReadAQI() (uint8, error)
}

type environmentLeaves struct {
	temperature *datamodel.Leaf[datamodel.Tenths[int16]]
	humidity    *datamodel.Leaf[datamodel.Tenths[uint16]]
	pressure    *datamodel.Leaf[datamodel.Tenths[uint32]]
}

// Poller periodically samples whichever of the two sensors detected
// successfully at startup, publishing into "environment/..." and
// "cabin/aqi" leaves. A sensor absent or faulty at startup stays absent for
// the poller's lifetime — mirroring the original's detectBME280/
// detectENS160-once, pollBME280/pollENS160-forever split, not re-probed on
// every tick the way a dynamically hot-pluggable bus might be.
type Poller struct {
	environment EnvironmentDriver
	airQuality  AirQualityDriver
	interval    time.Duration
	log         *slog.Logger

	leaves environmentLeaves
	aqi    *datamodel.Leaf[uint8]

	environmentFunctional bool
	airQualityFunctional  bool
}

func NewPoller(tree *datamodel.Tree, environment EnvironmentDriver, airQuality AirQualityDriver, interval time.Duration, log *slog.Logger) *Poller {
	return &Poller{
		environment: environment,
		airQuality:  airQuality,
		interval:    interval,
		log:         log,
		leaves: environmentLeaves{
			temperature: datamodel.NewTenthsInt16Leaf(tree, "environment/temperature"),
			humidity:    datamodel.NewTenthsUint16Leaf(tree, "environment/humidity"),
			pressure:    datamodel.NewTenthsUint32Leaf(tree, "environment/pressure"),
		},
		aqi: datamodel.NewUint8Leaf(tree, "cabin/aqi"),
	}
}

// Run probes both sensors once, then polls whichever responded until ctx is
// cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.detect()
	if !p.environmentFunctional && !p.airQualityFunctional {
		p.log.Warn("no environmental sensors detected, poller idling")
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.poll()
		}
	}
}

func (p *Poller) detect() {
	if p.environment != nil {
		if _, err := p.environment.Read(); err != nil {
			p.log.Warn("BME280 not detected", "error", err)
		} else {
			p.environmentFunctional = true
		}
	}
	if p.airQuality != nil {
		if _, err := p.airQuality.ReadAQI(); err != nil {
			p.log.Warn("ENS160 not detected", "error", err)
		} else {
			p.airQualityFunctional = true
		}
	}
}

func (p *Poller) poll() {
	if p.environmentFunctional {
		reading, err := p.environment.Read()
		if err != nil {
			p.log.Warn("BME280 read failed", "error", err)
		} else {
			p.leaves.temperature.Set(reading.TemperatureTenths)
			p.leaves.humidity.Set(reading.HumidityTenths)
			p.leaves.pressure.Set(reading.PressureTenths)
		}
	}
	if p.airQualityFunctional {
		aqi, err := p.airQuality.ReadAQI()
		if err != nil {
			p.log.Warn("ENS160 read failed", "error", err)
		} else {
			p.aqi.Set(aqi)
		}
	}
}

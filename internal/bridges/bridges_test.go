package bridges

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/ais"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/nmea"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDepthBridge_DBTPublishesUnderBelowTransducer(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewDepthBridge(tree)

	bridge.HandleDepth("belowTransducer", &nmea.DepthMessage{
		Feet:    nmea.FixedPoint{Scaled: 403, Decimals: 1},
		Meters:  nmea.FixedPoint{Scaled: 123, Decimals: 1},
		Fathoms: nmea.FixedPoint{Scaled: 67, Decimals: 1},
	})

	meters, ok := bridge.readings["belowTransducer"].meters.Value()
	require.True(t, ok)
	require.Equal(t, "12.3", datamodel.FormatTenthsUint16(meters))

	_, ok = bridge.readings["belowKeel"].meters.Value()
	require.False(t, ok)
}

func TestDepthBridge_DPTPublishesOffsetAndRange(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewDepthBridge(tree)

	bridge.HandleDPT(&nmea.DPTMessage{
		Depth:       nmea.FixedPoint{Scaled: 456, Decimals: 1},
		Offset:      nmea.FixedPoint{Scaled: -15, Decimals: 1},
		HasOffset:   true,
		MaxRange:    nmea.FixedPoint{Scaled: 1000, Decimals: 1},
		HasMaxRange: true,
	})

	depth, ok := bridge.dptMeters.Value()
	require.True(t, ok)
	require.Equal(t, "45.6", datamodel.FormatTenthsUint16(depth))

	offset, ok := bridge.dptOffset.Value()
	require.True(t, ok)
	require.Equal(t, "-1.5", datamodel.FormatTenthsInt16(offset))

	maxRange, ok := bridge.dptMaxRange.Value()
	require.True(t, ok)
	require.Equal(t, "100.0", datamodel.FormatTenthsUint16(maxRange))
}

func TestWindBridge_MWVPublishesSpeedAngleAndReference(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewWindBridge(tree)

	bridge.HandleMWV(&nmea.MWVMessage{
		Angle:     nmea.FixedPoint{Scaled: 1125, Decimals: 1},
		Reference: 'R',
		Speed:     nmea.FixedPoint{Scaled: 152, Decimals: 1},
		SpeedUnit: nmea.SpeedUnitsKnots,
		Valid:     nmea.DataValidFix,
	})

	speed, ok := bridge.speed.Value()
	require.True(t, ok)
	require.Equal(t, "15.2", datamodel.FormatTenthsUint16(speed))

	angle, ok := bridge.angle.Value()
	require.True(t, ok)
	require.Equal(t, "112.5", datamodel.FormatTenthsUint16(angle))

	ref, ok := bridge.reference.Value()
	require.True(t, ok)
	require.Equal(t, "relative", ref)

	units, ok := bridge.speedUnits.Value()
	require.True(t, ok)
	require.Equal(t, "knots", units)

	valid, ok := bridge.valid.Value()
	require.True(t, ok)
	require.True(t, valid)
}

func TestWindBridge_HDGPublishesDeviationAndVariationDirections(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewWindBridge(tree)

	bridge.HandleHDG(&nmea.HDGMessage{
		MagneticSensorHeading: nmea.FixedPoint{Scaled: 900, Decimals: 1},
		Deviation:             nmea.FixedPoint{Scaled: 20, Decimals: 1},
		HasDeviation:          true,
		DeviationDirection:    nmea.RelativeRight,
		Variation:             nmea.FixedPoint{Scaled: 30, Decimals: 1},
		HasVariation:          true,
		VariationDirection:    nmea.RelativeLeft,
	})

	devDir, ok := bridge.deviationDirection.Value()
	require.True(t, ok)
	require.Equal(t, "right", devDir)

	varDir, ok := bridge.variationDirection.Value()
	require.True(t, ok)
	require.Equal(t, "left", varDir)
}

func TestWaterBridge_MTWPublishesCelsiusTemperature(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewWaterBridge(tree)

	bridge.HandleMTW(&nmea.MTWMessage{
		Temperature: nmea.FixedPoint{Scaled: -25, Decimals: 1},
		Units:       nmea.TemperatureUnitsCelsius,
	})

	temp, ok := bridge.temperature.Value()
	require.True(t, ok)
	require.Equal(t, "-2.5", datamodel.FormatTenthsInt16(temp))
}

func TestWaterBridge_VHWPublishesHeadingsAndSpeeds(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewWaterBridge(tree)

	bridge.HandleVHW(&nmea.VHWMessage{
		HeadingTrue:        nmea.FixedPoint{Scaled: 1800, Decimals: 1},
		HasHeadingTrue:     true,
		HeadingMagnetic:    nmea.FixedPoint{Scaled: 1750, Decimals: 1},
		HasHeadingMagnetic: true,
		SpeedKnots:         nmea.FixedPoint{Scaled: 65, Decimals: 1},
		SpeedKmPerHour:     nmea.FixedPoint{Scaled: 120, Decimals: 1},
	})

	knots, ok := bridge.speedKnots.Value()
	require.True(t, ok)
	require.Equal(t, "6.5", datamodel.FormatTenthsUint16(knots))

	kmh, ok := bridge.speedKmPerHour.Value()
	require.True(t, ok)
	require.Equal(t, "12.0", datamodel.FormatTenthsUint16(kmh))

	headingTrue, ok := bridge.headingTrue.Value()
	require.True(t, ok)
	require.Equal(t, "180.0", datamodel.FormatTenthsUint16(headingTrue))

	headingMagnetic, ok := bridge.headingMagnetic.Value()
	require.True(t, ok)
	require.Equal(t, "175.0", datamodel.FormatTenthsUint16(headingMagnetic))
}

func TestNavaidBridge_AssignsOneSlotPerMMSI(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewNavaidBridge(tree, 2, discardLogger())

	bridge.Handle(&ais.AidToNavigationReport{MMSI: 993671001, Name: "SEA BUOY", AidType: 1, Latitude: 47.6, Longitude: -122.3})
	bridge.Handle(&ais.AidToNavigationReport{MMSI: 993671002, Name: "CHANNEL MARK", AidType: 6, Latitude: -33.8, Longitude: 151.2})

	mmsi0, ok := bridge.slots[0].mmsi.Value()
	require.True(t, ok)
	require.EqualValues(t, 993671001, mmsi0)

	lat1, ok := bridge.slots[1].latitude.Value()
	require.True(t, ok)
	require.Equal(t, "33.80000S", lat1)
}

func TestNavaidBridge_DropsReportWhenSlotTableFull(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewNavaidBridge(tree, 1, discardLogger())

	bridge.Handle(&ais.AidToNavigationReport{MMSI: 1})
	bridge.Handle(&ais.AidToNavigationReport{MMSI: 2})

	_, ok := bridge.byMMSI[2]
	require.False(t, ok)
	require.Len(t, bridge.byMMSI, 1)
}

func TestSet_DispatchRoutesByKind(t *testing.T) {
	tree := datamodel.NewTree(4)
	set := NewSet(tree, 2, discardLogger())

	msg := &nmea.Message{
		Kind: nmea.KindDBT,
		Depth: nmea.DepthMessage{
			Meters: nmea.FixedPoint{Scaled: 100, Decimals: 1},
		},
	}
	set.Dispatch(msg)

	meters, ok := set.Depth.readings["belowTransducer"].meters.Value()
	require.True(t, ok)
	require.Equal(t, "10.0", datamodel.FormatTenthsUint16(meters))
}

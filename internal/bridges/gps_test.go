package bridges

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/nmea"
)

func TestGPSBridge_GGAPublishesPositionFix(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewGPSBridge(tree)

	parser := nmea.NewParser()
	msg, frag, err := parser.ParseLine("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\r\n")
	require.NoError(t, err)
	require.Nil(t, frag)

	bridge.HandleGGA(&msg.GGA)

	timeVal, ok := bridge.time.Value()
	require.True(t, ok)
	require.Equal(t, "12:35:19", timeVal)

	lat, ok := bridge.latitude.Value()
	require.True(t, ok)
	require.Equal(t, "48°7.03800'N", lat)

	lon, ok := bridge.longitude.Value()
	require.True(t, ok)
	require.Equal(t, "11°31.00000'E", lon)

	sats, ok := bridge.numberSatellites.Value()
	require.True(t, ok)
	require.EqualValues(t, 8, sats)

	alt, ok := bridge.altitude.Value()
	require.True(t, ok)
	require.Equal(t, "545.4", datamodel.FormatTenthsInt16(alt))
}

func TestGPSBridge_GGAPublishesZeroGeoidalSeparationWhenPresent(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewGPSBridge(tree)

	parser := nmea.NewParser()
	msg, frag, err := parser.ParseLine("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,0.0,M,,*7C\r\n")
	require.NoError(t, err)
	require.Nil(t, frag)

	bridge.HandleGGA(&msg.GGA)

	sep, ok := bridge.geoidalSeparation.Value()
	require.True(t, ok)
	require.Equal(t, "0.0", datamodel.FormatTenthsInt16(sep))
}

func TestGPSBridge_GGALeavesGeoidalSeparationUnsetWhenAbsent(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewGPSBridge(tree)

	parser := nmea.NewParser()
	msg, frag, err := parser.ParseLine("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,,,,*1F\r\n")
	require.NoError(t, err)
	require.Nil(t, frag)

	bridge.HandleGGA(&msg.GGA)

	_, ok := bridge.geoidalSeparation.Value()
	require.False(t, ok)
}

func TestGPSBridge_GSACountsSatellitesUsed(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewGPSBridge(tree)

	gsa := &nmea.GSAMessage{
		Selection:    nmea.SelectionAutomatic,
		FixMode:      nmea.GPSFix3D,
		SatellitePRN: [12]uint8{4, 7, 9, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}
	bridge.HandleGSA(gsa)

	used, ok := bridge.satellitesUsed.Value()
	require.True(t, ok)
	require.EqualValues(t, 3, used)

	mode, ok := bridge.fixMode.Value()
	require.True(t, ok)
	require.Equal(t, "3D", mode)
}

func TestGPSBridge_RMCAppliesVariationSign(t *testing.T) {
	tree := datamodel.NewTree(4)
	bridge := NewGPSBridge(tree)

	rmc := &nmea.RMCMessage{
		Valid:              nmea.DataValidFix,
		Speed:              nmea.FixedPoint{Scaled: 52, Decimals: 1},
		Course:             nmea.FixedPoint{Scaled: 840, Decimals: 1},
		Variation:          nmea.FixedPoint{Scaled: 23, Decimals: 1},
		HasVariation:       true,
		VariationDirection: nmea.RelativeLeft,
	}
	bridge.HandleRMC(rmc)

	variation, ok := bridge.variation.Value()
	require.True(t, ok)
	require.Equal(t, "-2.3", datamodel.FormatTenthsInt16(variation))
}

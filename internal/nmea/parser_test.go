package nmea

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// checksum computes the XOR checksum the way a well-behaved NMEA talker
// does, for building test fixtures.
func checksum(payload string) byte {
	var c byte
	for i := 0; i < len(payload); i++ {
		c ^= payload[i]
	}
	return c
}

func sentence(payload string) string {
	return fmt.Sprintf("$%s*%02X\r\n", payload, checksum(payload))
}

func encapsulatedSentence(payload string) string {
	return fmt.Sprintf("!%s*%02X\r\n", payload, checksum(payload))
}

func TestParser_GGARoundTrip(t *testing.T) {
	line := sentence("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")

	p := NewParser()
	msg, frag, err := p.ParseLine(line)
	require.NoError(t, err)
	require.Nil(t, frag)
	require.Equal(t, KindGGA, msg.Kind)
	require.Equal(t, "GP", msg.Talker)

	require.Equal(t, "12:35:19", msg.GGA.Time.String())
	require.Equal(t, "48°7.03800'N", msg.GGA.Latitude.String())
	require.Equal(t, "11°31.00000'E", msg.GGA.Longitude.String())
	require.Equal(t, GPSQualityGPSFix, msg.GGA.Quality)
	require.Equal(t, uint8(8), msg.GGA.NumberSatellites)
	require.False(t, msg.GGA.HasGPSDataAge)
	require.False(t, msg.GGA.HasDifferentialStation)
	require.True(t, msg.GGA.HasGeoidalSeparation)
}

func TestParser_GGAZeroGeoidalSeparationIsStillPresent(t *testing.T) {
	line := sentence("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,0.0,M,,")
	parser := NewParser()

	msg, frag, err := parser.ParseLine(line)
	require.NoError(t, err)
	require.Nil(t, frag)

	require.True(t, msg.GGA.HasGeoidalSeparation)
	require.Zero(t, msg.GGA.GeoidalSeparation.Scaled)
}

func TestParser_GGAMissingGeoidalSeparationIsNotPresent(t *testing.T) {
	line := sentence("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,,,,")
	parser := NewParser()

	msg, frag, err := parser.ParseLine(line)
	require.NoError(t, err)
	require.Nil(t, frag)

	require.False(t, msg.GGA.HasGeoidalSeparation)
}

func TestParser_BadChecksumIsRejected(t *testing.T) {
	line := "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*00\r\n"

	p := NewParser()
	msg, frag, err := p.ParseLine(line)
	require.ErrorIs(t, err, ErrBadChecksum)
	require.Nil(t, msg)
	require.Nil(t, frag)
	require.EqualValues(t, 1, p.BadChecksumCount)
}

func TestParser_EveryValidSentenceChecksumsClean(t *testing.T) {
	payloads := []string{
		"GPDBT,10.5,f,3.2,M,1.7,F",
		"GPDPT,3.2,0.5,100.0",
		"GPGLL,4807.038,N,01131.000,E,123519,A,A",
		"GPGSA,A,3,04,05,,,,,,,,,,,2.5,1.3,2.1",
		"GPHDG,123.4,1.1,E,2.2,W",
		"GPMTW,18.5,C",
		"GPMWV,45.0,R,12.3,N,A",
		"GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W,A",
		"GPRSA,5.0,A,,V",
		"GPVHW,,,,,5.5,N,10.2,K",
		"GPVTG,054.7,T,034.4,M,005.5,N,010.2,K,A",
	}

	for _, payload := range payloads {
		line := sentence(payload)
		p := NewParser()
		msg, frag, err := p.ParseLine(line)
		require.NoError(t, err, "payload %q", payload)
		require.Nil(t, frag)
		require.NotEqual(t, KindUnknown, msg.Kind)
	}
}

func TestParser_OverlongLineRejected(t *testing.T) {
	huge := make([]byte, MaxLine+10)
	for i := range huge {
		huge[i] = 'A'
	}

	p := NewParser()
	_, _, err := p.ParseLine(string(huge))
	require.ErrorIs(t, err, ErrLineTooLong)
	require.EqualValues(t, 1, p.OverlongLineCount)
}

func TestParser_UnknownSentenceCounted(t *testing.T) {
	line := sentence("GPZZZ,1,2,3")

	p := NewParser()
	_, _, err := p.ParseLine(line)
	require.ErrorIs(t, err, ErrUnknownSentence)
	require.EqualValues(t, 1, p.UnknownTagCount)
}

func TestParser_EncapsulatedFragmentReassemblyInput(t *testing.T) {
	line := encapsulatedSentence("AIVDM,2,1,9,A,55P5TL01VIaAL@7WKO@mBplU@<PDhh000000001S;AJ::4A80?4i@E53,0")

	p := NewParser()
	msg, frag, err := p.ParseLine(line)
	require.NoError(t, err)
	require.Nil(t, msg)
	require.NotNil(t, frag)
	require.EqualValues(t, 2, frag.FragmentCount)
	require.EqualValues(t, 1, frag.FragmentIndex)
	require.True(t, frag.HasMessageID)
	require.EqualValues(t, 9, frag.MessageID)
	require.False(t, frag.IsOwnVessel)
	require.EqualValues(t, 0, frag.FillBits)
}

func TestParser_GSAFieldsAreIndependentPerSentence(t *testing.T) {
	line := sentence("GPGSA,A,3,04,05,,,,,,,,,,,2.5,1.3,2.1")

	p := NewParser()
	msg, _, err := p.ParseLine(line)
	require.NoError(t, err)
	require.Equal(t, SelectionAutomatic, msg.GSA.Selection)
	require.Equal(t, GPSFix3D, msg.GSA.FixMode)
	require.EqualValues(t, 4, msg.GSA.SatellitePRN[0])
	require.EqualValues(t, 5, msg.GSA.SatellitePRN[1])
	require.EqualValues(t, 0, msg.GSA.SatellitePRN[2])

	msg, _, err = p.ParseLine(sentence("GPGSA,A,3,07,,,,,,,,,,,,2.5,1.3,2.1"))
	require.NoError(t, err)
	require.EqualValues(t, 7, msg.GSA.SatellitePRN[0])
	require.EqualValues(t, 0, msg.GSA.SatellitePRN[1])
}

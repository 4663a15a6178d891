package bridges

import (
	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/nmea"
)

// Every FixedPoint this gateway's parsers produce is scaled to one decimal
// digit (parser.go's fixedFromField callers all pass decimals=1), so these
// two narrow the scaled int64 straight into the tenths leaf types without
// re-deriving the scale at each call site.

func tenthsU16(fp nmea.FixedPoint) datamodel.Tenths[uint16] {
	return datamodel.Tenths[uint16](fp.Scaled)
}

func tenthsI16(fp nmea.FixedPoint) datamodel.Tenths[int16] {
	return datamodel.Tenths[int16](fp.Scaled)
}

func formatGPSQuality(q nmea.GPSQuality) string {
	switch q {
	case nmea.GPSQualityInvalid:
		return "invalid"
	case nmea.GPSQualityGPSFix:
		return "gps"
	case nmea.GPSQualityDGPSFix:
		return "dgps"
	case nmea.GPSQualityPPSFix:
		return "pps"
	case nmea.GPSQualityRTK:
		return "rtk"
	case nmea.GPSQualityFloatRTK:
		return "floatRTK"
	case nmea.GPSQualityEstimated:
		return "estimated"
	case nmea.GPSQualityManual:
		return "manual"
	case nmea.GPSQualitySimulation:
		return "simulation"
	default:
		return "unknown"
	}
}

func formatFAAMode(m nmea.FAAModeIndicator) string {
	switch m {
	case nmea.FAAModeAutonomous:
		return "autonomous"
	case nmea.FAAModeDifferential:
		return "differential"
	case nmea.FAAModeEstimated:
		return "estimated"
	case nmea.FAAModeManualInput:
		return "manual"
	case nmea.FAAModeSimulated:
		return "simulated"
	case nmea.FAAModeNoFix:
		return "noFix"
	case nmea.FAAModePrecise:
		return "precise"
	default:
		return "notApplicable"
	}
}

func formatGPSFixMode(m nmea.GPSFixMode) string {
	switch m {
	case nmea.GPSFixNoFix:
		return "noFix"
	case nmea.GPSFix2D:
		return "2D"
	case nmea.GPSFix3D:
		return "3D"
	default:
		return "unknown"
	}
}

func formatDataValid(v nmea.DataValid) bool {
	return v == nmea.DataValidFix
}

func formatRelative(r nmea.RelativeIndicator) string {
	if r == nmea.RelativeRight {
		return "right"
	}
	return "left"
}

package nmea

// The enumerations below each accept a fixed set of single-character codes.
// An unrecognized character is a field validation error, not a missing
// field.

type DataValid byte

const (
	DataInvalid DataValid = iota
	DataValidFix
)

func DataValidField(view string, optional bool) (DataValid, bool, error) {
	if view == "" {
		if optional {
			return DataInvalid, false, nil
		}
		return DataInvalid, false, ErrFieldMissing
	}
	switch view {
	case "A":
		return DataValidFix, true, nil
	case "V":
		return DataInvalid, true, nil
	default:
		return DataInvalid, false, ErrFieldInvalid
	}
}

type FAAModeIndicator byte

const (
	FAAModeNotApplicable FAAModeIndicator = iota
	FAAModeAutonomous
	FAAModeDifferential
	FAAModeEstimated
	FAAModeManualInput
	FAAModeSimulated
	FAAModeNoFix
	FAAModePrecise
)

func FAAModeIndicatorField(view string, optional bool) (FAAModeIndicator, bool, error) {
	if view == "" {
		if optional {
			return FAAModeNotApplicable, false, nil
		}
		return FAAModeNotApplicable, false, ErrFieldMissing
	}
	switch view {
	case "A":
		return FAAModeAutonomous, true, nil
	case "D":
		return FAAModeDifferential, true, nil
	case "E":
		return FAAModeEstimated, true, nil
	case "M":
		return FAAModeManualInput, true, nil
	case "S":
		return FAAModeSimulated, true, nil
	case "N":
		return FAAModeNoFix, true, nil
	case "P":
		return FAAModePrecise, true, nil
	default:
		return FAAModeNotApplicable, false, ErrFieldInvalid
	}
}

type RelativeIndicator byte

const (
	RelativeLeft RelativeIndicator = iota
	RelativeRight
)

func RelativeIndicatorField(view string, optional bool) (RelativeIndicator, bool, error) {
	if view == "" {
		if optional {
			return RelativeLeft, false, nil
		}
		return RelativeLeft, false, ErrFieldMissing
	}
	// HDG and RMC send E/W in this field; W reads as left and E as right.
	switch view {
	case "L", "W":
		return RelativeLeft, true, nil
	case "R", "E":
		return RelativeRight, true, nil
	default:
		return RelativeLeft, false, ErrFieldInvalid
	}
}

type GPSQuality byte

const (
	GPSQualityInvalid GPSQuality = iota
	GPSQualityGPSFix
	GPSQualityDGPSFix
	GPSQualityPPSFix
	GPSQualityRTK
	GPSQualityFloatRTK
	GPSQualityEstimated
	GPSQualityManual
	GPSQualitySimulation
)

func GPSQualityField(view string, optional bool) (GPSQuality, bool, error) {
	v, ok, err := Uint8Field(view, optional)
	if err != nil || !ok {
		return GPSQualityInvalid, ok, err
	}
	if v > uint8(GPSQualitySimulation) {
		return GPSQualityInvalid, false, ErrFieldInvalid
	}
	return GPSQuality(v), true, nil
}

type GPSFixMode byte

const (
	GPSFixNoFix GPSFixMode = 1
	GPSFix2D    GPSFixMode = 2
	GPSFix3D    GPSFixMode = 3
)

func GPSFixModeField(view string, optional bool) (GPSFixMode, bool, error) {
	v, ok, err := Uint8Field(view, optional)
	if err != nil || !ok {
		return GPSFixNoFix, ok, err
	}
	if v < 1 || v > 3 {
		return GPSFixNoFix, false, ErrFieldInvalid
	}
	return GPSFixMode(v), true, nil
}

type SelectionMode byte

const (
	SelectionAutomatic SelectionMode = iota
	SelectionManual
)

func SelectionModeField(view string, optional bool) (SelectionMode, bool, error) {
	if view == "" {
		if optional {
			return SelectionAutomatic, false, nil
		}
		return SelectionAutomatic, false, ErrFieldMissing
	}
	switch view {
	case "A":
		return SelectionAutomatic, true, nil
	case "M":
		return SelectionManual, true, nil
	default:
		return SelectionAutomatic, false, ErrFieldInvalid
	}
}

type SpeedUnits byte

const (
	SpeedUnitsKnots SpeedUnits = iota
	SpeedUnitsKmPerHour
)

func SpeedUnitsField(view string, optional bool) (SpeedUnits, bool, error) {
	if view == "" {
		if optional {
			return SpeedUnitsKnots, false, nil
		}
		return SpeedUnitsKnots, false, ErrFieldMissing
	}
	switch view {
	case "N":
		return SpeedUnitsKnots, true, nil
	case "K":
		return SpeedUnitsKmPerHour, true, nil
	default:
		return SpeedUnitsKnots, false, ErrFieldInvalid
	}
}

type TemperatureUnits byte

const (
	TemperatureUnitsCelsius TemperatureUnits = iota
)

func TemperatureUnitsField(view string, optional bool) (TemperatureUnits, bool, error) {
	if view == "" {
		if optional {
			return TemperatureUnitsCelsius, false, nil
		}
		return TemperatureUnitsCelsius, false, ErrFieldMissing
	}
	if view != "C" {
		return TemperatureUnitsCelsius, false, ErrFieldInvalid
	}
	return TemperatureUnitsCelsius, true, nil
}

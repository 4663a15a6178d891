package bridges

import (
	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/nmea"
)

// WindBridge publishes MWV (apparent/true wind speed and angle) and HDG
// (magnetic compass heading with deviation/variation corrections).
type WindBridge struct {
	speed     *datamodel.Leaf[datamodel.Tenths[uint16]]
	speedUnits *datamodel.Leaf[string]
	angle     *datamodel.Leaf[datamodel.Tenths[uint16]]
	reference *datamodel.Leaf[string]
	valid     *datamodel.Leaf[bool]

	headingMagnetic    *datamodel.Leaf[datamodel.Tenths[uint16]]
	deviation          *datamodel.Leaf[datamodel.Tenths[uint16]]
	deviationDirection *datamodel.Leaf[string]
	variation          *datamodel.Leaf[datamodel.Tenths[uint16]]
	variationDirection *datamodel.Leaf[string]
}

func NewWindBridge(tree *datamodel.Tree) *WindBridge {
	return &WindBridge{
		speed:      datamodel.NewTenthsUint16Leaf(tree, "wind/speed"),
		speedUnits: datamodel.NewStringLeaf(tree, "wind/speedUnits"),
		angle:      datamodel.NewTenthsUint16Leaf(tree, "wind/angle"),
		reference:  datamodel.NewStringLeaf(tree, "wind/reference"),
		valid:      datamodel.NewBoolLeaf(tree, "wind/valid"),

		headingMagnetic:    datamodel.NewTenthsUint16Leaf(tree, "heading/magnetic"),
		deviation:          datamodel.NewTenthsUint16Leaf(tree, "heading/deviation"),
		deviationDirection: datamodel.NewStringLeaf(tree, "heading/deviationDirection"),
		variation:          datamodel.NewTenthsUint16Leaf(tree, "heading/variation"),
		variationDirection: datamodel.NewStringLeaf(tree, "heading/variationDirection"),
	}
}

// HandleMWV publishes apparent or true wind speed/angle — this gateway
// doesn't distinguish the two in its leaf set, matching the instrument
// display this data model feeds, which shows whichever MWV the wind
// transducer actually emits.
func (b *WindBridge) HandleMWV(m *nmea.MWVMessage) {
	b.speed.Set(tenthsU16(m.Speed))
	b.speedUnits.Set(formatSpeedUnits(m.SpeedUnit))
	b.angle.Set(tenthsU16(m.Angle))
	if m.Reference == 'T' {
		b.reference.Set("true")
	} else {
		b.reference.Set("relative")
	}
	b.valid.Set(formatDataValid(m.Valid))
}

func (b *WindBridge) HandleHDG(m *nmea.HDGMessage) {
	b.headingMagnetic.Set(tenthsU16(m.MagneticSensorHeading))
	if m.HasDeviation {
		b.deviation.Set(tenthsU16(m.Deviation))
		b.deviationDirection.Set(formatRelative(m.DeviationDirection))
	}
	if m.HasVariation {
		b.variation.Set(tenthsU16(m.Variation))
		b.variationDirection.Set(formatRelative(m.VariationDirection))
	}
}

func formatSpeedUnits(u nmea.SpeedUnits) string {
	if u == nmea.SpeedUnitsKmPerHour {
		return "km/h"
	}
	return "knots"
}

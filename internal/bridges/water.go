package bridges

import (
	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/nmea"
)

// WaterBridge publishes MTW (sea temperature) and VHW (heading through
// water plus boat speed through water).
type WaterBridge struct {
	temperature *datamodel.Leaf[datamodel.Tenths[int16]]

	headingTrue     *datamodel.Leaf[datamodel.Tenths[uint16]]
	headingMagnetic *datamodel.Leaf[datamodel.Tenths[uint16]]
	speedKnots      *datamodel.Leaf[datamodel.Tenths[uint16]]
	speedKmPerHour  *datamodel.Leaf[datamodel.Tenths[uint16]]
}

func NewWaterBridge(tree *datamodel.Tree) *WaterBridge {
	return &WaterBridge{
		temperature: datamodel.NewTenthsInt16Leaf(tree, "water/temperature"),

		headingTrue:     datamodel.NewTenthsUint16Leaf(tree, "water/headingTrue"),
		headingMagnetic: datamodel.NewTenthsUint16Leaf(tree, "water/headingMagnetic"),
		speedKnots:      datamodel.NewTenthsUint16Leaf(tree, "water/speedKnots"),
		speedKmPerHour:  datamodel.NewTenthsUint16Leaf(tree, "water/speedKmPerHour"),
	}
}

// HandleMTW ignores m.Units: this gateway's NMEA parser only ever accepts
// "C" (TemperatureUnitsField rejects anything else), so the leaf is always
// Celsius.
func (b *WaterBridge) HandleMTW(m *nmea.MTWMessage) {
	b.temperature.Set(tenthsI16(m.Temperature))
}

func (b *WaterBridge) HandleVHW(m *nmea.VHWMessage) {
	if m.HasHeadingTrue {
		b.headingTrue.Set(tenthsU16(m.HeadingTrue))
	}
	if m.HasHeadingMagnetic {
		b.headingMagnetic.Set(tenthsU16(m.HeadingMagnetic))
	}
	b.speedKnots.Set(tenthsU16(m.SpeedKnots))
	b.speedKmPerHour.Set(tenthsU16(m.SpeedKmPerHour))
}

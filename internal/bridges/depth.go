package bridges

import (
	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/nmea"
)

// DepthBridge publishes DBK/DBS/DBT (each reporting depth relative to a
// different reference point, sharing one feet/meters/fathoms layout) and
// DPT (depth below transducer plus a separate offset and sounder range).
type DepthBridge struct {
	readings map[string]depthLeaves

	dptMeters   *datamodel.Leaf[datamodel.Tenths[uint16]]
	dptOffset   *datamodel.Leaf[datamodel.Tenths[int16]]
	dptMaxRange *datamodel.Leaf[datamodel.Tenths[uint16]]
}

type depthLeaves struct {
	feet    *datamodel.Leaf[datamodel.Tenths[uint16]]
	meters  *datamodel.Leaf[datamodel.Tenths[uint16]]
	fathoms *datamodel.Leaf[datamodel.Tenths[uint16]]
}

// depthReferences fixes the three reference points this gateway ever sees
// so every leaf the bridge owns is built once, up front, by name.
var depthReferences = []string{"belowKeel", "belowSurface", "belowTransducer"}

func NewDepthBridge(tree *datamodel.Tree) *DepthBridge {
	b := &DepthBridge{
		readings:    make(map[string]depthLeaves, len(depthReferences)),
		dptMeters:   datamodel.NewTenthsUint16Leaf(tree, "depth/transducer/meters"),
		dptOffset:   datamodel.NewTenthsInt16Leaf(tree, "depth/transducer/offset"),
		dptMaxRange: datamodel.NewTenthsUint16Leaf(tree, "depth/transducer/maxRange"),
	}

	for _, ref := range depthReferences {
		b.readings[ref] = depthLeaves{
			feet:    datamodel.NewTenthsUint16Leaf(tree, "depth/"+ref+"/feet"),
			meters:  datamodel.NewTenthsUint16Leaf(tree, "depth/"+ref+"/meters"),
			fathoms: datamodel.NewTenthsUint16Leaf(tree, "depth/"+ref+"/fathoms"),
		}
	}

	return b
}

// HandleDepth publishes a DBK/DBS/DBT reading under the reference point its
// sentence code identifies (see bridges.go's Dispatch). A sounder that omits
// one of the three unit fields reports it as a zero-value FixedPoint, same
// as a genuine zero reading would — the parser doesn't distinguish the two,
// so neither does this bridge.
func (b *DepthBridge) HandleDepth(reference string, m *nmea.DepthMessage) {
	leaves, ok := b.readings[reference]
	if !ok {
		return
	}
	leaves.feet.Set(tenthsU16(m.Feet))
	leaves.meters.Set(tenthsU16(m.Meters))
	leaves.fathoms.Set(tenthsU16(m.Fathoms))
}

func (b *DepthBridge) HandleDPT(m *nmea.DPTMessage) {
	b.dptMeters.Set(tenthsU16(m.Depth))
	if m.HasOffset {
		b.dptOffset.Set(tenthsI16(m.Offset))
	}
	if m.HasMaxRange {
		b.dptMaxRange.Set(tenthsU16(m.MaxRange))
	}
}

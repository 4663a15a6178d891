package bridges

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/ais"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
)

// navaidSlot is one preallocated set of leaves under "navaid/<n>/...". The
// tree's shape is fixed at startup, so an AIS aid-to-navigation table can't
// grow a new subtree per MMSI the way a dynamic map would — instead the
// bridge preallocates a fixed number of slots up front, the same pattern
// the MQTT broker uses for its connection and session pools, and assigns
// each newly-seen MMSI the next free one.
type navaidSlot struct {
	mmsi             *datamodel.Leaf[uint32]
	name             *datamodel.Leaf[string]
	aidType          *datamodel.Leaf[uint8]
	latitude         *datamodel.Leaf[string]
	longitude        *datamodel.Leaf[string]
	positionAccurate *datamodel.Leaf[bool]
	offPosition      *datamodel.Leaf[bool]
	virtual          *datamodel.Leaf[bool]
}

// NavaidBridge publishes decoded AIS type-21 (aid-to-navigation) reports:
// buoys, lighthouses and other fixed or floating marks broadcasting their
// identity and position.
type NavaidBridge struct {
	log *slog.Logger

	mu       sync.Mutex
	slots    []navaidSlot
	byMMSI   map[uint32]int
	nextFree int
}

func NewNavaidBridge(tree *datamodel.Tree, maxNavaids int, log *slog.Logger) *NavaidBridge {
	b := &NavaidBridge{
		log:    log,
		slots:  make([]navaidSlot, maxNavaids),
		byMMSI: make(map[uint32]int, maxNavaids),
	}

	for i := range b.slots {
		prefix := "navaid/" + strconv.Itoa(i) + "/"
		b.slots[i] = navaidSlot{
			mmsi:             datamodel.NewUint32Leaf(tree, prefix+"mmsi"),
			name:             datamodel.NewStringLeaf(tree, prefix+"name"),
			aidType:          datamodel.NewUint8Leaf(tree, prefix+"aidType"),
			latitude:         datamodel.NewStringLeaf(tree, prefix+"latitude"),
			longitude:        datamodel.NewStringLeaf(tree, prefix+"longitude"),
			positionAccurate: datamodel.NewBoolLeaf(tree, prefix+"positionAccurate"),
			offPosition:      datamodel.NewBoolLeaf(tree, prefix+"offPosition"),
			virtual:          datamodel.NewBoolLeaf(tree, prefix+"virtual"),
		}
	}

	return b
}

// Handle publishes report into the slot assigned to its MMSI, claiming the
// next free slot on first sight. A report for a new MMSI once every slot is
// in use is dropped and logged — there's no reclaiming an idle mark's slot,
// since an AIS aid-to-navigation station, unlike an MQTT client, never
// announces that it's leaving.
func (b *NavaidBridge) Handle(report *ais.AidToNavigationReport) {
	b.mu.Lock()
	slotIndex, ok := b.byMMSI[report.MMSI]
	if !ok {
		if b.nextFree >= len(b.slots) {
			b.mu.Unlock()
			b.log.Warn("navigation-aid slot table full, dropping report", "mmsi", report.MMSI)
			return
		}
		slotIndex = b.nextFree
		b.nextFree++
		b.byMMSI[report.MMSI] = slotIndex
	}
	slot := b.slots[slotIndex]
	b.mu.Unlock()

	slot.mmsi.Set(report.MMSI)
	slot.name.Set(report.Name)
	slot.aidType.Set(report.AidType)
	slot.latitude.Set(formatDecimalDegrees(report.Latitude, 'N', 'S'))
	slot.longitude.Set(formatDecimalDegrees(report.Longitude, 'E', 'W'))
	slot.positionAccurate.Set(report.PositionAccuracy)
	slot.offPosition.Set(report.OffPosition)
	slot.virtual.Set(report.VirtualAid)
}

// formatDecimalDegrees renders a signed decimal-degree coordinate with a
// hemisphere letter instead of a sign. Like the NMEA-derived gps/latitude
// and gps/longitude leaves it ends in the hemisphere letter, but the number
// is decimal degrees rather than degrees and minutes.
func formatDecimalDegrees(v float64, positive, negative byte) string {
	hemisphere := positive
	if v < 0 {
		hemisphere = negative
		v = -v
	}
	return fmt.Sprintf("%.5f%c", v, hemisphere)
}

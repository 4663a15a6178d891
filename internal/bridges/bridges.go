// Package bridges translates parsed NMEA and AIS messages into data-model
// leaf writes. Each bridge owns a fixed set of leaves built once at startup
// and never looks at a message kind it doesn't own; Dispatch routes a parsed
// nmea.Message to whichever bridge's leaves it updates.
package bridges

import (
	"log/slog"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/ais"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/nmea"
)

// Set bundles every bridge this gateway builds, constructed once against the
// shared tree at startup and handed to every NMEA/AIS source.
type Set struct {
	GPS    *GPSBridge
	Depth  *DepthBridge
	Wind   *WindBridge
	Water  *WaterBridge
	Navaid *NavaidBridge
}

// NewSet builds every bridge's leaves under tree. maxNavaids bounds the
// navigation-aid bridge's preallocated per-MMSI slot table.
func NewSet(tree *datamodel.Tree, maxNavaids int, log *slog.Logger) *Set {
	return &Set{
		GPS:    NewGPSBridge(tree),
		Depth:  NewDepthBridge(tree),
		Wind:   NewWindBridge(tree),
		Water:  NewWaterBridge(tree),
		Navaid: NewNavaidBridge(tree, maxNavaids, log),
	}
}

// Dispatch routes msg to whichever bridge owns its sentence kind. Unknown or
// unhandled kinds (TXT, RSA) are silently ignored — there is no leaf for
// free-text status chatter or rudder angle in this gateway's data model.
func (s *Set) Dispatch(msg *nmea.Message) {
	switch msg.Kind {
	case nmea.KindGGA:
		s.GPS.HandleGGA(&msg.GGA)
	case nmea.KindGLL:
		s.GPS.HandleGLL(&msg.GLL)
	case nmea.KindRMC:
		s.GPS.HandleRMC(&msg.RMC)
	case nmea.KindVTG:
		s.GPS.HandleVTG(&msg.VTG)
	case nmea.KindGSA:
		s.GPS.HandleGSA(&msg.GSA)
	case nmea.KindGSV:
		s.GPS.HandleGSV(&msg.GSV)
	case nmea.KindGST:
		s.GPS.HandleGST(&msg.GST)
	case nmea.KindDBK:
		s.Depth.HandleDepth("belowKeel", &msg.Depth)
	case nmea.KindDBS:
		s.Depth.HandleDepth("belowSurface", &msg.Depth)
	case nmea.KindDBT:
		s.Depth.HandleDepth("belowTransducer", &msg.Depth)
	case nmea.KindDPT:
		s.Depth.HandleDPT(&msg.DPT)
	case nmea.KindMWV:
		s.Wind.HandleMWV(&msg.MWV)
	case nmea.KindHDG:
		s.Wind.HandleHDG(&msg.HDG)
	case nmea.KindMTW:
		s.Water.HandleMTW(&msg.MTW)
	case nmea.KindVHW:
		s.Water.HandleVHW(&msg.VHW)
	}
}

// HandleAidToNavigationReport routes a decoded AIS type-21 message to the
// navigation-aid bridge. It's kept separate from Dispatch because AIS
// reports arrive fully decoded from internal/ais, not as an nmea.Message.
func (s *Set) HandleAidToNavigationReport(report *ais.AidToNavigationReport) {
	s.Navaid.Handle(report)
}

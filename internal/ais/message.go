package ais

import "log/slog"

// MessageTypeAidToNavigationReport is ITU-R M.1371 message type 21.
const MessageTypeAidToNavigationReport = 21

// AidToNavigationReport is the decoded payload of a type-21 AIS message:
// a buoy, lighthouse, or other fixed/floating navigational aid reporting
// its position and identity.
type AidToNavigationReport struct {
	MMSI                 uint32
	AidType              uint8
	Name                 string
	PositionAccuracy     bool
	Longitude            float64
	Latitude             float64
	DimensionToBow       uint16
	DimensionToStern     uint16
	DimensionToPort      uint8
	DimensionToStarboard uint8
	EPFDType             uint8
	UTCSecond            uint8
	OffPosition          bool
	RAIM                 bool
	VirtualAid           bool
	Assigned             bool
	NameExtension        string
}

// PeekMessageType reads the 6-bit message type that leads every AIS
// message without consuming a reader of its own.
func PeekMessageType(data []byte) uint8 {
	return uint8(newBitReader(data).uint(6))
}

// minAidToNavigationReportBits is the fixed portion of a type-21 message,
// excluding the optional name extension.
const minAidToNavigationReportBits = 272

// Decode examines the assembled bit-stream from a completed decapsulation
// and, if it's a message type this gateway understands, returns the
// decoded report. Every other message type is logged at its bit length and
// dropped, matching the narrow decode scope this gateway commits to.
func Decode(log *slog.Logger, data []byte, bitLength int) (*AidToNavigationReport, bool) {
	r := newBitReader(data)
	msgType := uint8(r.uint(6))

	if msgType != MessageTypeAidToNavigationReport {
		log.Debug("dropping unsupported AIS message", "type", msgType, "bits", bitLength)
		return nil, false
	}

	if bitLength < minAidToNavigationReportBits {
		log.Warn("AIS aid-to-navigation report shorter than minimum length",
			"bits", bitLength, "minimum", minAidToNavigationReportBits)
		return nil, false
	}

	_ = r.uint(2) // repeat indicator

	report := &AidToNavigationReport{}
	report.MMSI = r.uint(30)
	report.AidType = uint8(r.uint(5))
	report.Name = r.sixBitText(20)
	report.PositionAccuracy = r.uint(1) != 0
	report.Longitude = float64(r.int(28)) / 600000.0
	report.Latitude = float64(r.int(27)) / 600000.0
	report.DimensionToBow = uint16(r.uint(9))
	report.DimensionToStern = uint16(r.uint(9))
	report.DimensionToPort = uint8(r.uint(6))
	report.DimensionToStarboard = uint8(r.uint(6))
	report.EPFDType = uint8(r.uint(4))
	report.UTCSecond = uint8(r.uint(6))
	report.OffPosition = r.uint(1) != 0
	_ = r.uint(8) // regional reserved
	report.RAIM = r.uint(1) != 0
	report.VirtualAid = r.uint(1) != 0
	report.Assigned = r.uint(1) != 0
	_ = r.uint(1) // spare

	if remaining := r.remaining(bitLength); remaining >= 6 {
		report.NameExtension = r.sixBitText(remaining / 6)
	}

	return report, true
}

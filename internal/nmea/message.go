package nmea

// SentenceKind discriminates the tagged union held by Message. It is the Go
// rendering of the original parser's placement-new into a shared scratch
// buffer: one reusable Message value with one field per sentence kind, only
// one of which is meaningful for any given Kind.
type SentenceKind int

const (
	KindUnknown SentenceKind = iota
	KindDBK
	KindDBS
	KindDBT
	KindDPT
	KindGGA
	KindGLL
	KindGSA
	KindGST
	KindGSV
	KindHDG
	KindMTW
	KindMWV
	KindRMC
	KindRSA
	KindTXT
	KindVHW
	KindVTG
	// KindVDM/KindVDO are recognized by the framer but never populate a
	// Message — their payload is handed to the AIS decapsulator instead.
	KindVDM
	KindVDO
)

// DepthMessage covers DBK (below keel), DBS (below surface) and DBT (below
// transducer) — all three share the feet/meters/fathoms layout.
type DepthMessage struct {
	Feet    FixedPoint
	Meters  FixedPoint
	Fathoms FixedPoint
}

type DPTMessage struct {
	Depth       FixedPoint
	Offset      FixedPoint
	HasOffset   bool
	MaxRange    FixedPoint
	HasMaxRange bool
}

type GGAMessage struct {
	Time                         Time
	Latitude                     Coordinate
	Longitude                    Coordinate
	Quality                      GPSQuality
	NumberSatellites             uint8
	HorizontalDilutionOfPrecision FixedPoint
	AntennaAltitude              FixedPoint
	GeoidalSeparation            FixedPoint
	HasGeoidalSeparation         bool
	GPSDataAge                   FixedPoint
	HasGPSDataAge                bool
	DifferentialReferenceStation uint16
	HasDifferentialStation       bool
}

type GLLMessage struct {
	Latitude  Coordinate
	Longitude Coordinate
	Time      Time
	Valid     DataValid
	Mode      FAAModeIndicator
	HasMode   bool
}

type GSAMessage struct {
	Selection  SelectionMode
	FixMode    GPSFixMode
	SatellitePRN [12]uint8
	PDOP       FixedPoint
	HDOP       FixedPoint
	VDOP       FixedPoint
}

type GSTMessage struct {
	Time       Time
	RMS        FixedPoint
	SemiMajor  FixedPoint
	SemiMinor  FixedPoint
	Orientation FixedPoint
	LatError   FixedPoint
	LonError   FixedPoint
	AltError   FixedPoint
}

type GSVMessage struct {
	TotalMessages   uint8
	MessageNumber   uint8
	SatellitesInView uint8
	PRN             [4]uint8
	Elevation       [4]uint8
	HasSatellite    [4]bool
	Azimuth         [4]uint16
	SNR             [4]uint8
	HasSNR          [4]bool
}

type HDGMessage struct {
	MagneticSensorHeading FixedPoint
	Deviation             FixedPoint
	HasDeviation          bool
	DeviationDirection    RelativeIndicator
	Variation             FixedPoint
	HasVariation          bool
	VariationDirection    RelativeIndicator
}

type MTWMessage struct {
	Temperature FixedPoint
	Units       TemperatureUnits
}

type MWVMessage struct {
	Angle     FixedPoint
	Reference byte // 'R' relative or 'T' true
	Speed     FixedPoint
	SpeedUnit SpeedUnits
	Valid     DataValid
}

type RMCMessage struct {
	Time      Time
	Valid     DataValid
	Latitude  Coordinate
	Longitude Coordinate
	Speed     FixedPoint
	Course    FixedPoint
	Date      Date
	Variation FixedPoint
	HasVariation bool
	VariationDirection RelativeIndicator
	Mode      FAAModeIndicator
	HasMode   bool
}

type RSAMessage struct {
	StarboardAngle    FixedPoint
	StarboardValid    DataValid
	PortAngle         FixedPoint
	HasPort           bool
	PortValid         DataValid
}

type TXTMessage struct {
	TotalMessages uint8
	MessageNumber uint8
	Identifier    uint8
	Text          string
}

type VHWMessage struct {
	HeadingTrue      FixedPoint
	HasHeadingTrue   bool
	HeadingMagnetic  FixedPoint
	HasHeadingMagnetic bool
	SpeedKnots       FixedPoint
	SpeedKmPerHour   FixedPoint
}

type VTGMessage struct {
	CourseTrue      FixedPoint
	HasCourseTrue   bool
	CourseMagnetic  FixedPoint
	HasCourseMagnetic bool
	SpeedKnots      FixedPoint
	SpeedKmPerHour  FixedPoint
	Mode            FAAModeIndicator
	HasMode         bool
}

// EncapsulatedFragment is the fragment-header view of a VDM/VDO sentence,
// handed to the AIS decapsulator rather than stored in Message.
type EncapsulatedFragment struct {
	Talker         string
	IsOwnVessel    bool // VDO vs VDM
	FragmentCount  uint8
	FragmentIndex  uint8
	MessageID      uint32
	HasMessageID   bool
	RadioChannel   string
	Payload        string
	FillBits       uint8
}

// Message is the single reusable tagged-union slot every *Parser owns. The
// caller must consume it (read the Kind-appropriate field) before the next
// ParseLine call reuses it.
type Message struct {
	Kind   SentenceKind
	Talker string

	Depth DepthMessage
	DPT   DPTMessage
	GGA   GGAMessage
	GLL   GLLMessage
	GSA   GSAMessage
	GST   GSTMessage
	GSV   GSVMessage
	HDG   HDGMessage
	MTW   MTWMessage
	MWV   MWVMessage
	RMC   RMCMessage
	RSA   RSAMessage
	TXT   TXTMessage
	VHW   VHWMessage
	VTG   VTGMessage
}

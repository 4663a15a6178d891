package bridges

import (
	"github.com/LisaRowell/LunaMonESP-sub001/internal/datamodel"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/nmea"
)

// GPSBridge publishes position-fix sentences (GGA, GLL, RMC, VTG, GSA, GSV,
// GST) into one shared "gps/..." leaf set. Every sentence that carries a
// position or time writes the same gps/latitude, gps/longitude and gps/time
// leaves regardless of which of them supplied the fix.
type GPSBridge struct {
	time             *datamodel.Leaf[string]
	latitude         *datamodel.Leaf[string]
	longitude        *datamodel.Leaf[string]
	quality          *datamodel.Leaf[string]
	numberSatellites *datamodel.Leaf[uint8]
	hdop             *datamodel.Leaf[datamodel.Tenths[uint16]]
	altitude         *datamodel.Leaf[datamodel.Tenths[int16]]
	geoidalSeparation *datamodel.Leaf[datamodel.Tenths[int16]]
	fixValid         *datamodel.Leaf[bool]
	mode             *datamodel.Leaf[string]

	speed     *datamodel.Leaf[datamodel.Tenths[uint16]]
	course    *datamodel.Leaf[datamodel.Tenths[uint16]]
	date      *datamodel.Leaf[string]
	variation *datamodel.Leaf[datamodel.Tenths[int16]]

	courseTrue     *datamodel.Leaf[datamodel.Tenths[uint16]]
	courseMagnetic *datamodel.Leaf[datamodel.Tenths[uint16]]
	speedKnots     *datamodel.Leaf[datamodel.Tenths[uint16]]
	speedKmPerHour *datamodel.Leaf[datamodel.Tenths[uint16]]

	fixMode        *datamodel.Leaf[string]
	satellitesUsed *datamodel.Leaf[uint8]
	pdop           *datamodel.Leaf[datamodel.Tenths[uint16]]
	vdop           *datamodel.Leaf[datamodel.Tenths[uint16]]

	satellitesInView *datamodel.Leaf[uint8]

	positionErrorRMS        *datamodel.Leaf[datamodel.Tenths[uint16]]
	positionErrorSemiMajor  *datamodel.Leaf[datamodel.Tenths[uint16]]
	positionErrorSemiMinor  *datamodel.Leaf[datamodel.Tenths[uint16]]
	positionErrorOrientation *datamodel.Leaf[datamodel.Tenths[uint16]]
	positionErrorLat        *datamodel.Leaf[datamodel.Tenths[uint16]]
	positionErrorLon        *datamodel.Leaf[datamodel.Tenths[uint16]]
	positionErrorAlt        *datamodel.Leaf[datamodel.Tenths[uint16]]
}

func NewGPSBridge(tree *datamodel.Tree) *GPSBridge {
	return &GPSBridge{
		time:             datamodel.NewStringLeaf(tree, "gps/time"),
		latitude:         datamodel.NewStringLeaf(tree, "gps/latitude"),
		longitude:        datamodel.NewStringLeaf(tree, "gps/longitude"),
		quality:          datamodel.NewStringLeaf(tree, "gps/quality"),
		numberSatellites: datamodel.NewUint8Leaf(tree, "gps/numberSatellites"),
		hdop:             datamodel.NewTenthsUint16Leaf(tree, "gps/horizontalDilutionOfPrecision"),
		altitude:         datamodel.NewTenthsInt16Leaf(tree, "gps/altitude"),
		geoidalSeparation: datamodel.NewTenthsInt16Leaf(tree, "gps/geoidalSeparation"),
		fixValid:         datamodel.NewBoolLeaf(tree, "gps/fixValid"),
		mode:             datamodel.NewStringLeaf(tree, "gps/mode"),

		speed:     datamodel.NewTenthsUint16Leaf(tree, "gps/speed"),
		course:    datamodel.NewTenthsUint16Leaf(tree, "gps/course"),
		date:      datamodel.NewStringLeaf(tree, "gps/date"),
		variation: datamodel.NewTenthsInt16Leaf(tree, "gps/variation"),

		courseTrue:     datamodel.NewTenthsUint16Leaf(tree, "gps/courseTrue"),
		courseMagnetic: datamodel.NewTenthsUint16Leaf(tree, "gps/courseMagnetic"),
		speedKnots:     datamodel.NewTenthsUint16Leaf(tree, "gps/speedKnots"),
		speedKmPerHour: datamodel.NewTenthsUint16Leaf(tree, "gps/speedKmPerHour"),

		fixMode:        datamodel.NewStringLeaf(tree, "gps/fixMode"),
		satellitesUsed: datamodel.NewUint8Leaf(tree, "gps/satellitesUsed"),
		pdop:           datamodel.NewTenthsUint16Leaf(tree, "gps/pdop"),
		vdop:           datamodel.NewTenthsUint16Leaf(tree, "gps/vdop"),

		satellitesInView: datamodel.NewUint8Leaf(tree, "gps/satellitesInView"),

		positionErrorRMS:         datamodel.NewTenthsUint16Leaf(tree, "gps/positionError/rms"),
		positionErrorSemiMajor:   datamodel.NewTenthsUint16Leaf(tree, "gps/positionError/semiMajor"),
		positionErrorSemiMinor:   datamodel.NewTenthsUint16Leaf(tree, "gps/positionError/semiMinor"),
		positionErrorOrientation: datamodel.NewTenthsUint16Leaf(tree, "gps/positionError/orientation"),
		positionErrorLat:         datamodel.NewTenthsUint16Leaf(tree, "gps/positionError/latitude"),
		positionErrorLon:         datamodel.NewTenthsUint16Leaf(tree, "gps/positionError/longitude"),
		positionErrorAlt:         datamodel.NewTenthsUint16Leaf(tree, "gps/positionError/altitude"),
	}
}

// HandleGGA publishes a GGA sentence's position fix.
func (b *GPSBridge) HandleGGA(m *nmea.GGAMessage) {
	b.time.Set(m.Time.String())
	b.latitude.Set(m.Latitude.String())
	b.longitude.Set(m.Longitude.String())
	b.quality.Set(formatGPSQuality(m.Quality))
	b.numberSatellites.Set(m.NumberSatellites)
	b.hdop.Set(tenthsU16(m.HorizontalDilutionOfPrecision))
	b.altitude.Set(tenthsI16(m.AntennaAltitude))
	if m.HasGeoidalSeparation {
		b.geoidalSeparation.Set(tenthsI16(m.GeoidalSeparation))
	}
}

func (b *GPSBridge) HandleGLL(m *nmea.GLLMessage) {
	b.latitude.Set(m.Latitude.String())
	b.longitude.Set(m.Longitude.String())
	b.time.Set(m.Time.String())
	b.fixValid.Set(formatDataValid(m.Valid))
	if m.HasMode {
		b.mode.Set(formatFAAMode(m.Mode))
	}
}

func (b *GPSBridge) HandleRMC(m *nmea.RMCMessage) {
	b.time.Set(m.Time.String())
	b.latitude.Set(m.Latitude.String())
	b.longitude.Set(m.Longitude.String())
	b.fixValid.Set(formatDataValid(m.Valid))
	b.speed.Set(tenthsU16(m.Speed))
	b.course.Set(tenthsU16(m.Course))
	b.date.Set(m.Date.String())
	if m.HasVariation {
		b.variation.Set(tenthsI16(signedByDirection(m.Variation, m.VariationDirection)))
	}
	if m.HasMode {
		b.mode.Set(formatFAAMode(m.Mode))
	}
}

func (b *GPSBridge) HandleVTG(m *nmea.VTGMessage) {
	if m.HasCourseTrue {
		b.courseTrue.Set(tenthsU16(m.CourseTrue))
	}
	if m.HasCourseMagnetic {
		b.courseMagnetic.Set(tenthsU16(m.CourseMagnetic))
	}
	b.speedKnots.Set(tenthsU16(m.SpeedKnots))
	b.speedKmPerHour.Set(tenthsU16(m.SpeedKmPerHour))
}

func (b *GPSBridge) HandleGSA(m *nmea.GSAMessage) {
	b.fixMode.Set(formatGPSFixMode(m.FixMode))
	b.pdop.Set(tenthsU16(m.PDOP))
	b.hdop.Set(tenthsU16(m.HDOP))
	b.vdop.Set(tenthsU16(m.VDOP))

	var used uint8
	for _, prn := range m.SatellitePRN {
		if prn != 0 {
			used++
		}
	}
	b.satellitesUsed.Set(used)
}

func (b *GPSBridge) HandleGSV(m *nmea.GSVMessage) {
	b.satellitesInView.Set(m.SatellitesInView)
}

func (b *GPSBridge) HandleGST(m *nmea.GSTMessage) {
	b.positionErrorRMS.Set(tenthsU16(m.RMS))
	b.positionErrorSemiMajor.Set(tenthsU16(m.SemiMajor))
	b.positionErrorSemiMinor.Set(tenthsU16(m.SemiMinor))
	b.positionErrorOrientation.Set(tenthsU16(m.Orientation))
	b.positionErrorLat.Set(tenthsU16(m.LatError))
	b.positionErrorLon.Set(tenthsU16(m.LonError))
	b.positionErrorAlt.Set(tenthsU16(m.AltError))
}

// signedByDirection applies a RelativeIndicator's sign to an unsigned
// magnitude field: NMEA reports magnetic variation as a magnitude plus an
// E/W (here repurposed left/right) direction letter rather than a signed
// number.
func signedByDirection(fp nmea.FixedPoint, dir nmea.RelativeIndicator) nmea.FixedPoint {
	if dir == nmea.RelativeLeft {
		fp.Scaled = -fp.Scaled
	}
	return fp
}

package nmea

// The functions below each consume one sentence's comma-separated fields
// into the Message struct named by message.go. They are grounded on the
// individual NMEA message parsers under the original firmware's
// components/NMEA tree, generalized from that tree's per-type parser
// classes into one function per sentence.

func parseDepth(m *DepthMessage, fields string) error {
	w := newFieldWalker(fields)

	feetView, _ := w.next()
	feetUnit, _ := w.next()
	metersView, _ := w.next()
	metersUnit, _ := w.next()
	fathomsView, _ := w.next()
	fathomsUnit, _ := w.next()

	var err error
	if m.Feet, _, err = fixedFromField(feetView, true, 1); err != nil {
		return err
	}
	if feetView != "" {
		if err := ConstantWordField(feetUnit, "f"); err != nil {
			return err
		}
	}
	if m.Meters, _, err = fixedFromField(metersView, true, 1); err != nil {
		return err
	}
	if metersView != "" {
		if err := ConstantWordField(metersUnit, "M"); err != nil {
			return err
		}
	}
	if m.Fathoms, _, err = fixedFromField(fathomsView, true, 1); err != nil {
		return err
	}
	if fathomsView != "" {
		if err := ConstantWordField(fathomsUnit, "F"); err != nil {
			return err
		}
	}
	return nil
}

func parseDPT(m *DPTMessage, fields string) error {
	w := newFieldWalker(fields)

	depthView, _ := w.next()
	offsetView, _ := w.next()
	rangeView, _ := w.next()

	var err error
	if m.Depth, _, err = fixedFromField(depthView, false, 1); err != nil {
		return err
	}
	if m.Offset, m.HasOffset, err = fixedFromField(offsetView, true, 1); err != nil {
		return err
	}
	if m.MaxRange, m.HasMaxRange, err = fixedFromField(rangeView, true, 1); err != nil {
		return err
	}
	return nil
}

func parseGGA(m *GGAMessage, fields string) error {
	w := newFieldWalker(fields)

	timeView, _ := w.next()
	latView, _ := w.next()
	nsView, _ := w.next()
	lonView, _ := w.next()
	ewView, _ := w.next()
	qualityView, _ := w.next()
	numSatView, _ := w.next()
	hdopView, _ := w.next()
	altView, _ := w.next()
	altUnitView, _ := w.next()
	geoidView, _ := w.next()
	geoidUnitView, _ := w.next()
	ageView, _ := w.next()
	stationView, _ := w.next()

	var err error
	if m.Time, _, err = TimeField(timeView, false); err != nil {
		return err
	}
	if m.Latitude, _, err = LatitudeField(latView, nsView, false); err != nil {
		return err
	}
	if m.Longitude, _, err = LongitudeField(lonView, ewView, false); err != nil {
		return err
	}
	if m.Quality, _, err = GPSQualityField(qualityView, false); err != nil {
		return err
	}
	if m.NumberSatellites, _, err = Uint8Field(numSatView, false); err != nil {
		return err
	}
	if m.HorizontalDilutionOfPrecision, _, err = fixedFromField(hdopView, true, 1); err != nil {
		return err
	}
	if m.AntennaAltitude, _, err = fixedFromField(altView, false, 1); err != nil {
		return err
	}
	if err := ConstantWordField(altUnitView, "M"); err != nil {
		return err
	}
	if m.GeoidalSeparation, m.HasGeoidalSeparation, err = fixedFromField(geoidView, true, 1); err != nil {
		return err
	}
	if geoidView != "" {
		if err := ConstantWordField(geoidUnitView, "M"); err != nil {
			return err
		}
	}
	if m.GPSDataAge, m.HasGPSDataAge, err = fixedFromField(ageView, true, 1); err != nil {
		return err
	}
	if m.DifferentialReferenceStation, m.HasDifferentialStation, err = Uint16Field(stationView, true, 1023); err != nil {
		return err
	}
	return nil
}

func parseGLL(m *GLLMessage, fields string) error {
	w := newFieldWalker(fields)

	latView, _ := w.next()
	nsView, _ := w.next()
	lonView, _ := w.next()
	ewView, _ := w.next()
	timeView, _ := w.next()
	statusView, _ := w.next()
	modeView, _ := w.next()

	var err error
	if m.Latitude, _, err = LatitudeField(latView, nsView, false); err != nil {
		return err
	}
	if m.Longitude, _, err = LongitudeField(lonView, ewView, false); err != nil {
		return err
	}
	if m.Time, _, err = TimeField(timeView, false); err != nil {
		return err
	}
	if m.Valid, _, err = DataValidField(statusView, false); err != nil {
		return err
	}
	if m.Mode, m.HasMode, err = FAAModeIndicatorField(modeView, true); err != nil {
		return err
	}
	return nil
}

func parseGSA(m *GSAMessage, fields string) error {
	w := newFieldWalker(fields)

	selectionView, _ := w.next()
	fixModeView, _ := w.next()

	var err error
	if m.Selection, _, err = SelectionModeField(selectionView, false); err != nil {
		return err
	}
	if m.FixMode, _, err = GPSFixModeField(fixModeView, false); err != nil {
		return err
	}

	for i := 0; i < len(m.SatellitePRN); i++ {
		satView, _ := w.next()
		prn, _, err := Uint8Field(satView, true)
		if err != nil {
			return err
		}
		m.SatellitePRN[i] = prn
	}

	pdopView, _ := w.next()
	hdopView, _ := w.next()
	vdopView, _ := w.next()

	if m.PDOP, _, err = fixedFromField(pdopView, false, 1); err != nil {
		return err
	}
	if m.HDOP, _, err = fixedFromField(hdopView, false, 1); err != nil {
		return err
	}
	if m.VDOP, _, err = fixedFromField(vdopView, false, 1); err != nil {
		return err
	}
	return nil
}

func parseGST(m *GSTMessage, fields string) error {
	w := newFieldWalker(fields)

	timeView, _ := w.next()
	rmsView, _ := w.next()
	semiMajorView, _ := w.next()
	semiMinorView, _ := w.next()
	orientationView, _ := w.next()
	latErrView, _ := w.next()
	lonErrView, _ := w.next()
	altErrView, _ := w.next()

	var err error
	if m.Time, _, err = TimeField(timeView, false); err != nil {
		return err
	}
	if m.RMS, _, err = fixedFromField(rmsView, false, 1); err != nil {
		return err
	}
	if m.SemiMajor, _, err = fixedFromField(semiMajorView, false, 1); err != nil {
		return err
	}
	if m.SemiMinor, _, err = fixedFromField(semiMinorView, false, 1); err != nil {
		return err
	}
	if m.Orientation, _, err = fixedFromField(orientationView, false, 1); err != nil {
		return err
	}
	if m.LatError, _, err = fixedFromField(latErrView, false, 1); err != nil {
		return err
	}
	if m.LonError, _, err = fixedFromField(lonErrView, false, 1); err != nil {
		return err
	}
	if m.AltError, _, err = fixedFromField(altErrView, false, 1); err != nil {
		return err
	}
	return nil
}

func parseGSV(m *GSVMessage, fields string) error {
	w := newFieldWalker(fields)

	totalView, _ := w.next()
	numberView, _ := w.next()
	inViewView, _ := w.next()

	var err error
	if m.TotalMessages, _, err = Uint8Field(totalView, false); err != nil {
		return err
	}
	if m.MessageNumber, _, err = Uint8Field(numberView, false); err != nil {
		return err
	}
	if m.SatellitesInView, _, err = Uint8Field(inViewView, false); err != nil {
		return err
	}

	for i := 0; i < 4; i++ {
		prnView, _ := w.next()
		elevView, _ := w.next()
		azimuthView, _ := w.next()
		snrView, _ := w.next()

		prn, hasPRN, err := Uint8Field(prnView, true)
		if err != nil {
			return err
		}
		m.PRN[i] = prn
		m.HasSatellite[i] = hasPRN
		if !hasPRN {
			continue
		}

		elev, _, err := Uint8Field(elevView, true)
		if err != nil {
			return err
		}
		m.Elevation[i] = elev

		azimuth, _, err := Uint16Field(azimuthView, true, 359)
		if err != nil {
			return err
		}
		m.Azimuth[i] = azimuth

		snr, hasSNR, err := Uint8Field(snrView, true)
		if err != nil {
			return err
		}
		m.SNR[i] = snr
		m.HasSNR[i] = hasSNR
	}
	return nil
}

func parseHDG(m *HDGMessage, fields string) error {
	w := newFieldWalker(fields)

	headingView, _ := w.next()
	deviationView, _ := w.next()
	deviationDirView, _ := w.next()
	variationView, _ := w.next()
	variationDirView, _ := w.next()

	var err error
	if m.MagneticSensorHeading, _, err = fixedFromField(headingView, false, 1); err != nil {
		return err
	}
	if m.Deviation, m.HasDeviation, err = fixedFromField(deviationView, true, 1); err != nil {
		return err
	}
	if m.HasDeviation {
		if m.DeviationDirection, _, err = RelativeIndicatorField(deviationDirView, false); err != nil {
			return err
		}
	}
	if m.Variation, m.HasVariation, err = fixedFromField(variationView, true, 1); err != nil {
		return err
	}
	if m.HasVariation {
		if m.VariationDirection, _, err = RelativeIndicatorField(variationDirView, false); err != nil {
			return err
		}
	}
	return nil
}

func parseMTW(m *MTWMessage, fields string) error {
	w := newFieldWalker(fields)

	tempView, _ := w.next()
	unitsView, _ := w.next()

	var err error
	if m.Temperature, _, err = fixedFromField(tempView, false, 1); err != nil {
		return err
	}
	if m.Units, _, err = TemperatureUnitsField(unitsView, false); err != nil {
		return err
	}
	return nil
}

func parseMWV(m *MWVMessage, fields string) error {
	w := newFieldWalker(fields)

	angleView, _ := w.next()
	referenceView, _ := w.next()
	speedView, _ := w.next()
	speedUnitView, _ := w.next()
	statusView, _ := w.next()

	var err error
	if m.Angle, _, err = fixedFromField(angleView, false, 1); err != nil {
		return err
	}
	if referenceView != "R" && referenceView != "T" {
		return ErrFieldInvalid
	}
	m.Reference = referenceView[0]
	if m.Speed, _, err = fixedFromField(speedView, false, 1); err != nil {
		return err
	}
	if m.SpeedUnit, _, err = SpeedUnitsField(speedUnitView, false); err != nil {
		return err
	}
	if m.Valid, _, err = DataValidField(statusView, false); err != nil {
		return err
	}
	return nil
}

func parseRMC(m *RMCMessage, fields string) error {
	w := newFieldWalker(fields)

	timeView, _ := w.next()
	statusView, _ := w.next()
	latView, _ := w.next()
	nsView, _ := w.next()
	lonView, _ := w.next()
	ewView, _ := w.next()
	speedView, _ := w.next()
	courseView, _ := w.next()
	dateView, _ := w.next()
	variationView, _ := w.next()
	variationDirView, _ := w.next()
	modeView, _ := w.next()

	var err error
	if m.Time, _, err = TimeField(timeView, false); err != nil {
		return err
	}
	if m.Valid, _, err = DataValidField(statusView, false); err != nil {
		return err
	}
	if m.Latitude, _, err = LatitudeField(latView, nsView, false); err != nil {
		return err
	}
	if m.Longitude, _, err = LongitudeField(lonView, ewView, false); err != nil {
		return err
	}
	if m.Speed, _, err = fixedFromField(speedView, false, 1); err != nil {
		return err
	}
	if m.Course, _, err = fixedFromField(courseView, false, 1); err != nil {
		return err
	}
	if m.Date, _, err = DateField(dateView, false); err != nil {
		return err
	}
	if m.Variation, m.HasVariation, err = fixedFromField(variationView, true, 1); err != nil {
		return err
	}
	if m.HasVariation {
		if m.VariationDirection, _, err = RelativeIndicatorField(variationDirView, false); err != nil {
			return err
		}
	}
	if m.Mode, m.HasMode, err = FAAModeIndicatorField(modeView, true); err != nil {
		return err
	}
	return nil
}

func parseRSA(m *RSAMessage, fields string) error {
	w := newFieldWalker(fields)

	stbdAngleView, _ := w.next()
	stbdStatusView, _ := w.next()
	portAngleView, _ := w.next()
	portStatusView, _ := w.next()

	var err error
	if m.StarboardAngle, _, err = fixedFromField(stbdAngleView, false, 1); err != nil {
		return err
	}
	if m.StarboardValid, _, err = DataValidField(stbdStatusView, false); err != nil {
		return err
	}
	if m.PortAngle, m.HasPort, err = fixedFromField(portAngleView, true, 1); err != nil {
		return err
	}
	if m.HasPort {
		if m.PortValid, _, err = DataValidField(portStatusView, false); err != nil {
			return err
		}
	}
	return nil
}

func parseTXT(m *TXTMessage, fields string) error {
	w := newFieldWalker(fields)

	totalView, _ := w.next()
	numberView, _ := w.next()
	idView, _ := w.next()
	textView, _ := w.next()

	var err error
	if m.TotalMessages, _, err = Uint8Field(totalView, false); err != nil {
		return err
	}
	if m.MessageNumber, _, err = Uint8Field(numberView, false); err != nil {
		return err
	}
	if m.Identifier, _, err = Uint8Field(idView, false); err != nil {
		return err
	}
	m.Text = textView
	return nil
}

func parseVHW(m *VHWMessage, fields string) error {
	w := newFieldWalker(fields)

	headingTrueView, _ := w.next()
	headingTrueUnit, _ := w.next()
	headingMagView, _ := w.next()
	headingMagUnit, _ := w.next()
	speedKnotsView, _ := w.next()
	speedKnotsUnit, _ := w.next()
	speedKmView, _ := w.next()
	speedKmUnit, _ := w.next()

	var err error
	if m.HeadingTrue, m.HasHeadingTrue, err = fixedFromField(headingTrueView, true, 1); err != nil {
		return err
	}
	if m.HasHeadingTrue {
		if err := ConstantWordField(headingTrueUnit, "T"); err != nil {
			return err
		}
	}
	if m.HeadingMagnetic, m.HasHeadingMagnetic, err = fixedFromField(headingMagView, true, 1); err != nil {
		return err
	}
	if m.HasHeadingMagnetic {
		if err := ConstantWordField(headingMagUnit, "M"); err != nil {
			return err
		}
	}
	if m.SpeedKnots, _, err = fixedFromField(speedKnotsView, false, 1); err != nil {
		return err
	}
	if err := ConstantWordField(speedKnotsUnit, "N"); err != nil {
		return err
	}
	if m.SpeedKmPerHour, _, err = fixedFromField(speedKmView, false, 1); err != nil {
		return err
	}
	if err := ConstantWordField(speedKmUnit, "K"); err != nil {
		return err
	}
	return nil
}

func parseVTG(m *VTGMessage, fields string) error {
	w := newFieldWalker(fields)

	courseTrueView, _ := w.next()
	courseTrueUnit, _ := w.next()
	courseMagView, _ := w.next()
	courseMagUnit, _ := w.next()
	speedKnotsView, _ := w.next()
	speedKnotsUnit, _ := w.next()
	speedKmView, _ := w.next()
	speedKmUnit, _ := w.next()
	modeView, _ := w.next()

	var err error
	if m.CourseTrue, m.HasCourseTrue, err = fixedFromField(courseTrueView, true, 1); err != nil {
		return err
	}
	if m.HasCourseTrue {
		if err := ConstantWordField(courseTrueUnit, "T"); err != nil {
			return err
		}
	}
	if m.CourseMagnetic, m.HasCourseMagnetic, err = fixedFromField(courseMagView, true, 1); err != nil {
		return err
	}
	if m.HasCourseMagnetic {
		if err := ConstantWordField(courseMagUnit, "M"); err != nil {
			return err
		}
	}
	if m.SpeedKnots, _, err = fixedFromField(speedKnotsView, false, 1); err != nil {
		return err
	}
	if err := ConstantWordField(speedKnotsUnit, "N"); err != nil {
		return err
	}
	if m.SpeedKmPerHour, _, err = fixedFromField(speedKmView, false, 1); err != nil {
		return err
	}
	if err := ConstantWordField(speedKmUnit, "K"); err != nil {
		return err
	}
	if m.Mode, m.HasMode, err = FAAModeIndicatorField(modeView, true); err != nil {
		return err
	}
	return nil
}

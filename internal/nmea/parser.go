package nmea

import (
	"errors"
	"strconv"
	"strings"
)

// MaxLine bounds a single NMEA line, including the terminating CRLF. The
// wire format caps at 82 bytes; this parser tolerates a generous margin
// over that.
const MaxLine = 256

var (
	ErrLineTooLong       = errors.New("nmea: line exceeds MAX_LINE")
	ErrBadSentinel       = errors.New("nmea: line does not begin with '$' or '!'")
	ErrBadChecksum       = errors.New("nmea: checksum mismatch")
	ErrMalformedChecksum = errors.New("nmea: malformed checksum suffix")
	ErrMalformedTag      = errors.New("nmea: malformed talker/sentence tag")
	ErrUnknownSentence   = errors.New("nmea: unrecognized sentence code")
)

// Parser holds one reusable Message slot and the counters its error
// handling design calls for.
type Parser struct {
	msg Message

	BadChecksumCount  uint32
	OverlongLineCount uint32
	UnknownTagCount   uint32
	FieldErrorCount   uint32
}

func NewParser() *Parser {
	return &Parser{}
}

// ParseLine validates framing and checksum, dispatches on the sentence tag,
// and on success returns a pointer to the parser's reusable Message (valid
// only until the next ParseLine call). VDM/VDO sentences return
// (nil, fragment, nil); all other recognized sentences return (msg, nil,
// nil). Unrecognized or malformed lines return (nil, nil, err) with the
// relevant counter already incremented.
func (p *Parser) ParseLine(line string) (*Message, *EncapsulatedFragment, error) {
	if len(line) > MaxLine {
		p.OverlongLineCount++
		return nil, nil, ErrLineTooLong
	}
	line = strings.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return nil, nil, ErrBadSentinel
	}

	encapsulated := false
	switch line[0] {
	case '$':
		encapsulated = false
	case '!':
		encapsulated = true
	default:
		return nil, nil, ErrBadSentinel
	}

	body := line[1:]

	star := strings.LastIndexByte(body, '*')
	if star < 0 || star != len(body)-3 {
		return nil, nil, ErrMalformedChecksum
	}

	payload := body[:star]
	checksumHex := body[star+1:]

	want, err := strconv.ParseUint(checksumHex, 16, 8)
	if err != nil {
		return nil, nil, ErrMalformedChecksum
	}

	var got byte
	for i := 0; i < len(payload); i++ {
		got ^= payload[i]
	}

	if got != byte(want) {
		p.BadChecksumCount++
		return nil, nil, ErrBadChecksum
	}

	if len(payload) < 5 {
		return nil, nil, ErrMalformedTag
	}

	talker := payload[:2]
	code := payload[2:5]
	fields := payload[5:]
	if len(fields) > 0 && fields[0] != ',' {
		return nil, nil, ErrMalformedTag
	}
	if len(fields) > 0 {
		fields = fields[1:]
	}

	if encapsulated {
		if code != "VDM" && code != "VDO" {
			p.UnknownTagCount++
			return nil, nil, ErrUnknownSentence
		}
		frag, err := parseEncapsulatedFragment(talker, code == "VDO", fields)
		if err != nil {
			p.FieldErrorCount++
			return nil, nil, err
		}
		return nil, frag, nil
	}

	p.msg = Message{Kind: KindUnknown, Talker: talker}

	var parseErr error
	switch code {
	case "DBK":
		p.msg.Kind = KindDBK
		parseErr = parseDepth(&p.msg.Depth, fields)
	case "DBS":
		p.msg.Kind = KindDBS
		parseErr = parseDepth(&p.msg.Depth, fields)
	case "DBT":
		p.msg.Kind = KindDBT
		parseErr = parseDepth(&p.msg.Depth, fields)
	case "DPT":
		p.msg.Kind = KindDPT
		parseErr = parseDPT(&p.msg.DPT, fields)
	case "GGA":
		p.msg.Kind = KindGGA
		parseErr = parseGGA(&p.msg.GGA, fields)
	case "GLL":
		p.msg.Kind = KindGLL
		parseErr = parseGLL(&p.msg.GLL, fields)
	case "GSA":
		p.msg.Kind = KindGSA
		parseErr = parseGSA(&p.msg.GSA, fields)
	case "GST":
		p.msg.Kind = KindGST
		parseErr = parseGST(&p.msg.GST, fields)
	case "GSV":
		p.msg.Kind = KindGSV
		parseErr = parseGSV(&p.msg.GSV, fields)
	case "HDG":
		p.msg.Kind = KindHDG
		parseErr = parseHDG(&p.msg.HDG, fields)
	case "MTW":
		p.msg.Kind = KindMTW
		parseErr = parseMTW(&p.msg.MTW, fields)
	case "MWV":
		p.msg.Kind = KindMWV
		parseErr = parseMWV(&p.msg.MWV, fields)
	case "RMC":
		p.msg.Kind = KindRMC
		parseErr = parseRMC(&p.msg.RMC, fields)
	case "RSA":
		p.msg.Kind = KindRSA
		parseErr = parseRSA(&p.msg.RSA, fields)
	case "TXT":
		p.msg.Kind = KindTXT
		parseErr = parseTXT(&p.msg.TXT, fields)
	case "VHW":
		p.msg.Kind = KindVHW
		parseErr = parseVHW(&p.msg.VHW, fields)
	case "VTG":
		p.msg.Kind = KindVTG
		parseErr = parseVTG(&p.msg.VTG, fields)
	default:
		p.UnknownTagCount++
		return nil, nil, ErrUnknownSentence
	}

	if parseErr != nil {
		p.FieldErrorCount++
		return nil, nil, parseErr
	}

	return &p.msg, nil, nil
}

func parseEncapsulatedFragment(talker string, isOwnVessel bool, fields string) (*EncapsulatedFragment, error) {
	w := newFieldWalker(fields)

	countView, _ := w.next()
	count, ok, err := Uint8Field(countView, false)
	if err != nil || !ok || count < 1 {
		return nil, ErrFieldInvalid
	}

	indexView, _ := w.next()
	index, ok, err := Uint8Field(indexView, false)
	if err != nil || !ok || index < 1 {
		return nil, ErrFieldInvalid
	}

	idView, _ := w.next()
	id, hasID, err := Uint32Field(idView, count == 1)
	if err != nil {
		return nil, err
	}
	if count > 1 && !hasID {
		return nil, ErrFieldMissing
	}

	channelView, _ := w.next()
	payloadView, _ := w.next()
	if payloadView == "" {
		return nil, ErrFieldMissing
	}

	fillView, _ := w.next()
	fillBits, ok, err := Uint8Field(fillView, false)
	if err != nil || !ok || fillBits > 5 {
		return nil, ErrFieldInvalid
	}

	return &EncapsulatedFragment{
		Talker:        talker,
		IsOwnVessel:   isOwnVessel,
		FragmentCount: count,
		FragmentIndex: index,
		MessageID:     id,
		HasMessageID:  hasID,
		RadioChannel:  channelView,
		Payload:       payloadView,
		FillBits:      fillBits,
	}, nil
}

func fixedFromField(view string, optional bool, decimals int) (FixedPoint, bool, error) {
	scaled, ok, err := fixedPointField(view, optional, decimals)
	return FixedPoint{Scaled: scaled, Decimals: decimals}, ok, err
}

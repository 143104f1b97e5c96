package nmea

import "bytes"

// GSAChannels is the fixed number of satellite id slots in a GSA sentence.
const GSAChannels = 12

// GSA is GNSS DOP and active satellites.
type GSA struct {
	Selection  *SelectionMode      `json:"selection,omitempty"`
	Mode       *FixMode            `json:"mode,omitempty"`
	Satellites [GSAChannels]*uint8 `json:"satellites"`
	PDOP       *float64            `json:"pdop,omitempty"`
	HDOP       *float64            `json:"hdop,omitempty"`
	VDOP       *float64            `json:"vdop,omitempty"`
	SystemID   *uint8              `json:"system_id,omitempty"`
}

func (GSA) Type() SentenceType { return TypeGSA }
func (GSA) sentence()          {}

// InUse returns the ids of the occupied channels.
func (g GSA) InUse() []uint8 {
	var out []uint8
	for _, id := range g.Satellites {
		if id != nil {
			out = append(out, *id)
		}
	}
	return out
}

// sel,mode,id x12,pdop,hdop,vdop[,system]
func decodeGSA(s *scanner) GSA {
	var g GSA
	g.Selection = optCode(s, &selectionModes)
	s.sep()
	g.Mode = s.optFixMode()
	s.sep()
	for i := range g.Satellites {
		g.Satellites[i] = s.optUint8()
		s.sep()
	}
	g.PDOP = s.optFloat()
	s.sep()
	g.HDOP = s.optFloat()
	s.sep()
	g.VDOP = s.optFloat()
	if s.trailing() {
		g.SystemID = s.optUint8()
	}
	s.end()
	return g
}

// GSVSatellite is one satellite block of a GSV sentence.
type GSVSatellite struct {
	ID        *uint8   `json:"id,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
	Azimuth   *float64 `json:"azimuth,omitempty"`
	SNR       *uint8   `json:"snr,omitempty"`
}

// GSV is one page of GNSS satellites in view. Satellites has up to four
// entries; the last page of a group is usually short.
type GSV struct {
	Total      *uint16        `json:"total,omitempty"`
	Number     *uint16        `json:"number,omitempty"`
	InView     *uint8         `json:"in_view,omitempty"`
	Satellites []GSVSatellite `json:"satellites,omitempty"`
	SignalID   *uint8         `json:"signal_id,omitempty"`
}

func (GSV) Type() SentenceType { return TypeGSV }
func (GSV) sentence()          {}

// total,number,in_view{,id,elev,azimuth,snr}[,signal]
//
// NMEA 4.10 appends a signal id, which shows up as one token left over after
// the satellite blocks.
func decodeGSV(s *scanner) GSV {
	var g GSV
	g.Total = s.optUint16()
	s.sep()
	g.Number = s.optUint16()
	s.sep()
	g.InView = s.optUint8()
	if s.err != nil {
		return g
	}

	// Every remaining token is preceded by its comma.
	remaining := bytes.Count(s.data[s.pos:], []byte{','})
	blocks := remaining / 4
	if blocks > 4 {
		s.fail(&DataError{Offset: s.pos, Want: "at most 4 satellites"})
		return g
	}
	for i := 0; i < blocks; i++ {
		var sat GSVSatellite
		s.sep()
		sat.ID = s.optUint8()
		s.sep()
		sat.Elevation = s.optFloat()
		s.sep()
		sat.Azimuth = s.optFloat()
		s.sep()
		sat.SNR = s.optUint8()
		g.Satellites = append(g.Satellites, sat)
	}
	switch remaining % 4 {
	case 0:
	case 1:
		s.sep()
		g.SignalID = s.optUint8()
	default:
		s.fail(&DataError{Offset: s.pos, Want: "complete satellite block"})
	}
	s.end()
	return g
}

// optFixMode decodes the single-digit GSA fix type.
func (s *scanner) optFixMode() *FixMode {
	tok, off := s.token()
	if len(tok) == 0 {
		return nil
	}
	if len(tok) != 1 || !isDigits(tok) {
		s.fail(&NumberError{Offset: off, Token: string(tok)})
		return nil
	}
	m, err := fixModes.decode(tok[0] - '0')
	if err != nil {
		s.fail(err)
		return nil
	}
	return &m
}

package gps

import (
	"math"
	"time"

	"nmea-ng/internal/nmea"
)

const metersToFeet = 3.280839895013123

// fixState folds decoded sentences into the receiver's current fix. It is
// not safe for concurrent use; Service guards it.
type fixState struct {
	latDeg, lonDeg float64
	posOK          bool

	altM   *float64
	geoidM *float64

	groundKt *float64
	trackDeg *float64
	heading  *float64

	quality    *nmea.FixQuality
	mode       *nmea.FixMode
	satellites *int
	inView     *int
	hdop       *float64
	pdop       *float64
	vdop       *float64

	receiverTime time.Time
	talker       string

	lastFix time.Time
	valid   bool
}

func ptr[T any](v T) *T { return &v }

func (s *fixState) setPosition(p *nmea.Position) bool {
	if p == nil {
		return false
	}
	s.latDeg, s.lonDeg = p.Signed()
	s.posOK = true
	return true
}

// apply reports whether sent changed the fix. Only a sentence carrying a
// position refreshes lastFix.
func (s *fixState) apply(nowUTC time.Time, talker string, sent nmea.Sentence) bool {
	var updated, positioned bool
	switch m := sent.(type) {
	case nmea.RMC:
		updated, positioned = s.applyRMC(m)
	case nmea.GGA:
		updated, positioned = s.applyGGA(m)
	case nmea.GNS:
		updated, positioned = s.applyGNS(m)
	case nmea.GSA:
		updated = s.applyGSA(m)
	case nmea.GSV:
		if m.InView != nil {
			s.inView = ptr(int(*m.InView))
			updated = true
		}
	case nmea.VTG:
		if m.SpeedKnots != nil {
			s.groundKt = ptr(*m.SpeedKnots)
			updated = true
		}
		if m.BearingTrue != nil {
			s.trackDeg = ptr(normalizeDeg(*m.BearingTrue))
			updated = true
		}
	case nmea.HDT:
		if m.HeadingTrue != nil {
			s.heading = ptr(normalizeDeg(*m.HeadingTrue))
			updated = true
		}
	case nmea.GLL:
		if m.Status != nil && *m.Status == nmea.GLLDataInvalid {
			return false
		}
		positioned = s.setPosition(m.Position)
		updated = positioned
	}
	if !updated {
		return false
	}
	s.talker = talker
	if positioned {
		s.lastFix = nowUTC
		s.valid = true
	}
	return true
}

func (s *fixState) applyRMC(m nmea.RMC) (bool, bool) {
	// Void fixes leave the last good state in place.
	if !m.Valid() {
		return false, false
	}
	positioned := s.setPosition(m.Position)
	if m.SpeedKnots != nil {
		s.groundKt = ptr(*m.SpeedKnots)
	}
	if m.Course != nil {
		s.trackDeg = ptr(normalizeDeg(*m.Course))
	}
	if m.Date != nil && m.Time != nil {
		s.receiverTime = receiverTime(*m.Date, *m.Time)
	}
	return true, positioned
}

func (s *fixState) applyGGA(m nmea.GGA) (bool, bool) {
	if m.Quality == nil || *m.Quality == nmea.FixNotAvailable {
		return false, false
	}
	s.quality = ptr(*m.Quality)
	if m.Satellites != nil {
		s.satellites = ptr(int(*m.Satellites))
	}
	if m.HDOP != nil {
		s.hdop = ptr(*m.HDOP)
	}
	if m.Altitude != nil {
		s.altM = ptr(*m.Altitude)
	}
	if m.GeoidSeparation != nil {
		s.geoidM = ptr(*m.GeoidSeparation)
	}
	return true, s.setPosition(m.Position)
}

func (s *fixState) applyGNS(m nmea.GNS) (bool, bool) {
	if m.Position == nil {
		return false, false
	}
	s.setPosition(m.Position)
	if m.Satellites != nil {
		s.satellites = ptr(int(*m.Satellites))
	}
	if m.HDOP != nil {
		s.hdop = ptr(*m.HDOP)
	}
	if m.OrthometricHeight != nil {
		s.altM = ptr(*m.OrthometricHeight)
	}
	if m.GeoidSeparation != nil {
		s.geoidM = ptr(*m.GeoidSeparation)
	}
	return true, true
}

func (s *fixState) applyGSA(m nmea.GSA) bool {
	if m.Mode == nil {
		return false
	}
	s.mode = ptr(*m.Mode)
	if m.PDOP != nil {
		s.pdop = ptr(*m.PDOP)
	}
	if m.HDOP != nil {
		s.hdop = ptr(*m.HDOP)
	}
	if m.VDOP != nil {
		s.vdop = ptr(*m.VDOP)
	}
	// Some receivers leave GGA satellites empty; count GSA channels instead.
	if s.satellites == nil {
		s.satellites = ptr(len(m.InUse()))
	}
	return true
}

// fill copies the fix fields into out.
func (s *fixState) fill(out *Snapshot) {
	out.Valid = s.valid
	out.Talker = s.talker
	if s.posOK {
		out.LatDeg = s.latDeg
		out.LonDeg = s.lonDeg
	}
	if s.altM != nil {
		out.AltMeters = ptr(*s.altM)
		out.AltFeet = ptr(int(math.Round(*s.altM * metersToFeet)))
	}
	if s.geoidM != nil {
		out.GeoidSepM = ptr(*s.geoidM)
	}
	if s.groundKt != nil {
		out.GroundKt = ptr(*s.groundKt)
	}
	if s.trackDeg != nil {
		out.TrackDeg = ptr(*s.trackDeg)
	}
	if s.heading != nil {
		out.HeadingDeg = ptr(*s.heading)
	}
	if s.quality != nil {
		out.FixQuality = s.quality.String()
	}
	if s.mode != nil {
		out.FixMode = s.mode.String()
	}
	if s.satellites != nil {
		out.Satellites = ptr(*s.satellites)
	}
	if s.inView != nil {
		out.SatellitesInView = ptr(*s.inView)
	}
	if s.hdop != nil {
		out.HDOP = ptr(*s.hdop)
	}
	if s.pdop != nil {
		out.PDOP = ptr(*s.pdop)
	}
	if s.vdop != nil {
		out.VDOP = ptr(*s.vdop)
	}
	if !s.receiverTime.IsZero() {
		out.ReceiverTimeUTC = s.receiverTime.Format(time.RFC3339Nano)
	}
	if !s.lastFix.IsZero() {
		out.LastFixUTC = s.lastFix.UTC().Format(time.RFC3339Nano)
	}
}

func normalizeDeg(v float64) float64 {
	v = math.Mod(v, 360.0)
	if v < 0 {
		v += 360.0
	}
	return v
}

// receiverTime combines an RMC date and time. Two-digit years are in the
// 2000s.
func receiverTime(d nmea.Date, t nmea.Time) time.Time {
	sec, frac := math.Modf(t.Second)
	return time.Date(2000+int(d.Year), time.Month(d.Month), int(d.Day),
		int(t.Hour), int(t.Minute), int(sec), int(math.Round(frac*1e9)), time.UTC)
}

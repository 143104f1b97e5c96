package nmea

// BOD is the bearing from an origin waypoint to a destination waypoint.
type BOD struct {
	BearingTrue     *float64 `json:"bearing_true,omitempty"`
	BearingMagnetic *float64 `json:"bearing_magnetic,omitempty"`
	ToWaypoint      Text     `json:"to_waypoint,omitempty"`
	FromWaypoint    Text     `json:"from_waypoint,omitempty"`
}

func (BOD) Type() SentenceType { return TypeBOD }
func (BOD) sentence()          {}

// bearing,T,bearing,M,to,from; from runs to the end of the data.
func decodeBOD(s *scanner) BOD {
	var b BOD
	b.BearingTrue = s.optFloat()
	s.expect(",T,")
	b.BearingMagnetic = s.optFloat()
	s.expect(",M,")
	b.ToWaypoint = s.optText()
	s.sep()
	b.FromWaypoint = s.optRest()
	return b
}

// BWC is the bearing and distance to a waypoint along the great circle.
type BWC struct {
	Time            *Time     `json:"time,omitempty"`
	Position        *Position `json:"position,omitempty"`
	BearingTrue     *float64  `json:"bearing_true,omitempty"`
	BearingMagnetic *float64  `json:"bearing_magnetic,omitempty"`
	DistanceNM      *float64  `json:"distance_nm,omitempty"`
	Waypoint        Text      `json:"waypoint,omitempty"`
	Mode            *FAAMode  `json:"mode,omitempty"`
}

func (BWC) Type() SentenceType { return TypeBWC }
func (BWC) sentence()          {}

func decodeBWC(s *scanner) BWC {
	var b BWC
	b.Time = s.optTime()
	s.sep()
	b.Position = s.position()
	s.sep()
	b.BearingTrue = s.optFloat()
	s.expect(",T,")
	b.BearingMagnetic = s.optFloat()
	s.expect(",M,")
	b.DistanceNM = s.optFloat()
	s.expect(",N,")
	b.Waypoint = s.optText()
	b.Mode = s.optMode()
	s.end()
	return b
}

// WPL is a waypoint location.
type WPL struct {
	Position *Position `json:"position,omitempty"`
	Name     Text      `json:"name,omitempty"`
}

func (WPL) Type() SentenceType { return TypeWPL }
func (WPL) sentence()          {}

func decodeWPL(s *scanner) WPL {
	var w WPL
	w.Position = s.position()
	s.sep()
	w.Name = s.optRest()
	return w
}

// HDT is the true heading.
type HDT struct {
	HeadingTrue *float64 `json:"heading_true,omitempty"`
}

func (HDT) Type() SentenceType { return TypeHDT }
func (HDT) sentence()          {}

func decodeHDT(s *scanner) HDT {
	var h HDT
	h.HeadingTrue = s.optFloat()
	s.expect(",T")
	s.end()
	return h
}

// VTG is track made good and ground speed.
type VTG struct {
	BearingTrue     *float64 `json:"bearing_true,omitempty"`
	BearingMagnetic *float64 `json:"bearing_magnetic,omitempty"`
	SpeedKnots      *float64 `json:"speed_knots,omitempty"`
	SpeedKmh        *float64 `json:"speed_kmh,omitempty"`
	Mode            *FAAMode `json:"mode,omitempty"`
}

func (VTG) Type() SentenceType { return TypeVTG }
func (VTG) sentence()          {}

// bearing,T,bearing,M,knots,N,kmh,K[,mode]
func decodeVTG(s *scanner) VTG {
	var v VTG
	v.BearingTrue = s.optFloat()
	s.expect(",T,")
	v.BearingMagnetic = s.optFloat()
	s.expect(",M,")
	v.SpeedKnots = s.optFloat()
	s.expect(",N,")
	v.SpeedKmh = s.optFloat()
	s.expect(",K")
	v.Mode = s.optMode()
	s.end()
	return v
}

// VBW is dual ground/water speed. Speeds may be "-" when not measured.
type VBW struct {
	LongitudinalWaterSpeed  *float64      `json:"longitudinal_water_speed,omitempty"`
	TransverseWaterSpeed    *float64      `json:"transverse_water_speed,omitempty"`
	WaterValidity           *DataValidity `json:"water_validity,omitempty"`
	LongitudinalGroundSpeed *float64      `json:"longitudinal_ground_speed,omitempty"`
	TransverseGroundSpeed   *float64      `json:"transverse_ground_speed,omitempty"`
	GroundValidity          *DataValidity `json:"ground_validity,omitempty"`
}

func (VBW) Type() SentenceType { return TypeVBW }
func (VBW) sentence()          {}

func decodeVBW(s *scanner) VBW {
	var v VBW
	v.LongitudinalWaterSpeed = s.optFloatOrDash()
	s.sep()
	v.TransverseWaterSpeed = s.optFloatOrDash()
	s.sep()
	v.WaterValidity = optCode(s, &dataValidities)
	s.sep()
	v.LongitudinalGroundSpeed = s.optFloatOrDash()
	s.sep()
	v.TransverseGroundSpeed = s.optFloatOrDash()
	s.sep()
	v.GroundValidity = optCode(s, &dataValidities)
	s.end()
	return v
}

// STN is the multiple data id: the talker number of the sentences that follow.
type STN struct {
	TalkerID uint8 `json:"talker_id"`
}

func (STN) Type() SentenceType { return TypeSTN }
func (STN) sentence()          {}

func decodeSTN(s *scanner) STN {
	var t STN
	t.TalkerID = s.reqUint8()
	s.end()
	return t
}

package nmea

// RMC is the recommended minimum specific GNSS data.
type RMC struct {
	Time              *Time               `json:"time,omitempty"`
	Status            *RMStatus           `json:"status,omitempty"`
	Position          *Position           `json:"position,omitempty"`
	SpeedKnots        *float64            `json:"speed_knots,omitempty"`
	Course            *float64            `json:"course,omitempty"`
	Date              *Date               `json:"date,omitempty"`
	MagneticVariation *float64            `json:"magnetic_variation,omitempty"`
	MagneticDirection *LongitudeDirection `json:"magnetic_direction,omitempty"`
	Mode              *FAAMode            `json:"mode,omitempty"`
}

func (RMC) Type() SentenceType { return TypeRMC }
func (RMC) sentence()          {}

// Valid reports whether the receiver flagged the fix as usable.
func (r RMC) Valid() bool {
	return r.Status != nil && *r.Status != StatusWarning && r.Position != nil
}

// time,status,lat,N,lon,E,speed,course,date,magvar,E[,mode]
func decodeRMC(s *scanner) RMC {
	var r RMC
	r.Time = s.optTime()
	s.sep()
	r.Status = optCode(s, &rmStatuses)
	s.sep()
	r.Position = s.position()
	s.sep()
	r.SpeedKnots = s.optFloat()
	s.sep()
	r.Course = s.optFloat()
	s.sep()
	r.Date = s.optDate()
	s.sep()
	r.MagneticVariation = s.optFloat()
	s.sep()
	r.MagneticDirection = optCode(s, &longitudeDirections)
	r.Mode = s.optMode()
	s.end()
	return r
}

// RMA is the recommended minimum specific Loran-C data.
type RMA struct {
	Status            *RMStatus           `json:"status,omitempty"`
	Position          *Position           `json:"position,omitempty"`
	TimeDiffA         *float64            `json:"time_diff_a,omitempty"`
	TimeDiffB         *float64            `json:"time_diff_b,omitempty"`
	SpeedKnots        *float64            `json:"speed_knots,omitempty"`
	Course            *float64            `json:"course,omitempty"`
	MagneticVariation *float64            `json:"magnetic_variation,omitempty"`
	MagneticDirection *LongitudeDirection `json:"magnetic_direction,omitempty"`
}

func (RMA) Type() SentenceType { return TypeRMA }
func (RMA) sentence()          {}

func decodeRMA(s *scanner) RMA {
	var r RMA
	r.Status = optCode(s, &rmStatuses)
	s.sep()
	r.Position = s.position()
	s.sep()
	r.TimeDiffA = s.optFloat()
	s.sep()
	r.TimeDiffB = s.optFloat()
	s.sep()
	r.SpeedKnots = s.optFloat()
	s.sep()
	r.Course = s.optFloat()
	s.sep()
	r.MagneticVariation = s.optFloat()
	s.sep()
	r.MagneticDirection = optCode(s, &longitudeDirections)
	s.end()
	return r
}

// RMB is the recommended minimum navigation information toward a waypoint.
type RMB struct {
	Status          *RMStatus       `json:"status,omitempty"`
	CrossTrackError *float64        `json:"cross_track_error,omitempty"`
	Steer           *SteerDirection `json:"steer,omitempty"`
	ToWaypoint      Text            `json:"to_waypoint,omitempty"`
	FromWaypoint    Text            `json:"from_waypoint,omitempty"`
	Destination     *Position       `json:"destination,omitempty"`
	Range           *float64        `json:"range,omitempty"`
	Bearing         *float64        `json:"bearing,omitempty"`
	ClosingVelocity *float64        `json:"closing_velocity,omitempty"`
	Arrival         *ArrivalStatus  `json:"arrival,omitempty"`
	Mode            *FAAMode        `json:"mode,omitempty"`
}

func (RMB) Type() SentenceType { return TypeRMB }
func (RMB) sentence()          {}

// status,xte,steer,to,from,lat,N,lon,E,range,bearing,velocity,arrival[,mode]
func decodeRMB(s *scanner) RMB {
	var r RMB
	r.Status = optCode(s, &rmStatuses)
	s.sep()
	r.CrossTrackError = s.optFloat()
	s.sep()
	r.Steer = optCode(s, &steerDirections)
	s.sep()
	r.ToWaypoint = s.optText()
	s.sep()
	r.FromWaypoint = s.optText()
	s.sep()
	r.Destination = s.position()
	s.sep()
	r.Range = s.optFloat()
	s.sep()
	r.Bearing = s.optFloat()
	s.sep()
	r.ClosingVelocity = s.optFloat()
	s.sep()
	r.Arrival = optCode(s, &arrivalStatuses)
	r.Mode = s.optMode()
	s.end()
	return r
}

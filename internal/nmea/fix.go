package nmea

// GGA is global positioning system fix data.
type GGA struct {
	Time                  *Time       `json:"time,omitempty"`
	Position              *Position   `json:"position,omitempty"`
	Quality               *FixQuality `json:"quality,omitempty"`
	Satellites            *uint8      `json:"satellites,omitempty"`
	HDOP                  *float64    `json:"hdop,omitempty"`
	Altitude              *float64    `json:"altitude,omitempty"`
	GeoidSeparation       *float64    `json:"geoid_separation,omitempty"`
	DifferentialAge       *float64    `json:"differential_age,omitempty"`
	DifferentialStationID *uint16     `json:"differential_station_id,omitempty"`
}

func (GGA) Type() SentenceType { return TypeGGA }
func (GGA) sentence()          {}

// time,lat,N,lon,E,quality,sats,hdop,alt,M,geoid,M,age,station
func decodeGGA(s *scanner) GGA {
	var g GGA
	g.Time = s.optTime()
	s.sep()
	g.Position = s.position()
	s.sep()
	g.Quality = optNumericCode(s, &fixQualities)
	s.sep()
	g.Satellites = s.optUint8()
	s.sep()
	g.HDOP = s.optFloat()
	s.sep()
	g.Altitude = s.optFloat()
	s.expect(",M,")
	g.GeoidSeparation = s.optFloatOrDash()
	s.expect(",M,")
	g.DifferentialAge = s.optFloat()
	s.sep()
	g.DifferentialStationID = s.optUint16()
	s.end()
	return g
}

// GLL is geographic position, latitude/longitude.
type GLL struct {
	Position *Position  `json:"position,omitempty"`
	Time     *Time      `json:"time,omitempty"`
	Status   *GLLStatus `json:"status,omitempty"`
	Mode     *FAAMode   `json:"mode,omitempty"`
}

func (GLL) Type() SentenceType { return TypeGLL }
func (GLL) sentence()          {}

// lat,N,lon,E,time,status[,mode[,...]]; anything after the mode is ignored.
func decodeGLL(s *scanner) GLL {
	var g GLL
	g.Position = s.position()
	s.sep()
	g.Time = s.optTime()
	s.sep()
	g.Status = optCode(s, &gllStatuses)
	g.Mode = s.optMode()
	s.rest()
	return g
}

// GNS is GNSS fix data. Modes holds one indicator per constellation in the
// order the receiver lists them (GPS, GLONASS, Galileo, ...).
type GNS struct {
	Time                  *Time     `json:"time,omitempty"`
	Position              *Position `json:"position,omitempty"`
	Modes                 []FAAMode `json:"modes,omitempty"`
	Satellites            *uint8    `json:"satellites,omitempty"`
	HDOP                  *float64  `json:"hdop,omitempty"`
	OrthometricHeight     *float64  `json:"orthometric_height,omitempty"`
	GeoidSeparation       *float64  `json:"geoid_separation,omitempty"`
	DifferentialAge       *float64  `json:"differential_age,omitempty"`
	DifferentialStationID *uint16   `json:"differential_station_id,omitempty"`
}

func (GNS) Type() SentenceType { return TypeGNS }
func (GNS) sentence()          {}

// time,lat,N,lon,E,modes,sats,hdop,height,geoid,age,station
func decodeGNS(s *scanner) GNS {
	var g GNS
	g.Time = s.optTime()
	s.sep()
	g.Position = s.position()
	s.sep()
	g.Modes = s.modeList()
	s.sep()
	g.Satellites = s.optUint8()
	s.sep()
	g.HDOP = s.optFloat()
	s.sep()
	g.OrthometricHeight = s.optFloat()
	s.sep()
	g.GeoidSeparation = s.optFloatOrDash()
	s.sep()
	g.DifferentialAge = s.optFloat()
	s.sep()
	g.DifferentialStationID = s.optUint16()
	s.end()
	return g
}

// GBS is GNSS satellite fault detection (RAIM) output.
type GBS struct {
	Time                  *Time    `json:"time,omitempty"`
	LatError              *float64 `json:"lat_error,omitempty"`
	LonError              *float64 `json:"lon_error,omitempty"`
	AltError              *float64 `json:"alt_error,omitempty"`
	FailedSatellite       *uint8   `json:"failed_satellite,omitempty"`
	MissedProbability     *float64 `json:"missed_probability,omitempty"`
	BiasEstimate          *float64 `json:"bias_estimate,omitempty"`
	BiasStandardDeviation *float64 `json:"bias_standard_deviation,omitempty"`
}

func (GBS) Type() SentenceType { return TypeGBS }
func (GBS) sentence()          {}

func decodeGBS(s *scanner) GBS {
	var g GBS
	g.Time = s.optTime()
	s.sep()
	g.LatError = s.optFloat()
	s.sep()
	g.LonError = s.optFloat()
	s.sep()
	g.AltError = s.optFloat()
	s.sep()
	g.FailedSatellite = s.optUint8()
	s.sep()
	g.MissedProbability = s.optFloat()
	s.sep()
	g.BiasEstimate = s.optFloat()
	s.sep()
	g.BiasStandardDeviation = s.optFloat()
	s.end()
	return g
}

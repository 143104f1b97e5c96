package nmea

// CodedField identifies a closed-set field kind. It scopes StatusError.
type CodedField uint8

const (
	FieldRMStatus CodedField = iota + 1
	FieldLatitudeDirection
	FieldLongitudeDirection
	FieldFixQuality
	FieldGLLStatus
	FieldFixMode
	FieldSelectionMode
	FieldSteerDirection
	FieldArrivalStatus
	FieldRouteMode
	FieldDataValidity
	FieldFAAMode
)

var codedFieldNames = []string{
	FieldRMStatus:           "recommended-minimum status",
	FieldLatitudeDirection:  "latitude direction",
	FieldLongitudeDirection: "longitude direction",
	FieldFixQuality:         "fix quality",
	FieldGLLStatus:          "GLL status",
	FieldFixMode:            "fix mode",
	FieldSelectionMode:      "selection mode",
	FieldSteerDirection:     "steer direction",
	FieldArrivalStatus:      "arrival status",
	FieldRouteMode:          "route mode",
	FieldDataValidity:       "data validity",
	FieldFAAMode:            "FAA mode",
}

func (f CodedField) String() string { return enumName(codedFieldNames, int(f)) }

type codeEntry[K comparable, V any] struct {
	token K
	value V
}

// codeSet is a static token table for one coded field. There is no fallback
// entry: a token outside the table is always a StatusError.
type codeSet[K comparable, V any] struct {
	field   CodedField
	entries []codeEntry[K, V]
}

func (s *codeSet[K, V]) decode(tok K) (V, error) {
	for _, e := range s.entries {
		if e.token == tok {
			return e.value, nil
		}
	}
	var zero V
	return zero, &StatusError{Field: s.field}
}

func enumName(names []string, i int) string {
	if i <= 0 || i >= len(names) || names[i] == "" {
		return "invalid"
	}
	return names[i]
}

// RMStatus is the status letter of RMA, RMB and RMC.
type RMStatus uint8

const (
	StatusActive RMStatus = iota + 1
	StatusWarning
	StatusPrecise
)

var rmStatusNames = []string{StatusActive: "active", StatusWarning: "warning", StatusPrecise: "precise"}

var rmStatuses = codeSet[byte, RMStatus]{FieldRMStatus, []codeEntry[byte, RMStatus]{
	{'A', StatusActive},
	{'V', StatusWarning},
	{'P', StatusPrecise},
}}

func (s RMStatus) String() string               { return enumName(rmStatusNames, int(s)) }
func (s RMStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// LatitudeDirection is the N/S hemisphere.
type LatitudeDirection uint8

const (
	North LatitudeDirection = iota + 1
	South
)

var latitudeNames = []string{North: "N", South: "S"}

var latitudeDirections = codeSet[byte, LatitudeDirection]{FieldLatitudeDirection, []codeEntry[byte, LatitudeDirection]{
	{'N', North},
	{'S', South},
}}

func (d LatitudeDirection) String() string               { return enumName(latitudeNames, int(d)) }
func (d LatitudeDirection) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// LongitudeDirection is the E/W hemisphere. It also carries the sign of
// magnetic variation.
type LongitudeDirection uint8

const (
	East LongitudeDirection = iota + 1
	West
)

var longitudeNames = []string{East: "E", West: "W"}

var longitudeDirections = codeSet[byte, LongitudeDirection]{FieldLongitudeDirection, []codeEntry[byte, LongitudeDirection]{
	{'E', East},
	{'W', West},
}}

func (d LongitudeDirection) String() string               { return enumName(longitudeNames, int(d)) }
func (d LongitudeDirection) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// FixQuality is the GGA quality indicator. Values equal the wire digits.
type FixQuality uint8

const (
	FixNotAvailable FixQuality = iota
	FixGPS
	FixDifferential
	FixPPS
	FixRTK
	FixFloatRTK
	FixEstimated
	FixManual
	FixSimulation
)

var fixQualityNames = []string{
	FixNotAvailable: "not available",
	FixGPS:          "gps",
	FixDifferential: "differential",
	FixPPS:          "pps",
	FixRTK:          "rtk",
	FixFloatRTK:     "float rtk",
	FixEstimated:    "estimated",
	FixManual:       "manual",
	FixSimulation:   "simulation",
}

var fixQualities = codeSet[uint8, FixQuality]{FieldFixQuality, []codeEntry[uint8, FixQuality]{
	{0, FixNotAvailable},
	{1, FixGPS},
	{2, FixDifferential},
	{3, FixPPS},
	{4, FixRTK},
	{5, FixFloatRTK},
	{6, FixEstimated},
	{7, FixManual},
	{8, FixSimulation},
}}

func (q FixQuality) String() string {
	if int(q) >= len(fixQualityNames) {
		return "invalid"
	}
	return fixQualityNames[q]
}

func (q FixQuality) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

// GLLStatus is the GLL data status letter.
type GLLStatus uint8

const (
	GLLDataValid GLLStatus = iota + 1
	GLLDataInvalid
	GLLPrecise
)

var gllStatusNames = []string{GLLDataValid: "valid", GLLDataInvalid: "invalid", GLLPrecise: "precise"}

var gllStatuses = codeSet[byte, GLLStatus]{FieldGLLStatus, []codeEntry[byte, GLLStatus]{
	{'A', GLLDataValid},
	{'V', GLLDataInvalid},
	{'P', GLLPrecise},
}}

func (s GLLStatus) String() string               { return enumName(gllStatusNames, int(s)) }
func (s GLLStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// FixMode is the GSA fix type. Values equal the wire digits.
type FixMode uint8

const (
	FixModeNone FixMode = iota + 1
	FixMode2D
	FixMode3D
)

var fixModeNames = []string{FixModeNone: "no fix", FixMode2D: "2d", FixMode3D: "3d"}

var fixModes = codeSet[uint8, FixMode]{FieldFixMode, []codeEntry[uint8, FixMode]{
	{1, FixModeNone},
	{2, FixMode2D},
	{3, FixMode3D},
}}

func (m FixMode) String() string               { return enumName(fixModeNames, int(m)) }
func (m FixMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// SelectionMode is the GSA 2D/3D switching mode.
type SelectionMode uint8

const (
	SelectionManual SelectionMode = iota + 1
	SelectionAutomatic
)

var selectionModeNames = []string{SelectionManual: "manual", SelectionAutomatic: "automatic"}

var selectionModes = codeSet[byte, SelectionMode]{FieldSelectionMode, []codeEntry[byte, SelectionMode]{
	{'M', SelectionManual},
	{'A', SelectionAutomatic},
}}

func (m SelectionMode) String() string               { return enumName(selectionModeNames, int(m)) }
func (m SelectionMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// SteerDirection is the RMB direction to steer.
type SteerDirection uint8

const (
	SteerLeft SteerDirection = iota + 1
	SteerRight
)

var steerNames = []string{SteerLeft: "left", SteerRight: "right"}

var steerDirections = codeSet[byte, SteerDirection]{FieldSteerDirection, []codeEntry[byte, SteerDirection]{
	{'L', SteerLeft},
	{'R', SteerRight},
}}

func (d SteerDirection) String() string               { return enumName(steerNames, int(d)) }
func (d SteerDirection) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// ArrivalStatus is the RMB arrival circle status.
type ArrivalStatus uint8

const (
	Arrived ArrivalStatus = iota + 1
	NotArrived
)

var arrivalNames = []string{Arrived: "arrived", NotArrived: "not arrived"}

var arrivalStatuses = codeSet[byte, ArrivalStatus]{FieldArrivalStatus, []codeEntry[byte, ArrivalStatus]{
	{'A', Arrived},
	{'V', NotArrived},
}}

func (s ArrivalStatus) String() string               { return enumName(arrivalNames, int(s)) }
func (s ArrivalStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// RouteMode marks an RTE route as complete or working.
type RouteMode uint8

const (
	RouteComplete RouteMode = iota + 1
	RouteWorking
)

var routeModeNames = []string{RouteComplete: "complete", RouteWorking: "working"}

var routeModes = codeSet[byte, RouteMode]{FieldRouteMode, []codeEntry[byte, RouteMode]{
	{'c', RouteComplete},
	{'w', RouteWorking},
}}

func (m RouteMode) String() string               { return enumName(routeModeNames, int(m)) }
func (m RouteMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// DataValidity is the VBW per-speed-pair status.
type DataValidity uint8

const (
	DataValid DataValidity = iota + 1
	DataInvalid
)

var validityNames = []string{DataValid: "valid", DataInvalid: "invalid"}

var dataValidities = codeSet[byte, DataValidity]{FieldDataValidity, []codeEntry[byte, DataValidity]{
	{'A', DataValid},
	{'V', DataInvalid},
}}

func (v DataValidity) String() string               { return enumName(validityNames, int(v)) }
func (v DataValidity) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// FAAMode is the NMEA 2.3 positioning mode indicator, also used per
// constellation in the GNS mode list.
type FAAMode uint8

const (
	ModeAutonomous FAAMode = iota + 1
	ModeDifferential
	ModeEstimated
	ModeFloatRTK
	ModeManual
	ModeNotValid
	ModePrecise
	ModeRTK
	ModeSimulator
)

var faaModeNames = []string{
	ModeAutonomous:   "autonomous",
	ModeDifferential: "differential",
	ModeEstimated:    "estimated",
	ModeFloatRTK:     "float rtk",
	ModeManual:       "manual",
	ModeNotValid:     "not valid",
	ModePrecise:      "precise",
	ModeRTK:          "rtk",
	ModeSimulator:    "simulator",
}

var faaModes = codeSet[byte, FAAMode]{FieldFAAMode, []codeEntry[byte, FAAMode]{
	{'A', ModeAutonomous},
	{'D', ModeDifferential},
	{'E', ModeEstimated},
	{'F', ModeFloatRTK},
	{'M', ModeManual},
	{'N', ModeNotValid},
	{'P', ModePrecise},
	{'R', ModeRTK},
	{'S', ModeSimulator},
}}

func (m FAAMode) String() string               { return enumName(faaModeNames, int(m)) }
func (m FAAMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

package nmea

import (
	"bytes"
	"fmt"
	"strconv"
)

// Time is a UTC time of day. Only the lexical form is checked; 25:61:99 decodes.
type Time struct {
	Hour   uint8   `json:"hour"`
	Minute uint8   `json:"minute"`
	Second float64 `json:"second"`
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%06.3f", t.Hour, t.Minute, t.Second)
}

// Date is a ddmmyy calendar date. Year keeps its two wire digits.
type Date struct {
	Day   uint8 `json:"day"`
	Month uint8 `json:"month"`
	Year  uint8 `json:"year"`
}

func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%02d", d.Day, d.Month, d.Year)
}

// Position holds unsigned decimal degrees plus hemispheres.
type Position struct {
	Lat    float64            `json:"lat"`
	LatDir LatitudeDirection  `json:"lat_dir"`
	Lon    float64            `json:"lon"`
	LonDir LongitudeDirection `json:"lon_dir"`
}

// Signed returns latitude and longitude with south and west negative.
func (p Position) Signed() (lat, lon float64) {
	lat, lon = p.Lat, p.Lon
	if p.LatDir == South {
		lat = -lat
	}
	if p.LonDir == West {
		lon = -lon
	}
	return lat, lon
}

// Text is a variable-length field borrowed from the decoded sentence buffer.
// Copy it (String) if it must outlive that buffer.
type Text []byte

func (t Text) String() string               { return string(t) }
func (t Text) MarshalText() ([]byte, error) { return t, nil }

// scanner walks the comma separated data span of a frame. token never
// consumes the delimiter; decoders consume separators explicitly so literal
// unit tags like ",T," are checked byte for byte. Offsets are relative to
// the start of the data span.
//
// The first failure sticks: later calls are no-ops and return zero values,
// so a decoder reads as a straight list of fields and checks err once.
type scanner struct {
	data []byte
	pos  int
	err  error
}

func (s *scanner) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *scanner) token() ([]byte, int) {
	if s.err != nil {
		return nil, s.pos
	}
	start := s.pos
	if i := bytes.IndexByte(s.data[start:], ','); i >= 0 {
		s.pos = start + i
	} else {
		s.pos = len(s.data)
	}
	return s.data[start:s.pos], start
}

// rest consumes everything left, commas included.
func (s *scanner) rest() []byte {
	if s.err != nil {
		return nil
	}
	b := s.data[s.pos:]
	s.pos = len(s.data)
	return b
}

func (s *scanner) expect(lit string) {
	if s.err != nil {
		return
	}
	end := s.pos + len(lit)
	if end > len(s.data) || string(s.data[s.pos:end]) != lit {
		s.fail(&DataError{Offset: s.pos, Want: strconv.Quote(lit)})
		return
	}
	s.pos = end
}

func (s *scanner) sep() { s.expect(",") }

func (s *scanner) atEnd() bool { return s.pos == len(s.data) }

func (s *scanner) end() {
	if s.err == nil && !s.atEnd() {
		s.fail(&DataError{Offset: s.pos, Want: "end of data"})
	}
}

// trailing reports whether an optional trailing field follows, consuming its
// separator. It is used for fields appended by later NMEA revisions.
func (s *scanner) trailing() bool {
	if s.err != nil || s.atEnd() {
		return false
	}
	s.sep()
	return s.err == nil
}

func (s *scanner) optFloat() *float64 {
	tok, off := s.token()
	if len(tok) == 0 {
		return nil
	}
	v, err := parseFloat(tok, off, true)
	if err != nil {
		s.fail(err)
		return nil
	}
	return &v
}

// optFloatOrDash is optFloat except that a lone "-" also means absent.
// Receivers send it for values they cannot compute, such as geoid separation.
func (s *scanner) optFloatOrDash() *float64 {
	tok, off := s.token()
	if len(tok) == 0 || (len(tok) == 1 && tok[0] == '-') {
		return nil
	}
	v, err := parseFloat(tok, off, true)
	if err != nil {
		s.fail(err)
		return nil
	}
	return &v
}

func (s *scanner) optUint8() *uint8 {
	tok, off := s.token()
	if len(tok) == 0 {
		return nil
	}
	v, err := parseUint(tok, off, 8)
	if err != nil {
		s.fail(err)
		return nil
	}
	u := uint8(v)
	return &u
}

func (s *scanner) optUint16() *uint16 {
	tok, off := s.token()
	if len(tok) == 0 {
		return nil
	}
	v, err := parseUint(tok, off, 16)
	if err != nil {
		s.fail(err)
		return nil
	}
	u := uint16(v)
	return &u
}

func (s *scanner) reqUint8() uint8 {
	tok, off := s.token()
	if s.err != nil {
		return 0
	}
	v, err := parseUint(tok, off, 8)
	if err != nil {
		s.fail(err)
	}
	return uint8(v)
}

func (s *scanner) optText() Text {
	tok, _ := s.token()
	if len(tok) == 0 {
		return nil
	}
	return Text(tok)
}

func (s *scanner) optRest() Text {
	b := s.rest()
	if len(b) == 0 {
		return nil
	}
	return Text(b)
}

// optTime decodes hhmmss[.sss].
func (s *scanner) optTime() *Time {
	tok, off := s.token()
	if len(tok) == 0 {
		return nil
	}
	if len(tok) < 5 || !isDigits(tok[:4]) {
		s.fail(&NumberError{Offset: off, Token: string(tok)})
		return nil
	}
	sec, err := parseFloat(tok[4:], off+4, false)
	if err != nil {
		s.fail(err)
		return nil
	}
	return &Time{
		Hour:   twoDigits(tok[0:2]),
		Minute: twoDigits(tok[2:4]),
		Second: sec,
	}
}

// optDate decodes ddmmyy.
func (s *scanner) optDate() *Date {
	tok, off := s.token()
	if len(tok) == 0 {
		return nil
	}
	if len(tok) != 6 || !isDigits(tok) {
		s.fail(&NumberError{Offset: off, Token: string(tok)})
		return nil
	}
	return &Date{
		Day:   twoDigits(tok[0:2]),
		Month: twoDigits(tok[2:4]),
		Year:  twoDigits(tok[4:6]),
	}
}

// position decodes "ddmm.mm,N,dddmm.mm,E". When all four tokens are empty
// (receivers without a fix) it returns nil; any other partial block fails on
// its first bad token.
func (s *scanner) position() *Position {
	latTok, latOff := s.token()
	s.sep()
	nsTok, _ := s.token()
	s.sep()
	lonTok, lonOff := s.token()
	s.sep()
	ewTok, _ := s.token()
	if s.err != nil {
		return nil
	}
	if len(latTok) == 0 && len(nsTok) == 0 && len(lonTok) == 0 && len(ewTok) == 0 {
		return nil
	}

	var p Position
	var err error
	if p.Lat, err = parseDegrees(latTok, latOff, 2); err != nil {
		s.fail(err)
		return nil
	}
	if p.LatDir, err = decodeLetter(nsTok, &latitudeDirections); err != nil {
		s.fail(err)
		return nil
	}
	if p.Lon, err = parseDegrees(lonTok, lonOff, 3); err != nil {
		s.fail(err)
		return nil
	}
	if p.LonDir, err = decodeLetter(ewTok, &longitudeDirections); err != nil {
		s.fail(err)
		return nil
	}
	return &p
}

// optCode decodes an optional single-letter coded field.
func optCode[V any](s *scanner, set *codeSet[byte, V]) *V {
	tok, _ := s.token()
	if len(tok) == 0 {
		return nil
	}
	v, err := decodeLetter(tok, set)
	if err != nil {
		s.fail(err)
		return nil
	}
	return &v
}

// optNumericCode decodes an optional small-integer coded field. A token that
// is not a number is a NumberError; a number outside the table a StatusError.
func optNumericCode[V any](s *scanner, set *codeSet[uint8, V]) *V {
	n := s.optUint8()
	if n == nil {
		return nil
	}
	v, err := set.decode(*n)
	if err != nil {
		s.fail(err)
		return nil
	}
	return &v
}

// optMode decodes a trailing FAA mode indicator when one is present.
func (s *scanner) optMode() *FAAMode {
	if !s.trailing() {
		return nil
	}
	return optCode(s, &faaModes)
}

func decodeLetter[V any](tok []byte, set *codeSet[byte, V]) (V, error) {
	if len(tok) != 1 {
		var zero V
		return zero, &StatusError{Field: set.field}
	}
	return set.decode(tok[0])
}

// parseDegrees splits a fixed-width degree prefix from the minutes and
// returns degrees + minutes/60.
func parseDegrees(tok []byte, off, width int) (float64, error) {
	if len(tok) <= width || !isDigits(tok[:width]) {
		return 0, &NumberError{Offset: off, Token: string(tok)}
	}
	deg, err := strconv.ParseUint(string(tok[:width]), 10, 16)
	if err != nil {
		return 0, &NumberError{Offset: off, Token: string(tok)}
	}
	minutes, err := parseFloat(tok[width:], off+width, false)
	if err != nil {
		return 0, err
	}
	return float64(deg) + minutes/60, nil
}

// parseFloat accepts an optional sign (when signed), digits and at most one
// '.', with at least one digit.
func parseFloat(tok []byte, off int, signed bool) (float64, error) {
	if !isDecimal(tok, signed) {
		return 0, &NumberError{Offset: off, Token: string(tok)}
	}
	v, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		return 0, &NumberError{Offset: off, Token: string(tok)}
	}
	return v, nil
}

func parseUint(tok []byte, off, bits int) (uint64, error) {
	if len(tok) == 0 || !isDigits(tok) {
		return 0, &NumberError{Offset: off, Token: string(tok)}
	}
	v, err := strconv.ParseUint(string(tok), 10, bits)
	if err != nil {
		return 0, &NumberError{Offset: off, Token: string(tok)}
	}
	return v, nil
}

func isDecimal(tok []byte, signed bool) bool {
	i := 0
	if signed && len(tok) > 0 && (tok[0] == '-' || tok[0] == '+') {
		i++
	}
	digits, dot := 0, false
	for ; i < len(tok); i++ {
		switch c := tok[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

func isDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func twoDigits(b []byte) uint8 {
	return (b[0]-'0')*10 + (b[1] - '0')
}

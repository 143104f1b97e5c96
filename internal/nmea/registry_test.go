package nmea

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupType(t *testing.T) {
	st, ok := LookupType([]byte("GGA"))
	require.True(t, ok)
	require.Equal(t, TypeGGA, st)
	require.Equal(t, "GGA", st.String())
	require.Equal(t, "Global positioning system fix data", st.Description())

	for _, bad := range []string{"", "GG", "GGAX", "gga", "ZZZ"} {
		_, ok := LookupType([]byte(bad))
		require.False(t, ok, "mnemonic=%q", bad)
	}
}

func TestTypesRoundTrip(t *testing.T) {
	types := Types()
	require.Len(t, types, int(numSentenceTypes)-1)
	seen := map[string]bool{}
	for _, st := range types {
		name := st.String()
		require.Len(t, name, 3)
		require.False(t, seen[name], "duplicate %s", name)
		seen[name] = true

		got, ok := LookupType([]byte(name))
		require.True(t, ok)
		require.Equal(t, st, got)
		require.NotEmpty(t, st.Description())
	}
	require.True(t, seen["TRF"])
	require.Equal(t, "???", SentenceType(250).String())
}

func TestImplementedTypes(t *testing.T) {
	for _, st := range []SentenceType{TypeBOD, TypeBWC, TypeGBS, TypeGGA, TypeGLL, TypeGSA, TypeGSV, TypeHDT, TypeRMA, TypeRMB, TypeRMC, TypeSTN, TypeVBW, TypeVTG, TypeWPL} {
		require.True(t, Implemented(st), "type=%s", st)
	}
	require.Equal(t, gnsModeLists, Implemented(TypeGNS))
	require.False(t, Implemented(TypeZDA))
}

func TestSentenceTypeMarshalText(t *testing.T) {
	b, err := TypeVTG.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "VTG", string(b))
}

func TestCodeSets(t *testing.T) {
	m, err := routeModes.decode('c')
	require.NoError(t, err)
	require.Equal(t, RouteComplete, m)
	m, err = routeModes.decode('w')
	require.NoError(t, err)
	require.Equal(t, RouteWorking, m)

	_, err = routeModes.decode('C')
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, FieldRouteMode, serr.Field)
	require.Equal(t, "nmea: invalid route mode", err.Error())

	q, err := fixQualities.decode(8)
	require.NoError(t, err)
	require.Equal(t, FixSimulation, q)
	require.Equal(t, "simulation", q.String())
	_, err = fixQualities.decode(9)
	require.Error(t, err)

	require.Equal(t, "invalid", RMStatus(0).String())
	require.Equal(t, "invalid", FAAMode(42).String())
	require.Equal(t, "invalid", FixQuality(9).String())
	require.Equal(t, "not available", FixNotAvailable.String())
}

func TestDecodeLetterRejectsLongTokens(t *testing.T) {
	_, err := decodeLetter([]byte("AV"), &rmStatuses)
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, FieldRMStatus, serr.Field)
}

func TestErrorKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("other"), ""},
		{&LengthError{Length: 200}, "length"},
		{&ChecksumError{Parsed: 1, Calculated: 2}, "checksum"},
		{&HexError{B0: 'x', B1: 'y'}, "hex"},
		{&UnknownTypeError{Prefix: []byte("$GPZZZ,")}, "unknown_type"},
		{&NotImplementedError{Type: TypeRTE}, "not_implemented"},
		{&StatusError{Field: FieldFAAMode}, "status"},
		{&NumberError{Offset: 3, Token: "x"}, "number"},
		{&DataError{Offset: 3, Want: "','"}, "data"},
		{fmt.Errorf("wrapped: %w", &ChecksumError{}), "checksum"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ErrorKind(tc.err), "err=%v", tc.err)
	}
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "nmea: checksum mismatch parsed=1F calculated=04", (&ChecksumError{Parsed: 0x1F, Calculated: 0x04}).Error())
	require.Equal(t, "nmea: no decoder for RTE", (&NotImplementedError{Type: TypeRTE}).Error())
	require.ErrorIs(t, &NumberError{}, ErrGeneralParsing)
	require.ErrorIs(t, &DataError{}, ErrDataParsing)
}

package nmea

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFrame_GLLReference(t *testing.T) {
	f, err := ParseFrame([]byte("$GPGLL,4916.45,N,12311.12,W,225444,A,*1D\r\n"))
	require.NoError(t, err)
	require.Equal(t, TypeGLL, f.Type)
	require.Equal(t, "$GPGLL,", string(f.Prefix))
	require.Equal(t, "4916.45,N,12311.12,W,225444,A,", string(f.Data))
	require.Equal(t, byte(0x1D), f.Checksum)
	require.Equal(t, "GP", f.Talker())
}

func TestParseFrame_Terminators(t *testing.T) {
	base := bytes.TrimRight(sentence("GPHDT,123.45,T"), "\r\n")
	for _, term := range []string{"", "\n", "\r", "\r\n"} {
		f, err := ParseFrame(append(append([]byte{}, base...), term...))
		require.NoError(t, err, "term=%q", term)
		require.Equal(t, TypeHDT, f.Type)
		require.Equal(t, "123.45,T", string(f.Data))
	}
}

func TestParseFrame_LowercaseHex(t *testing.T) {
	_, err := ParseFrame([]byte("$GPGLL,4916.45,N,12311.12,W,225444,A,*1d"))
	require.NoError(t, err)
}

func TestParseFrame_AISDelimiter(t *testing.T) {
	raw := []byte("!" + string(sentence("GPHDT,1.0,T")[1:]))
	f, err := ParseFrame(raw)
	require.NoError(t, err)
	require.Equal(t, TypeHDT, f.Type)
}

func TestParseFrame_TooLong(t *testing.T) {
	body := "GPGLL," + string(bytes.Repeat([]byte("1"), 96))
	raw := []byte("$" + body + "*00")
	require.Len(t, raw, 106)

	_, err := ParseFrame(raw)
	var lerr *LengthError
	require.True(t, errors.As(err, &lerr), "err=%v", err)
	require.Equal(t, 106, lerr.Length)
}

func TestParseFrame_LengthLimitIncludesTerminator(t *testing.T) {
	// 100 bytes plus CRLF is 102 and must pass; one more byte must not.
	body := "GPHDT," + string(bytes.Repeat([]byte("1"), 88)) + ",T"
	raw := sentence(body)
	require.Len(t, raw, 102)
	_, err := ParseFrame(raw)
	require.NoError(t, err)

	_, err = ParseFrame(append(raw, '\n'))
	var lerr *LengthError
	require.True(t, errors.As(err, &lerr))
	require.Equal(t, 103, lerr.Length)
}

func TestParseFrame_ChecksumMismatch(t *testing.T) {
	raw := sentence("GPHDT,123.45,T")
	f, err := ParseFrame(raw)
	require.NoError(t, err)

	mutated := bytes.Replace(raw, []byte("123.45"), []byte("123.46"), 1)
	_, err = ParseFrame(mutated)
	var cerr *ChecksumError
	require.True(t, errors.As(err, &cerr), "err=%v", err)
	require.Equal(t, f.Checksum, cerr.Parsed)
	require.Equal(t, xorChecksum([]byte("GPHDT,123.46,T")), cerr.Calculated)
}

func TestParseFrame_AlteredChecksumDigits(t *testing.T) {
	raw := sentence("GPHDT,123.45,T")
	star := bytes.IndexByte(raw, '*')
	altered := append([]byte{}, raw...)
	if altered[star+1] == '0' {
		altered[star+1] = '1'
	} else {
		altered[star+1] = '0'
	}
	_, err := ParseFrame(altered)
	var cerr *ChecksumError
	require.True(t, errors.As(err, &cerr), "err=%v", err)
}

func TestParseFrame_HexError(t *testing.T) {
	_, err := ParseFrame([]byte("$GPHDT,123.45,T*ZQ\r\n"))
	var herr *HexError
	require.True(t, errors.As(err, &herr), "err=%v", err)
	require.Equal(t, byte('Z'), herr.B0)
	require.Equal(t, byte('Q'), herr.B1)
}

func TestParseFrame_UnknownType(t *testing.T) {
	_, err := ParseFrame(sentence("GPZZZ,1,2,3"))
	var uerr *UnknownTypeError
	require.True(t, errors.As(err, &uerr), "err=%v", err)
	require.Equal(t, "$GPZZZ,", string(uerr.Prefix))
}

func TestParseFrame_Structural(t *testing.T) {
	cases := map[string][]byte{
		"short":        []byte("$GPHDT*00"),
		"no delimiter": []byte("GPHDT,123.45,T*00\r\n"),
		"no comma":     []byte("$GPHDTX123.45,T*00"),
		"no star":      []byte("$GPHDT,123.45,T,00"),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFrame(raw)
			require.ErrorIs(t, err, ErrDataParsing)
		})
	}
}

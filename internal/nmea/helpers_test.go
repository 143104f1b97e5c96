package nmea

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// sentence frames body ("GPGGA,...") with a correct checksum and CRLF.
func sentence(body string) []byte {
	return []byte("$" + body + "*" + fmt.Sprintf("%02X", xorChecksum([]byte(body))) + "\r\n")
}

func decodeAs[T Sentence](t *testing.T, raw []byte) T {
	t.Helper()
	s, err := Decode(raw)
	require.NoError(t, err, "raw=%q", raw)
	v, ok := s.(T)
	require.True(t, ok, "got %T", s)
	return v
}

func requireFloat(t *testing.T, want float64, got *float64) {
	t.Helper()
	require.NotNil(t, got)
	require.InDelta(t, want, *got, 1e-9)
}

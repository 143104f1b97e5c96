package nmea

import (
	"strings"
	"testing"

	refnmea "github.com/adrianmo/go-nmea"
	"github.com/stretchr/testify/require"
)

// Decoded values must agree with an independent decoder on real receiver output.
func TestCrossCheckRMC(t *testing.T) {
	raws := []string{
		string(sentence("GPRMC,225446,A,4916.45,N,12311.12,W,000.5,054.7,191194,020.3,E")),
		string(sentence("GPRMC,081836,A,3751.65,S,14507.36,E,000.0,360.0,130998,011.3,E")),
	}
	for _, raw := range raws {
		ours := decodeAs[RMC](t, []byte(raw))

		ref, err := refnmea.Parse(strings.TrimSpace(raw))
		require.NoError(t, err)
		m, ok := ref.(refnmea.RMC)
		require.True(t, ok)

		lat, lon := ours.Position.Signed()
		require.InDelta(t, m.Latitude, lat, 1e-6, "raw=%q", raw)
		require.InDelta(t, m.Longitude, lon, 1e-6, "raw=%q", raw)
		require.InDelta(t, m.Speed, *ours.SpeedKnots, 1e-9)
		require.InDelta(t, m.Course, *ours.Course, 1e-9)
		require.EqualValues(t, "A", m.Validity)
	}
}

func TestCrossCheckGGA(t *testing.T) {
	raw := string(sentence("GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"))
	ours := decodeAs[GGA](t, []byte(raw))

	ref, err := refnmea.Parse(strings.TrimSpace(raw))
	require.NoError(t, err)
	m, ok := ref.(refnmea.GGA)
	require.True(t, ok)

	lat, lon := ours.Position.Signed()
	require.InDelta(t, m.Latitude, lat, 1e-6)
	require.InDelta(t, m.Longitude, lon, 1e-6)
	require.EqualValues(t, m.NumSatellites, *ours.Satellites)
	require.InDelta(t, m.HDOP, *ours.HDOP, 1e-9)
	require.InDelta(t, m.Altitude, *ours.Altitude, 1e-9)
	require.InDelta(t, m.Separation, *ours.GeoidSeparation, 1e-9)
}

func TestCrossCheckVTG(t *testing.T) {
	raw := string(sentence("GPVTG,123.4,T,121.2,M,5.5,N,10.2,K"))
	ours := decodeAs[VTG](t, []byte(raw))

	ref, err := refnmea.Parse(strings.TrimSpace(raw))
	require.NoError(t, err)
	m, ok := ref.(refnmea.VTG)
	require.True(t, ok)

	require.InDelta(t, m.TrueTrack, *ours.BearingTrue, 1e-9)
	require.InDelta(t, m.MagneticTrack, *ours.BearingMagnetic, 1e-9)
	require.InDelta(t, m.GroundSpeedKnots, *ours.SpeedKnots, 1e-9)
	require.InDelta(t, m.GroundSpeedKPH, *ours.SpeedKmh, 1e-9)
}

//go:build nmea_nolists

package nmea

// Without list support GNS has no decoder and reports NotImplementedError.
const gnsModeLists = false

func (s *scanner) modeList() []FAAMode {
	s.token()
	return nil
}

//go:build !nmea_nolists

package nmea

const gnsModeLists = true

// modeList decodes a run of mode letters with no separators, e.g. "AAN".
func (s *scanner) modeList() []FAAMode {
	tok, _ := s.token()
	if len(tok) == 0 {
		return nil
	}
	modes := make([]FAAMode, 0, len(tok))
	for _, c := range tok {
		m, err := faaModes.decode(c)
		if err != nil {
			s.fail(err)
			return nil
		}
		modes = append(modes, m)
	}
	return modes
}

// Package nmea decodes NMEA 0183 sentences into typed records.
//
// A sentence is "$" or "!", a 2-letter talker, a 3-letter mnemonic, a comma,
// the comma separated fields, "*" and a 2-digit hex checksum, optionally
// followed by CR/LF; at most 102 bytes in total. ParseFrame checks the framing
// and the checksum, Decode goes on to decode the fields:
//
//	s, err := nmea.Decode(line)
//	if err != nil {
//		log.Printf("nmea: kind=%s err=%v", nmea.ErrorKind(err), err)
//		return
//	}
//	switch v := s.(type) {
//	case nmea.RMC:
//		...
//	}
//
// Empty fields decode as nil. A non-empty field that does not match its
// grammar fails the whole sentence. Text fields point into the input buffer.
//
// Every function in this package is safe for concurrent use; there is no
// shared mutable state.
package nmea

package nmea

import "encoding/hex"

// prefixLen covers the start delimiter, 2-letter talker, 3-letter mnemonic and the comma.
const prefixLen = 7

// Frame is a checksum-verified view over one raw sentence.
//
// Frame never copies: Prefix and Data are sub-slices of the buffer passed to
// ParseFrame and are only valid while that buffer is.
type Frame struct {
	Type     SentenceType
	Prefix   []byte // "$GPGGA,"
	Data     []byte // fields between the prefix and '*'
	Checksum byte
}

// Talker returns the 2-letter talker id, e.g. "GP".
func (f Frame) Talker() string {
	if len(f.Prefix) < 3 {
		return ""
	}
	return string(f.Prefix[1:3])
}

// ParseFrame splits raw into prefix, data and checksum, verifies the checksum
// and resolves the mnemonic. raw may carry a trailing "\r\n", "\n" or "\r".
func ParseFrame(raw []byte) (Frame, error) {
	if len(raw) > MaxSentenceLength {
		return Frame{}, &LengthError{Length: len(raw)}
	}

	line := trimTerminator(raw)
	if len(line) < prefixLen+3 {
		return Frame{}, &DataError{Offset: len(line), Want: "complete sentence"}
	}
	if line[0] != '$' && line[0] != '!' {
		return Frame{}, &DataError{Offset: 0, Want: "'$' or '!'"}
	}
	if line[prefixLen-1] != ',' {
		return Frame{}, &DataError{Offset: prefixLen - 1, Want: "','"}
	}

	star := len(line) - 3
	if line[star] != '*' {
		return Frame{}, &DataError{Offset: star, Want: "'*'"}
	}

	var ck [1]byte
	if _, err := hex.Decode(ck[:], line[star+1:]); err != nil {
		return Frame{}, &HexError{B0: line[star+1], B1: line[star+2]}
	}
	parsed := ck[0]

	calculated := xorChecksum(line[1:star])
	if calculated != parsed {
		return Frame{}, &ChecksumError{Parsed: parsed, Calculated: calculated}
	}

	prefix := line[:prefixLen]
	t, found := LookupType(prefix[3:6])
	if !found {
		return Frame{}, &UnknownTypeError{Prefix: prefix}
	}

	return Frame{
		Type:     t,
		Prefix:   prefix,
		Data:     line[prefixLen:star],
		Checksum: parsed,
	}, nil
}

func trimTerminator(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

func xorChecksum(b []byte) byte {
	var cs byte
	for _, c := range b {
		cs ^= c
	}
	return cs
}

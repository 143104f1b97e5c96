package nmea

import (
	"errors"
	"fmt"
)

// MaxSentenceLength is the longest accepted sentence, line terminator included.
const MaxSentenceLength = 102

var (
	// ErrGeneralParsing is wrapped by every NumberError.
	ErrGeneralParsing = errors.New("nmea: malformed numeric field")
	// ErrDataParsing is wrapped by every DataError.
	ErrDataParsing = errors.New("nmea: malformed sentence data")
)

// LengthError reports a sentence longer than MaxSentenceLength.
type LengthError struct {
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("nmea: sentence length %d exceeds %d", e.Length, MaxSentenceLength)
}

// ChecksumError reports a mismatch between the transmitted and the computed checksum.
type ChecksumError struct {
	Parsed     byte
	Calculated byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("nmea: checksum mismatch parsed=%02X calculated=%02X", e.Parsed, e.Calculated)
}

// HexError reports a checksum field that is not two hex digits.
type HexError struct {
	B0, B1 byte
}

func (e *HexError) Error() string {
	return fmt.Sprintf("nmea: checksum %q is not hex", []byte{e.B0, e.B1})
}

// UnknownTypeError reports a mnemonic missing from the registry.
// Prefix borrows the caller's buffer.
type UnknownTypeError struct {
	Prefix []byte
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("nmea: unknown sentence type in prefix %q", e.Prefix)
}

// NotImplementedError reports a registered sentence type without a decoder.
type NotImplementedError struct {
	Type SentenceType
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("nmea: no decoder for %s", e.Type)
}

// StatusError reports a coded field whose token is not in the field's table.
type StatusError struct {
	Field CodedField
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nmea: invalid %s", e.Field)
}

// NumberError reports a non-empty numeric token that failed to parse.
type NumberError struct {
	Offset int
	Token  string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("nmea: malformed number %q at offset %d", e.Token, e.Offset)
}

func (e *NumberError) Unwrap() error { return ErrGeneralParsing }

// DataError reports a literal or structural mismatch inside a sentence.
type DataError struct {
	Offset int
	Want   string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("nmea: malformed data at offset %d: want %s", e.Offset, e.Want)
}

func (e *DataError) Unwrap() error { return ErrDataParsing }

// ErrorKind returns a stable short label for any error returned by this
// package, or "" for foreign errors.
func ErrorKind(err error) string {
	var (
		lengthErr   *LengthError
		checksumErr *ChecksumError
		hexErr      *HexError
		unknownErr  *UnknownTypeError
		notImplErr  *NotImplementedError
		statusErr   *StatusError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &lengthErr):
		return "length"
	case errors.As(err, &checksumErr):
		return "checksum"
	case errors.As(err, &hexErr):
		return "hex"
	case errors.As(err, &unknownErr):
		return "unknown_type"
	case errors.As(err, &notImplErr):
		return "not_implemented"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, ErrGeneralParsing):
		return "number"
	case errors.Is(err, ErrDataParsing):
		return "data"
	default:
		return ""
	}
}

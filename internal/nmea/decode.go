package nmea

// Sentence is a decoded record. It is implemented only by the record types
// of this package; type switch on the concrete value to read fields.
type Sentence interface {
	Type() SentenceType
	sentence()
}

type decodeFunc func(s *scanner) Sentence

// decoders holds one entry per implemented sentence type. Registered types
// missing here decode to NotImplementedError.
var decoders = map[SentenceType]decodeFunc{
	TypeBOD: func(s *scanner) Sentence { return decodeBOD(s) },
	TypeBWC: func(s *scanner) Sentence { return decodeBWC(s) },
	TypeGBS: func(s *scanner) Sentence { return decodeGBS(s) },
	TypeGGA: func(s *scanner) Sentence { return decodeGGA(s) },
	TypeGLL: func(s *scanner) Sentence { return decodeGLL(s) },
	TypeGSA: func(s *scanner) Sentence { return decodeGSA(s) },
	TypeGSV: func(s *scanner) Sentence { return decodeGSV(s) },
	TypeHDT: func(s *scanner) Sentence { return decodeHDT(s) },
	TypeRMA: func(s *scanner) Sentence { return decodeRMA(s) },
	TypeRMB: func(s *scanner) Sentence { return decodeRMB(s) },
	TypeRMC: func(s *scanner) Sentence { return decodeRMC(s) },
	TypeSTN: func(s *scanner) Sentence { return decodeSTN(s) },
	TypeVBW: func(s *scanner) Sentence { return decodeVBW(s) },
	TypeVTG: func(s *scanner) Sentence { return decodeVTG(s) },
	TypeWPL: func(s *scanner) Sentence { return decodeWPL(s) },
}

func init() {
	if gnsModeLists {
		decoders[TypeGNS] = func(s *scanner) Sentence { return decodeGNS(s) }
	}
}

// Decode validates one raw sentence and decodes it into its record.
//
// Text fields of the returned record borrow raw. On error the record is nil;
// decoding never yields a partially filled record.
func Decode(raw []byte) (Sentence, error) {
	f, err := ParseFrame(raw)
	if err != nil {
		return nil, err
	}
	return DecodeFrame(f)
}

// DecodeFrame decodes an already validated frame.
func DecodeFrame(f Frame) (Sentence, error) {
	dec, ok := decoders[f.Type]
	if !ok {
		return nil, &NotImplementedError{Type: f.Type}
	}
	s := &scanner{data: f.Data}
	out := dec(s)
	if s.err != nil {
		return nil, s.err
	}
	return out, nil
}

// Implemented reports whether t has a decoder in this build.
func Implemented(t SentenceType) bool {
	_, ok := decoders[t]
	return ok
}

package nmea

// SentenceType identifies a registered NMEA 0183 sentence kind.
type SentenceType uint8

const (
	TypeUnknown SentenceType = iota
	TypeAAM
	TypeABK
	TypeACK
	TypeALM
	TypeAPA
	TypeAPB
	TypeBEC
	TypeBOD
	TypeBWC
	TypeBWR
	TypeBWW
	TypeDBK
	TypeDBS
	TypeDBT
	TypeDCN
	TypeDPT
	TypeDTM
	TypeFSI
	TypeGBS
	TypeGGA
	TypeGLC
	TypeGLL
	TypeGNS
	TypeGRS
	TypeGST
	TypeGSA
	TypeGSV
	TypeGTD
	TypeGXA
	TypeHDG
	TypeHDM
	TypeHDT
	TypeHSC
	TypeLCD
	TypeMSK
	TypeMTW
	TypeMWV
	TypeOLN
	TypeOSD
	TypeROO
	TypeRMA
	TypeRMB
	TypeRMC
	TypeROT
	TypeRPM
	TypeRSA
	TypeRSD
	TypeRTE
	TypeSFI
	TypeSTN
	TypeTLL
	TypeTRF
	TypeTTM
	TypeVBW
	TypeVDR
	TypeVHW
	TypeVLW
	TypeVPW
	TypeVTG
	TypeVWR
	TypeWCV
	TypeWNC
	TypeWPL
	TypeXDR
	TypeXTE
	TypeXTR
	TypeZDA
	TypeZFO
	TypeZTG

	numSentenceTypes
)

type typeInfo struct {
	mnemonic    string
	description string
}

var typeTable = [numSentenceTypes]typeInfo{
	TypeUnknown: {"???", "unknown"},
	TypeAAM:     {"AAM", "Waypoint arrival alarm"},
	TypeABK:     {"ABK", "AIS addressed and binary broadcast acknowledgement"},
	TypeACK:     {"ACK", "Acknowledge alarm"},
	TypeALM:     {"ALM", "GPS almanac data"},
	TypeAPA:     {"APA", "Autopilot sentence A"},
	TypeAPB:     {"APB", "Autopilot sentence B"},
	TypeBEC:     {"BEC", "Bearing and distance to waypoint, dead reckoning"},
	TypeBOD:     {"BOD", "Bearing origin to destination"},
	TypeBWC:     {"BWC", "Bearing and distance to waypoint, great circle"},
	TypeBWR:     {"BWR", "Bearing and distance to waypoint, rhumb line"},
	TypeBWW:     {"BWW", "Bearing waypoint to waypoint"},
	TypeDBK:     {"DBK", "Depth below keel"},
	TypeDBS:     {"DBS", "Depth below surface"},
	TypeDBT:     {"DBT", "Depth below transducer"},
	TypeDCN:     {"DCN", "Decca position"},
	TypeDPT:     {"DPT", "Depth of water"},
	TypeDTM:     {"DTM", "Datum reference"},
	TypeFSI:     {"FSI", "Frequency set information"},
	TypeGBS:     {"GBS", "GNSS satellite fault detection"},
	TypeGGA:     {"GGA", "Global positioning system fix data"},
	TypeGLC:     {"GLC", "Geographic position, Loran-C"},
	TypeGLL:     {"GLL", "Geographic position, latitude/longitude"},
	TypeGNS:     {"GNS", "GNSS fix data"},
	TypeGRS:     {"GRS", "GNSS range residuals"},
	TypeGST:     {"GST", "GNSS pseudorange noise statistics"},
	TypeGSA:     {"GSA", "GNSS DOP and active satellites"},
	TypeGSV:     {"GSV", "GNSS satellites in view"},
	TypeGTD:     {"GTD", "Geographic location in time differences"},
	TypeGXA:     {"GXA", "TRANSIT position"},
	TypeHDG:     {"HDG", "Heading, deviation and variation"},
	TypeHDM:     {"HDM", "Heading, magnetic"},
	TypeHDT:     {"HDT", "Heading, true"},
	TypeHSC:     {"HSC", "Heading steering command"},
	TypeLCD:     {"LCD", "Loran-C signal data"},
	TypeMSK:     {"MSK", "Control for a beacon receiver"},
	TypeMTW:     {"MTW", "Mean temperature of water"},
	TypeMWV:     {"MWV", "Wind speed and angle"},
	TypeOLN:     {"OLN", "Omega lane numbers"},
	TypeOSD:     {"OSD", "Own ship data"},
	TypeROO:     {"ROO", "Waypoints in active route"},
	TypeRMA:     {"RMA", "Recommended minimum specific Loran-C data"},
	TypeRMB:     {"RMB", "Recommended minimum navigation information"},
	TypeRMC:     {"RMC", "Recommended minimum specific GNSS data"},
	TypeROT:     {"ROT", "Rate of turn"},
	TypeRPM:     {"RPM", "Revolutions"},
	TypeRSA:     {"RSA", "Rudder sensor angle"},
	TypeRSD:     {"RSD", "Radar system data"},
	TypeRTE:     {"RTE", "Routes"},
	TypeSFI:     {"SFI", "Scanning frequency information"},
	TypeSTN:     {"STN", "Multiple data ID"},
	TypeTLL:     {"TLL", "Target latitude and longitude"},
	TypeTRF:     {"TRF", "TRANSIT fix data"},
	TypeTTM:     {"TTM", "Tracked target message"},
	TypeVBW:     {"VBW", "Dual ground/water speed"},
	TypeVDR:     {"VDR", "Set and drift"},
	TypeVHW:     {"VHW", "Water speed and heading"},
	TypeVLW:     {"VLW", "Distance traveled through water"},
	TypeVPW:     {"VPW", "Speed measured parallel to wind"},
	TypeVTG:     {"VTG", "Track made good and ground speed"},
	TypeVWR:     {"VWR", "Relative wind speed and angle"},
	TypeWCV:     {"WCV", "Waypoint closure velocity"},
	TypeWNC:     {"WNC", "Distance waypoint to waypoint"},
	TypeWPL:     {"WPL", "Waypoint location"},
	TypeXDR:     {"XDR", "Transducer measurement"},
	TypeXTE:     {"XTE", "Cross-track error, measured"},
	TypeXTR:     {"XTR", "Cross-track error, dead reckoning"},
	TypeZDA:     {"ZDA", "Time and date"},
	TypeZFO:     {"ZFO", "UTC and time from origin waypoint"},
	TypeZTG:     {"ZTG", "UTC and time to destination waypoint"},
}

var typesByMnemonic = func() map[[3]byte]SentenceType {
	m := make(map[[3]byte]SentenceType, numSentenceTypes)
	for t := TypeUnknown + 1; t < numSentenceTypes; t++ {
		var k [3]byte
		copy(k[:], typeTable[t].mnemonic)
		m[k] = t
	}
	return m
}()

// LookupType resolves a 3-byte mnemonic. Anything else, including
// mnemonics of other lengths, is reported as not found.
func LookupType(mnemonic []byte) (SentenceType, bool) {
	if len(mnemonic) != 3 {
		return TypeUnknown, false
	}
	t, ok := typesByMnemonic[[3]byte{mnemonic[0], mnemonic[1], mnemonic[2]}]
	return t, ok
}

// String returns the 3-letter mnemonic.
func (t SentenceType) String() string {
	if t >= numSentenceTypes {
		return typeTable[TypeUnknown].mnemonic
	}
	return typeTable[t].mnemonic
}

// Description returns a short human readable name for the sentence kind.
func (t SentenceType) Description() string {
	if t >= numSentenceTypes {
		return typeTable[TypeUnknown].description
	}
	return typeTable[t].description
}

// MarshalText renders the mnemonic.
func (t SentenceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Types returns every registered sentence type in registry order.
func Types() []SentenceType {
	out := make([]SentenceType, 0, numSentenceTypes-1)
	for t := TypeUnknown + 1; t < numSentenceTypes; t++ {
		out = append(out, t)
	}
	return out
}

package uview

import "fmt"

// ruleKind selects how a leem data record following a tag is decoded.
type ruleKind int

const (
	rUnknown ruleKind = iota
	rEnd
	rStandard // name+unit digit, NUL, float32
	rExposure // float32 seconds, averaging byte, spare byte
	rGauge    // label, NUL, unit, NUL, float32
	rText     // NUL-terminated string
	rFloat    // float32
	rFloatPair
	rState // state byte
	rFieldOfView
)

func (k ruleKind) String() string {
	switch k {
	case rEnd:
		return "end"
	case rStandard:
		return "standard"
	case rExposure:
		return "exposure"
	case rGauge:
		return "gauge"
	case rText:
		return "text"
	case rFloat:
		return "float"
	case rFloatPair:
		return "float pair"
	case rState:
		return "state"
	case rFieldOfView:
		return "field of view"
	default:
		return "unknown"
	}
}

// rule is the decode rule of one tag. Names and unit apply only to the
// fixed-name kinds.
type rule struct {
	kind  ruleKind
	names [2]string
	unit  string
}

// rules maps every tag byte to its decode rule.
var rules = func() (r [256]rule) {
	for _, t := range standardTags {
		r[t] = rule{kind: rStandard}
	}
	for _, t := range gaugeTags {
		r[t] = rule{kind: rGauge}
	}
	r[tEnd] = rule{kind: rEnd}
	r[tCameraExposure] = rule{kind: rExposure, names: [2]string{NameCameraExposure, NameAverageImages}, unit: "s"}
	r[tImageTitle] = rule{kind: rText, names: [2]string{NameImageTitle}}
	r[tMCPScreen] = rule{kind: rFloat, names: [2]string{NameMCPScreen}, unit: "V"}
	r[tMCPChannelPlate] = rule{kind: rFloat, names: [2]string{NameMCPChannelPlate}, unit: "V"}
	r[tStageMicrometers] = rule{kind: rFloatPair, names: [2]string{NameMitutoyoX, NameMitutoyoY}, unit: "mm"}
	r[tMirrorState] = rule{kind: rState, names: [2]string{NameMirrorState}}
	r[tFieldOfView] = rule{kind: rFieldOfView, names: [2]string{NameFOV, NameFOVCalFactor}}
	r[tRotation] = rule{kind: rFloat, names: [2]string{NameRotation}, unit: "degree"}
	r[tSpinState] = rule{kind: rState, names: [2]string{NameSpin}}
	r[tThetaPhi] = rule{kind: rFloatPair, names: [2]string{NameTheta, NamePhi}, unit: "degree"}
	return
}()

// lookupRule returns the decode rule of tag.
func lookupRule(tag byte) rule {
	return rules[tag]
}

// unitOf returns the unit symbol selected by an ASCII digit.
func unitOf(digit byte) (string, bool) {
	if digit < '0' || digit > '9' {
		return "", false
	}
	return units[digit-'0'], true
}

// AveragingMode is the averaging byte of the camera exposure record.
type AveragingMode uint8

// Frames returns the number of averaged frames, or 0 for the special modes.
func (m AveragingMode) Frames() int {
	if m == avgNone || m == avgSliding {
		return 0
	}
	return int(m)
}

// IsSliding reports whether a sliding average was used.
func (m AveragingMode) IsSliding() bool { return m == avgSliding }

// String implements Stringer.
func (m AveragingMode) String() string {
	switch m {
	case avgNone:
		return "No Averaging"
	case avgSliding:
		return "Sliding Average"
	default:
		return fmt.Sprintf("%d images", uint8(m))
	}
}

package model

import (
	"fmt"
	"strings"
)

// Label is the binary verdict class. The ordinal encoding is fixed and
// shared by training and inference: Real=0, Fake=1.
type Label int

const (
	LabelReal Label = 0
	LabelFake Label = 1
)

func (l Label) String() string {
	switch l {
	case LabelFake:
		return "Fake"
	default:
		return "Real"
	}
}

// ParseLabel parses a dataset label value. Accepts "fake"/"real" in any
// case, and the ordinal forms "0"/"1".
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "real", "0":
		return LabelReal, nil
	case "fake", "1":
		return LabelFake, nil
	default:
		return LabelReal, fmt.Errorf("%w: unknown label %q", ErrMalformedInput, s)
	}
}

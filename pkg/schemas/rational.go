package schemas

import "fmt"

// Rational is an exact fraction, used for time bases, frame rates and
// aspect ratios.
type Rational struct {
	Num int `json:"num" yaml:"num"`
	Den int `json:"den" yaml:"den"`
}

// IsZero reports whether the rational is unset (zero numerator).
func (r Rational) IsZero() bool {
	return r.Num == 0
}

// Inverse returns den/num.
func (r Rational) Inverse() Rational {
	return Rational{Num: r.Den, Den: r.Num}
}

// String renders the rational as "num/den".
func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

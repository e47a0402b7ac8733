package main

// Thresholds are the maximum clipped fractions an alignment may carry
type Thresholds struct {
	BothEnd   float64
	LeftSide  float64
	RightSide float64
}

// Verdict is the result of comparing a ClipStat against Thresholds
type Verdict int

const (
	// Fail means at least one fraction is above its threshold
	Fail Verdict = iota
	// Pass means every fraction is within its threshold
	Pass
)

func (v Verdict) String() string {
	if v == Pass {
		return "pass"
	}
	return "fail"
}

// evaluate compares inclusively, a fraction equal to its threshold passes.
// Reads without any base always fail.
func evaluate(stat ClipStat, t Thresholds) Verdict {
	if stat.Length <= 0 {
		return Fail
	}

	if stat.TotalFraction() > t.BothEnd {
		return Fail
	}

	if stat.LeftFraction() > t.LeftSide {
		return Fail
	}

	if stat.RightFraction() > t.RightSide {
		return Fail
	}

	return Pass
}

// keep decides whether a record with verdict goes to the output
func keep(verdict Verdict, inverse bool) bool {
	return (verdict == Pass) != inverse
}

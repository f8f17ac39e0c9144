package registration

const (
	acnBaseWidth = 8
	acnWidth     = 9
	abnWidth     = 11

	// abnModulus is the modulus of the ABN weighting scheme.
	abnModulus = 89
	// abnPrefixOffset is added to the distance to the next multiple of the modulus.
	abnPrefixOffset = 10
	// abnSignificantScale shifts the check prefix left of the 9 significant digits.
	abnSignificantScale int64 = 1_000_000_000
)

var (
	// acnWeights are applied to the 8 base digits, most-significant first.
	acnWeights = []int64{8, 7, 6, 5, 4, 3, 2, 1}
	// abnWeights are applied to the 9 significant digits, most-significant first.
	abnWeights = []int64{3, 5, 7, 9, 11, 13, 15, 17, 19}
)

// digits returns the decimal digits of value zero-padded to width, most-significant first.
// value must be non-negative and fit in width digits.
func digits(value int64, width int) []int64 {
	out := make([]int64, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = value % 10
		value /= 10
	}
	return out
}

func weightedSum(ds, weights []int64) int64 {
	var total int64
	for i, d := range ds {
		total += d * weights[i]
	}
	return total
}

// acnCheckDigit computes the ACN check digit for an 8-digit base.
func acnCheckDigit(base int64) int64 {
	total := weightedSum(digits(base, acnBaseWidth), acnWeights)
	check := 10 - total%10
	if check == 10 {
		return 0
	}
	return check
}

// abnCheckPrefix computes the two-digit ABN check prefix for 9 significant digits.
func abnCheckPrefix(significant int64) int64 {
	return abnPrefixForTotal(weightedSum(digits(significant, acnWidth), abnWeights))
}

// abnPrefixForTotal maps a weighted checksum total onto the check prefix.
// The distance to the next multiple of 89 is in [1, 89], so for the reachable
// totals 0..891 the prefix is always in [11, 99].
func abnPrefixForTotal(total int64) int64 {
	nextMultiple := (total/abnModulus + 1) * abnModulus
	return nextMultiple - total + abnPrefixOffset
}

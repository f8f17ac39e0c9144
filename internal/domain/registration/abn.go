package registration

import (
	"encoding/json"
	"fmt"

	"github.com/erp/bizid/internal/domain/shared"
)

// MaxABN is the largest value representable as an 11-digit ABN.
const MaxABN int64 = 99_999_999_999

// ABN is an Australian Business Number: a 2-digit check prefix followed by
// 9 significant digits, which by convention are the company's ACN.
type ABN struct {
	value int64
}

// NewABN wraps an 11-digit value as an ABN.
// Only the range is checked; the prefix is taken as given.
func NewABN(value int64) (ABN, error) {
	if value < 0 || value > MaxABN {
		return ABN{}, shared.NewDomainError(shared.CodeInvalidABN,
			fmt.Sprintf("ABN must be between 0 and %d, got %d", MaxABN, value))
	}
	return ABN{value: value}, nil
}

// ABNFromACN derives the ABN whose significant digits are the given ACN.
// The ACN check digit is simply the 9th significant digit here.
func ABNFromACN(acn ACN) ABN {
	return ABN{value: abnCheckPrefix(acn.value)*abnSignificantScale + acn.value}
}

// ABNFromSignificantDigits derives an ABN from a raw 9-digit value.
// Values that do not fit in 9 digits are rejected rather than truncated.
func ABNFromSignificantDigits(significant int64) (ABN, error) {
	acn, err := NewACN(significant)
	if err != nil {
		return ABN{}, err
	}
	return ABNFromACN(acn), nil
}

// Int64 returns the ABN as a plain integer
func (b ABN) Int64() int64 {
	return b.value
}

// CheckPrefix returns the leading two digits
func (b ABN) CheckPrefix() int {
	return int(b.value / abnSignificantScale)
}

// SignificantDigits returns the trailing 9 digits
func (b ABN) SignificantDigits() int64 {
	return b.value % abnSignificantScale
}

// ACN returns the significant digits as an ACN
func (b ABN) ACN() ACN {
	return ACN{value: b.SignificantDigits()}
}

// String returns the ABN as exactly 11 zero-padded digits
func (b ABN) String() string {
	return fmt.Sprintf("%011d", b.value)
}

// Display returns the conventional "XX XXX XXX XXX" grouping
func (b ABN) Display() string {
	s := b.String()
	return s[0:2] + " " + s[2:5] + " " + s[5:8] + " " + s[8:11]
}

// Equals reports whether both ABNs hold the same value
func (b ABN) Equals(other ABN) bool {
	return b.value == other.value
}

// MarshalJSON encodes the ABN as its 11-digit string
func (b ABN) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts either the digit string or a JSON number
func (b *ABN) UnmarshalJSON(data []byte) error {
	value, err := unmarshalIdentifier(data)
	if err != nil {
		return fmt.Errorf("invalid ABN: %w", err)
	}
	parsed, err := NewABN(value)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

package registration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/erp/bizid/internal/domain/shared"
)

const (
	// MaxACN is the largest value representable as a 9-digit ACN.
	MaxACN int64 = 999_999_999
	// MaxACNBase is the largest 8-digit ACN base.
	MaxACNBase int64 = 99_999_999
)

// ACN is an Australian Company Number: an 8-digit base followed by one check digit.
// It is immutable; leading zeros are significant when rendered.
type ACN struct {
	value int64
}

// NewACN wraps a 9-digit value as an ACN.
// Only the range is checked; the check digit is taken as given.
func NewACN(value int64) (ACN, error) {
	if value < 0 || value > MaxACN {
		return ACN{}, shared.NewDomainError(shared.CodeInvalidACN,
			fmt.Sprintf("ACN must be between 0 and %d, got %d", MaxACN, value))
	}
	return ACN{value: value}, nil
}

// MustNewACN creates an ACN and panics on error
func MustNewACN(value int64) ACN {
	a, err := NewACN(value)
	if err != nil {
		panic(err)
	}
	return a
}

// ACNFromBase appends the computed check digit to an 8-digit base.
func ACNFromBase(base int64) (ACN, error) {
	if base < 0 || base > MaxACNBase {
		return ACN{}, shared.NewDomainError(shared.CodeInvalidACNBase,
			fmt.Sprintf("ACN base must be between 0 and %d, got %d", MaxACNBase, base))
	}
	return ACN{value: base*10 + acnCheckDigit(base)}, nil
}

// MustACNFromBase creates an ACN from its base and panics on error
func MustACNFromBase(base int64) ACN {
	a, err := ACNFromBase(base)
	if err != nil {
		panic(err)
	}
	return a
}

// Int64 returns the ACN as a plain integer
func (a ACN) Int64() int64 {
	return a.value
}

// Base returns the leading 8 digits
func (a ACN) Base() int64 {
	return a.value / 10
}

// CheckDigit returns the trailing digit
func (a ACN) CheckDigit() int {
	return int(a.value % 10)
}

// String returns the ACN as exactly 9 zero-padded digits
func (a ACN) String() string {
	return fmt.Sprintf("%09d", a.value)
}

// Display returns the conventional "XXX XXX XXX" grouping
func (a ACN) Display() string {
	s := a.String()
	return s[0:3] + " " + s[3:6] + " " + s[6:9]
}

// Equals reports whether both ACNs hold the same value
func (a ACN) Equals(other ACN) bool {
	return a.value == other.value
}

// MarshalJSON encodes the ACN as its 9-digit string so leading zeros survive
func (a ACN) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either the digit string or a JSON number
func (a *ACN) UnmarshalJSON(data []byte) error {
	value, err := unmarshalIdentifier(data)
	if err != nil {
		return fmt.Errorf("invalid ACN: %w", err)
	}
	parsed, err := NewACN(value)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// unmarshalIdentifier decodes a quoted digit string or a bare integer.
func unmarshalIdentifier(data []byte) (int64, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		return strconv.ParseInt(s, 10, 64)
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, err
	}
	return n, nil
}

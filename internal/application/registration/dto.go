package registration

import (
	"github.com/erp/bizid/internal/domain/registration"
)

// ACNResponse represents an ACN in API responses
type ACNResponse struct {
	Value   int64  `json:"value"`
	Digits  string `json:"digits"`
	Display string `json:"display"`
}

// ABNResponse represents an ABN in API responses
type ABNResponse struct {
	Value       int64  `json:"value"`
	Digits      string `json:"digits"`
	Display     string `json:"display"`
	CheckPrefix int    `json:"check_prefix"`
}

// PairResponse is an ABN together with the ACN it was derived from
type PairResponse struct {
	ABN ABNResponse `json:"abn"`
	ACN ACNResponse `json:"acn"`
}

// ToACNResponse converts a domain ACN to a response DTO
func ToACNResponse(acn registration.ACN) ACNResponse {
	return ACNResponse{
		Value:   acn.Int64(),
		Digits:  acn.String(),
		Display: acn.Display(),
	}
}

// ToABNResponse converts a domain ABN to a response DTO
func ToABNResponse(abn registration.ABN) ABNResponse {
	return ABNResponse{
		Value:       abn.Int64(),
		Digits:      abn.String(),
		Display:     abn.Display(),
		CheckPrefix: abn.CheckPrefix(),
	}
}

// ToPairResponse converts a generated pair to a response DTO
func ToPairResponse(abn registration.ABN, acn registration.ACN) PairResponse {
	return PairResponse{
		ABN: ToABNResponse(abn),
		ACN: ToACNResponse(acn),
	}
}

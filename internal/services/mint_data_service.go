package services

import (
	"fmt"
	"token-sale-api/pkg/logging"

	"github.com/shopspring/decimal"
)

// MintData is the batch minting payload consumed by the external minting
// process: one recipient/amount pair per pending purchase, index-aligned.
type MintData struct {
	Recipients []string `json:"recipients"`
	Amounts    []string `json:"amounts"`
}

// MintDataService projects pending purchases into mint data. Read-only; it
// never mutates record state.
type MintDataService struct {
	purchases *PurchaseService
}

// NewMintDataService creates a new mint data service
func NewMintDataService(purchases *PurchaseService) *MintDataService {
	return &MintDataService{purchases: purchases}
}

// BuildMintData collects all pending purchases into recipient and amount
// arrays
func (s *MintDataService) BuildMintData() (*MintData, error) {
	pending, err := s.purchases.GetPending()
	if err != nil {
		return nil, err
	}

	data := &MintData{
		Recipients: make([]string, 0, len(pending)),
		Amounts:    make([]string, 0, len(pending)),
	}
	for _, purchase := range pending {
		data.Recipients = append(data.Recipients, purchase.WalletAddress)
		data.Amounts = append(data.Amounts, purchase.Amount)
	}

	logging.Infof("Collected %d pending token purchases for minting", len(data.Recipients))
	return data, nil
}

// TotalAmount sums the amounts as exact decimals. Amounts are wei-scale
// integers well past 64-bit range, so native integer math is off the table.
func (d *MintData) TotalAmount() (string, error) {
	total := decimal.Zero
	for _, amount := range d.Amounts {
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return "", fmt.Errorf("invalid amount %q: %w", amount, err)
		}
		total = total.Add(value)
	}
	return total.String(), nil
}

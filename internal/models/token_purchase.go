package models

// Payment tokens accepted for a purchase
const (
	PaymentTokenETH  = "ETH"
	PaymentTokenUSDT = "USDT"
	PaymentTokenUSDC = "USDC"
)

// TokenPurchase represents a single token purchase request. Token amounts
// are decimal strings in base units (wei) so values beyond 64-bit range
// survive round-trips through the store untouched.
type TokenPurchase struct {
	BaseModel

	WalletAddress        string `json:"walletAddress" gorm:"not null;index"`         // recipient of the purchased tokens
	Amount               string `json:"amount" gorm:"not null"`                      // token amount in base units
	SelectedPaymentToken string `json:"selectedPaymentToken" gorm:"not null;size:8"` // ETH, USDT or USDC
	PaymentAmount        string `json:"paymentAmount" gorm:"not null"`               // amount of payment currency paid
	PaymentTxHash        string `json:"paymentTxHash,omitempty" gorm:"size:66"`      // inbound payment transaction hash
	Fulfilled            bool   `json:"fulfilled" gorm:"default:false;index"`
	TxHash               string `json:"txHash,omitempty" gorm:"size:66"` // mint transaction hash, set exactly once
}

func (TokenPurchase) TableName() string {
	return "token_purchases"
}

package api

import (
	"errors"
	"net/http"
	"regexp"
	"token-sale-api/internal/database"
	"token-sale-api/internal/response"
	"token-sale-api/internal/services"
	"token-sale-api/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var (
	ethAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	weiAmountPattern  = regexp.MustCompile(`^[0-9]+$`)
)

// PurchaseTokenRequest represents a token purchase request
type PurchaseTokenRequest struct {
	WalletAddress        string `json:"walletAddress" binding:"required,eth_addr"`
	Amount               string `json:"amount" binding:"required"`
	SelectedPaymentToken string `json:"selectedPaymentToken" binding:"required,oneof=ETH USDT USDC"`
	PaymentAmount        string `json:"paymentAmount" binding:"required"`
	PaymentTxHash        string `json:"paymentTxHash"`
}

// FulfillRequest carries the blockchain transaction hash for a fulfillment
type FulfillRequest struct {
	TxHash string `json:"txHash" binding:"required"`
}

// FulfillByIDsRequest fulfills a batch of purchases by their IDs
type FulfillByIDsRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1,dive,required"`
	TxHash string   `json:"txHash" binding:"required"`
}

// FulfillByWalletsRequest fulfills all pending purchases for a set of wallets
type FulfillByWalletsRequest struct {
	WalletAddresses []string `json:"walletAddresses" binding:"required,min=1,dive,required,eth_addr"`
	TxHash          string   `json:"txHash" binding:"required"`
}

func newPurchaseService() *services.PurchaseService {
	return services.NewPurchaseService(database.GetDB())
}

// handleServiceError maps a service error to the most specific available
// status code: not-found keeps 404, everything else is opaque and becomes
// an internal server error.
func handleServiceError(c *gin.Context, operation string, err error) {
	logging.Errorf("Error in %s handler: %v", operation, err)

	if errors.Is(err, services.ErrPurchaseNotFound) {
		response.ErrorJSON(c, http.StatusNotFound, err.Error())
		return
	}
	response.ErrorJSON(c, http.StatusInternalServerError, "Internal Server Error")
}

// CreateTokenPurchase creates a new token purchase request
func CreateTokenPurchase(c *gin.Context) {
	var req PurchaseTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	if !weiAmountPattern.MatchString(req.Amount) {
		response.ErrorJSON(c, http.StatusBadRequest, "amount must be a decimal integer string in base units")
		return
	}
	if payment, err := decimal.NewFromString(req.PaymentAmount); err != nil || payment.Sign() <= 0 {
		response.ErrorJSON(c, http.StatusBadRequest, "paymentAmount must be a positive decimal string")
		return
	}

	// Rate limit purchase creation per wallet when Redis is configured
	if redisService := services.NewRedisService(); redisService != nil {
		limited, err := redisService.CheckRateLimit(req.WalletAddress)
		if err != nil {
			handleServiceError(c, "CreateTokenPurchase", err)
			return
		}
		if limited {
			response.ErrorJSON(c, http.StatusTooManyRequests, "Please wait before submitting another purchase for this wallet")
			return
		}
		if err := redisService.SetRateLimit(req.WalletAddress); err != nil {
			logging.Warnf("Failed to set purchase rate limit for %s: %v", req.WalletAddress, err)
		}
	}

	logging.Infof("Processing token purchase request for wallet %s", req.WalletAddress)

	purchase, err := newPurchaseService().Create(services.CreatePurchaseInput{
		WalletAddress:        req.WalletAddress,
		Amount:               req.Amount,
		SelectedPaymentToken: req.SelectedPaymentToken,
		PaymentAmount:        req.PaymentAmount,
		PaymentTxHash:        req.PaymentTxHash,
	})
	if err != nil {
		handleServiceError(c, "CreateTokenPurchase", err)
		return
	}

	response.CreatedJSON(c, purchase)
}

// GetAllTokenPurchases returns all token purchases
func GetAllTokenPurchases(c *gin.Context) {
	purchases, err := newPurchaseService().GetAll()
	if err != nil {
		handleServiceError(c, "GetAllTokenPurchases", err)
		return
	}
	response.SuccessJSON(c, purchases)
}

// GetTokenPurchasesByWalletAddress returns all purchases for a wallet
func GetTokenPurchasesByWalletAddress(c *gin.Context) {
	walletAddress := c.Param("walletAddress")
	if !ethAddressPattern.MatchString(walletAddress) {
		response.ErrorJSON(c, http.StatusBadRequest, "walletAddress must be a valid Ethereum address")
		return
	}

	purchases, err := newPurchaseService().GetByWalletAddress(walletAddress)
	if err != nil {
		handleServiceError(c, "GetTokenPurchasesByWalletAddress", err)
		return
	}
	response.SuccessJSON(c, purchases)
}

// GetFulfilledTokenPurchases returns all fulfilled token purchases
func GetFulfilledTokenPurchases(c *gin.Context) {
	purchases, err := newPurchaseService().GetFulfilled()
	if err != nil {
		handleServiceError(c, "GetFulfilledTokenPurchases", err)
		return
	}
	response.SuccessJSON(c, purchases)
}

// GetPendingTokenPurchases returns all pending token purchases
func GetPendingTokenPurchases(c *gin.Context) {
	purchases, err := newPurchaseService().GetPending()
	if err != nil {
		handleServiceError(c, "GetPendingTokenPurchases", err)
		return
	}
	response.SuccessJSON(c, purchases)
}

// GetTokenPurchaseByID returns a single token purchase
func GetTokenPurchaseByID(c *gin.Context) {
	purchase, err := newPurchaseService().GetByID(c.Param("id"))
	if err != nil {
		handleServiceError(c, "GetTokenPurchaseByID", err)
		return
	}
	response.SuccessJSON(c, purchase)
}

// FulfillTokenPurchase marks a single purchase as fulfilled
func FulfillTokenPurchase(c *gin.Context) {
	var req FulfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	purchase, err := newPurchaseService().FulfillOne(c.Param("id"), req.TxHash)
	if err != nil {
		handleServiceError(c, "FulfillTokenPurchase", err)
		return
	}
	response.SuccessJSON(c, purchase)
}

// FulfillTokenPurchasesByWalletAddress fulfills all pending purchases for a
// wallet
func FulfillTokenPurchasesByWalletAddress(c *gin.Context) {
	walletAddress := c.Param("walletAddress")
	if !ethAddressPattern.MatchString(walletAddress) {
		response.ErrorJSON(c, http.StatusBadRequest, "walletAddress must be a valid Ethereum address")
		return
	}

	var req FulfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	logging.Infof("Fulfilling token purchases for wallet: %s with txHash: %s", walletAddress, req.TxHash)

	purchases, err := newPurchaseService().FulfillByWalletAddress(walletAddress, req.TxHash)
	if err != nil {
		handleServiceError(c, "FulfillTokenPurchasesByWalletAddress", err)
		return
	}
	response.SuccessJSON(c, purchases)
}

// FulfillTokenPurchasesByIDs fulfills a batch of purchases by their IDs
func FulfillTokenPurchasesByIDs(c *gin.Context) {
	var req FulfillByIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	purchases, err := newPurchaseService().FulfillByIDs(req.IDs, req.TxHash)
	if err != nil {
		handleServiceError(c, "FulfillTokenPurchasesByIDs", err)
		return
	}
	response.SuccessJSON(c, purchases)
}

// FulfillTokenPurchasesByWalletAddresses fulfills all pending purchases for
// a set of wallets
func FulfillTokenPurchasesByWalletAddresses(c *gin.Context) {
	var req FulfillByWalletsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	purchases, err := newPurchaseService().FulfillByWalletAddresses(req.WalletAddresses, req.TxHash)
	if err != nil {
		handleServiceError(c, "FulfillTokenPurchasesByWalletAddresses", err)
		return
	}
	response.SuccessJSON(c, purchases)
}

// FulfillAllPendingTokenPurchases fulfills every pending purchase
func FulfillAllPendingTokenPurchases(c *gin.Context) {
	var req FulfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	purchases, err := newPurchaseService().FulfillAllPending(req.TxHash)
	if err != nil {
		handleServiceError(c, "FulfillAllPendingTokenPurchases", err)
		return
	}
	response.SuccessJSON(c, purchases)
}

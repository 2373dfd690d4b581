package services

import (
	"errors"
	"fmt"
	"strings"
	"token-sale-api/internal/models"
	"token-sale-api/pkg/logging"

	"gorm.io/gorm"
)

// ErrPurchaseNotFound is returned when no purchase exists for a requested ID.
var ErrPurchaseNotFound = errors.New("token purchase not found")

// CreatePurchaseInput holds the fields for a new token purchase request.
// All token amounts are expected to be in wei.
type CreatePurchaseInput struct {
	WalletAddress        string
	Amount               string
	SelectedPaymentToken string
	PaymentAmount        string
	PaymentTxHash        string
}

// PurchaseService owns all business rules over token purchase records
type PurchaseService struct {
	db *gorm.DB
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db}
}

// Create records a new token purchase request. Every call creates a new
// record, there is no dedup against open requests for the same wallet.
func (s *PurchaseService) Create(input CreatePurchaseInput) (*models.TokenPurchase, error) {
	logging.Infof("Creating token purchase for wallet %s", input.WalletAddress)

	purchase := &models.TokenPurchase{
		WalletAddress:        input.WalletAddress,
		Amount:               input.Amount,
		SelectedPaymentToken: input.SelectedPaymentToken,
		PaymentAmount:        input.PaymentAmount,
		PaymentTxHash:        input.PaymentTxHash,
		Fulfilled:            false,
	}

	if err := s.db.Create(purchase).Error; err != nil {
		return nil, fmt.Errorf("failed to create token purchase: %w", err)
	}

	return purchase, nil
}

// GetAll returns all token purchases
func (s *PurchaseService) GetAll() ([]*models.TokenPurchase, error) {
	logging.Infof("Retrieving all token purchases")

	var purchases []*models.TokenPurchase
	if err := s.db.Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve token purchases: %w", err)
	}
	return purchases, nil
}

// GetByID returns a single token purchase, ErrPurchaseNotFound when absent
func (s *PurchaseService) GetByID(id string) (*models.TokenPurchase, error) {
	logging.Infof("Retrieving token purchase with ID: %s", id)

	var purchase models.TokenPurchase
	result := s.db.Where("id = ?", id).First(&purchase)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("token purchase with ID %s: %w", id, ErrPurchaseNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve token purchase %s: %w", id, result.Error)
	}
	return &purchase, nil
}

// GetByWalletAddress returns all purchases for a wallet address. An empty
// result is not an error.
func (s *PurchaseService) GetByWalletAddress(walletAddress string) ([]*models.TokenPurchase, error) {
	logging.Infof("Retrieving token purchases for wallet address: %s", walletAddress)

	var purchases []*models.TokenPurchase
	if err := s.db.Where("wallet_address = ?", walletAddress).Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve token purchases for wallet %s: %w", walletAddress, err)
	}

	if len(purchases) == 0 {
		logging.Warnf("No token purchases found for wallet: %s", walletAddress)
	}

	return purchases, nil
}

// GetFulfilled returns all fulfilled token purchases
func (s *PurchaseService) GetFulfilled() ([]*models.TokenPurchase, error) {
	logging.Infof("Retrieving all fulfilled token purchases")

	var purchases []*models.TokenPurchase
	if err := s.db.Where("fulfilled = ?", true).Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve fulfilled token purchases: %w", err)
	}
	return purchases, nil
}

// GetPending returns all pending (unfulfilled) token purchases
func (s *PurchaseService) GetPending() ([]*models.TokenPurchase, error) {
	logging.Infof("Retrieving all pending token purchases")

	var purchases []*models.TokenPurchase
	if err := s.db.Where("fulfilled = ?", false).Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve pending token purchases: %w", err)
	}
	return purchases, nil
}

// FulfillOne marks a token purchase as fulfilled with the given transaction
// hash. Already-fulfilled purchases are returned unchanged: the first
// fulfillment hash wins and later calls are harmless no-ops.
func (s *PurchaseService) FulfillOne(id, txHash string) (*models.TokenPurchase, error) {
	logging.Infof("Fulfilling token purchase with ID: %s", id)

	purchase, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if purchase.Fulfilled {
		logging.Warnf("Token purchase %s is already fulfilled", id)
		return purchase, nil
	}

	return s.applyFulfillment(purchase, txHash)
}

// FulfillByWalletAddress fulfills all pending purchases for a wallet.
// Returns an empty slice when the wallet has nothing pending.
func (s *PurchaseService) FulfillByWalletAddress(walletAddress, txHash string) ([]*models.TokenPurchase, error) {
	logging.Infof("Fulfilling all pending token purchases for wallet: %s", walletAddress)

	var pending []*models.TokenPurchase
	if err := s.db.Where("wallet_address = ? AND fulfilled = ?", walletAddress, false).Find(&pending).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve pending token purchases for wallet %s: %w", walletAddress, err)
	}

	if len(pending) == 0 {
		logging.Warnf("No pending token purchases found for wallet: %s", walletAddress)
		return []*models.TokenPurchase{}, nil
	}

	updated, err := s.fulfillAll(pending, txHash)
	if err != nil {
		return nil, err
	}

	logging.Infof("Successfully fulfilled %d token purchases for wallet: %s", len(updated), walletAddress)
	return updated, nil
}

// FulfillByIDs fulfills multiple purchases by their IDs. Every ID is resolved
// before any update is applied; a missing ID fails the whole call. Records
// that are already fulfilled are skipped and returned as stored.
func (s *PurchaseService) FulfillByIDs(ids []string, txHash string) ([]*models.TokenPurchase, error) {
	logging.Infof("Fulfilling token purchases with IDs: %s", strings.Join(ids, ", "))

	// Validate all IDs exist before updating any
	purchases := make([]*models.TokenPurchase, 0, len(ids))
	for _, id := range ids {
		purchase, err := s.GetByID(id)
		if err != nil {
			logging.Errorf("Error retrieving token purchase with ID: %s. %v", id, err)
			return nil, err
		}
		purchases = append(purchases, purchase)
	}

	updated := make([]*models.TokenPurchase, 0, len(purchases))
	for _, purchase := range purchases {
		if purchase.Fulfilled {
			logging.Warnf("Token purchase %s is already fulfilled. Skipping.", purchase.ID)
			updated = append(updated, purchase)
			continue
		}

		fulfilled, err := s.applyFulfillment(purchase, txHash)
		if err != nil {
			return nil, err
		}
		updated = append(updated, fulfilled)
	}

	logging.Infof("Successfully fulfilled %d token purchases", len(updated))
	return updated, nil
}

// FulfillByWalletAddresses fulfills all pending purchases across a set of
// wallets. Returns an empty slice when none of the wallets has anything
// pending.
func (s *PurchaseService) FulfillByWalletAddresses(walletAddresses []string, txHash string) ([]*models.TokenPurchase, error) {
	logging.Infof("Fulfilling token purchases for wallet addresses: %s", strings.Join(walletAddresses, ", "))

	var pending []*models.TokenPurchase
	if err := s.db.Where("wallet_address IN ? AND fulfilled = ?", walletAddresses, false).Find(&pending).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve pending token purchases for wallets: %w", err)
	}

	if len(pending) == 0 {
		logging.Warnf("No pending token purchases found for the provided wallet addresses")
		return []*models.TokenPurchase{}, nil
	}

	updated, err := s.fulfillAll(pending, txHash)
	if err != nil {
		return nil, err
	}

	logWalletBreakdown(updated)
	return updated, nil
}

// FulfillAllPending fulfills every pending purchase with a single
// transaction hash
func (s *PurchaseService) FulfillAllPending(txHash string) ([]*models.TokenPurchase, error) {
	logging.Infof("Fulfilling all pending token purchases with transaction hash: %s", txHash)

	pending, err := s.GetPending()
	if err != nil {
		return nil, err
	}

	if len(pending) == 0 {
		logging.Warnf("No pending token purchases found to fulfill")
		return []*models.TokenPurchase{}, nil
	}

	updated, err := s.fulfillAll(pending, txHash)
	if err != nil {
		return nil, err
	}

	logging.Infof("Successfully fulfilled %d token purchases", len(updated))
	logWalletBreakdown(updated)
	return updated, nil
}

// applyFulfillment persists the fulfilled flag and transaction hash for a
// single record. The update is conditional on fulfilled = false so a
// concurrent fulfillment of the same record cannot overwrite the hash that
// won; the stored state is re-read and returned either way.
func (s *PurchaseService) applyFulfillment(purchase *models.TokenPurchase, txHash string) (*models.TokenPurchase, error) {
	result := s.db.Model(&models.TokenPurchase{}).
		Where("id = ? AND fulfilled = ?", purchase.ID, false).
		Updates(map[string]interface{}{
			"fulfilled": true,
			"tx_hash":   txHash,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fulfill token purchase %s: %w", purchase.ID, result.Error)
	}

	if result.RowsAffected == 0 {
		logging.Warnf("Token purchase %s was fulfilled concurrently, keeping original hash", purchase.ID)
	}

	return s.GetByID(purchase.ID)
}

// fulfillAll applies the fulfillment mutation to each record in turn. No
// transaction spans the batch: a failing record leaves earlier updates in
// place.
func (s *PurchaseService) fulfillAll(purchases []*models.TokenPurchase, txHash string) ([]*models.TokenPurchase, error) {
	updated := make([]*models.TokenPurchase, 0, len(purchases))
	for _, purchase := range purchases {
		fulfilled, err := s.applyFulfillment(purchase, txHash)
		if err != nil {
			return nil, err
		}
		updated = append(updated, fulfilled)
	}
	return updated, nil
}

// logWalletBreakdown logs a per-wallet count of fulfilled purchases
func logWalletBreakdown(purchases []*models.TokenPurchase) {
	walletCounts := make(map[string]int)
	for _, purchase := range purchases {
		walletCounts[purchase.WalletAddress]++
	}

	for wallet, count := range walletCounts {
		logging.Infof("Fulfilled %d purchases for wallet: %s", count, wallet)
	}

	logging.Infof("Successfully fulfilled %d token purchases across %d wallets", len(purchases), len(walletCounts))
}

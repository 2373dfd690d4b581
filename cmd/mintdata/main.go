package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"
	"token-sale-api/internal/config"
	"token-sale-api/internal/database"
	"token-sale-api/internal/services"
	"token-sale-api/pkg/logging"
)

// mintdata extracts all pending token purchases into a JSON file of
// recipient and amount arrays for the external batch minting process.
// Read-only: it can be re-run any number of times without touching the
// store.
func main() {
	if err := config.InitConfig(); err != nil {
		log.Fatal("Failed to initialize config:", err)
	}

	logging.InitLogging(logging.ParseLevel(config.AppConfig.LogLevel))
	logging.Infof("Starting mint data generation")

	if err := database.InitDatabase(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.CloseDatabase()

	purchaseService := services.NewPurchaseService(database.GetDB())
	mintService := services.NewMintDataService(purchaseService)

	data, err := mintService.BuildMintData()
	if err != nil {
		logging.Errorf("Failed to build mint data: %v", err)
		os.Exit(1)
	}

	if len(data.Recipients) == 0 {
		logging.Infof("No pending purchases found. Exiting.")
		return
	}

	outputPath, err := writeMintData(data)
	if err != nil {
		logging.Errorf("Failed to write mint data: %v", err)
		os.Exit(1)
	}

	logging.Infof("Mint data successfully generated and saved to: %s", outputPath)
	logging.Infof("Total recipients: %d", len(data.Recipients))

	total, err := data.TotalAmount()
	if err != nil {
		logging.Errorf("Failed to sum token amounts: %v", err)
		os.Exit(1)
	}
	logging.Infof("Total token amount: %s", total)
}

// writeMintData serializes the mint data to a timestamped JSON file under
// the configured output directory
func writeMintData(data *services.MintData) (string, error) {
	outputDir := config.AppConfig.MintOutputDir
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	outputPath := filepath.Join(outputDir, "mint-data-"+timestamp+".json")

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputPath, payload, 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

package services

import (
	"testing"
)

func TestBuildMintData(t *testing.T) {
	s := newTestService(t)

	a := createPurchase(t, s, "0x1111111111111111111111111111111111111111", "1000000000000000000")
	createPurchase(t, s, "0x2222222222222222222222222222222222222222", "2000000000000000000")
	fulfilled := createPurchase(t, s, "0x3333333333333333333333333333333333333333", "5")
	if _, err := s.FulfillOne(fulfilled.ID, "0xdone"); err != nil {
		t.Fatalf("setup fulfill: %v", err)
	}

	mintService := NewMintDataService(s)
	data, err := mintService.BuildMintData()
	if err != nil {
		t.Fatalf("BuildMintData: %v", err)
	}

	if len(data.Recipients) != 2 || len(data.Amounts) != 2 {
		t.Fatalf("expected 2 pending entries, got recipients=%d amounts=%d", len(data.Recipients), len(data.Amounts))
	}
	for i, recipient := range data.Recipients {
		if recipient == fulfilled.WalletAddress {
			t.Fatal("fulfilled purchase included in mint data")
		}
		if recipient == a.WalletAddress && data.Amounts[i] != a.Amount {
			t.Fatalf("amounts not index-aligned with recipients: %q", data.Amounts[i])
		}
	}
}

func TestBuildMintData_ReadOnly(t *testing.T) {
	s := newTestService(t)
	createPurchase(t, s, "0x1111111111111111111111111111111111111111", "100")

	mintService := NewMintDataService(s)
	if _, err := mintService.BuildMintData(); err != nil {
		t.Fatalf("BuildMintData: %v", err)
	}
	if _, err := mintService.BuildMintData(); err != nil {
		t.Fatalf("repeated BuildMintData: %v", err)
	}

	pending, err := s.GetPending()
	if err != nil {
		t.Fatalf("GetPending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("export mutated the store, pending=%d", len(pending))
	}
}

func TestMintDataTotalAmount(t *testing.T) {
	// Values past both float64 and int64 precision
	data := &MintData{
		Amounts: []string{
			"100000000000000000000000000",
			"100000000000000000000000001",
			"5",
		},
	}

	total, err := data.TotalAmount()
	if err != nil {
		t.Fatalf("TotalAmount: %v", err)
	}
	if total != "200000000000000000000000006" {
		t.Fatalf("lossy total: %s", total)
	}
}

func TestMintDataTotalAmount_InvalidAmount(t *testing.T) {
	data := &MintData{Amounts: []string{"not-a-number"}}
	if _, err := data.TotalAmount(); err == nil {
		t.Fatal("expected error for invalid amount")
	}
}

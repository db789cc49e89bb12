package e2etests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

// Full betting flow against a running instance (api + migrator with
// APP_ENV=DEV seed data). Skipped unless E2E_BASE_URL is set, e.g.
//
//	E2E_BASE_URL=http://localhost:8080 go test ./e2e_tests/
const seededGameID = "7f0f3b47-0b79-4f2e-9f57-32a87e04df11"

var httpClient = &http.Client{Timeout: 5 * time.Second}

func baseURL(t *testing.T) string {
	t.Helper()

	url := os.Getenv("E2E_BASE_URL")
	if url == "" {
		t.Skip("E2E_BASE_URL not set")
	}

	return url
}

func doJSON(t *testing.T, method, url string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)

	return resp.StatusCode, out
}

func register(t *testing.T, base, initialBalance string) (playerID, walletID string) {
	t.Helper()

	username := fmt.Sprintf("e2e_%d", time.Now().UnixNano())

	code, body := doJSON(t, http.MethodPost, base+"/api/players", map[string]any{
		"username":       username,
		"email":          username + "@example.com",
		"password":       "long enough password",
		"currencyId":     1,
		"initialBalance": initialBalance,
	})
	if code != http.StatusCreated {
		t.Fatalf("register: want 201, got %d (%v)", code, body)
	}

	wallet, ok := body["wallet"].(map[string]any)
	if !ok {
		t.Fatalf("register response missing wallet: %v", body)
	}

	return body["id"].(string), wallet["id"].(string)
}

func getBalance(t *testing.T, base, walletID string) string {
	t.Helper()

	code, body := doJSON(t, http.MethodGet, base+"/api/wallets/"+walletID+"/balance", nil)
	if code != http.StatusOK {
		t.Fatalf("get balance: want 200, got %d (%v)", code, body)
	}

	return body["balance"].(string)
}

func placeBet(t *testing.T, base, walletID, amount string) string {
	t.Helper()

	code, body := doJSON(t, http.MethodPost, base+"/api/bets", map[string]any{
		"walletId":   walletID,
		"gameId":     seededGameID,
		"amount":     amount,
		"currencyId": 1,
	})
	if code != http.StatusCreated {
		t.Fatalf("place bet: want 201, got %d (%v)", code, body)
	}

	return body["id"].(string)
}

func TestE2E_BettingFlow(t *testing.T) {
	base := baseURL(t)

	_, walletID := register(t, base, "500.00")

	if got := getBalance(t, base, walletID); got != "500.00" {
		t.Fatalf("opening balance: want 500.00, got %s", got)
	}

	t.Run("place_debits_stake", func(t *testing.T) {
		betID := placeBet(t, base, walletID, "100.00")

		if got := getBalance(t, base, walletID); got != "400.00" {
			t.Fatalf("after place: want 400.00, got %s", got)
		}

		code, body := doJSON(t, http.MethodPost, base+"/api/bets/"+betID+"/settle", nil)
		if code != http.StatusOK {
			t.Fatalf("settle: want 200, got %d (%v)", code, body)
		}

		if body["status"] != "settled" {
			t.Fatalf("want settled status, got %v", body["status"])
		}

		// Seeded game pays 2.00x on a win.
		won, _ := body["isWon"].(bool)
		want := "400.00"
		if won {
			want = "600.00"
		}

		if got := getBalance(t, base, walletID); got != want {
			t.Fatalf("after settle (won=%v): want %s, got %s", won, want, got)
		}

		// Terminal states are one-shot.
		code, _ = doJSON(t, http.MethodPost, base+"/api/bets/"+betID+"/settle", nil)
		if code != http.StatusConflict {
			t.Fatalf("second settle: want 409, got %d", code)
		}
	})

	t.Run("cancel_refunds_minus_tax", func(t *testing.T) {
		before := getBalance(t, base, walletID)

		betID := placeBet(t, base, walletID, "100.00")

		code, body := doJSON(t, http.MethodPost, base+"/api/bets/"+betID+"/cancel",
			map[string]any{"reason": "changed my mind"})
		if code != http.StatusOK {
			t.Fatalf("cancel: want 200, got %d (%v)", code, body)
		}

		// Seeded 5% cancellation tax: 100.00 out, 95.00 back.
		after := getBalance(t, base, walletID)
		if diffCents(t, before, after) != 500 {
			t.Fatalf("cancel tax: want net -5.00, before %s after %s", before, after)
		}

		code, _ = doJSON(t, http.MethodPost, base+"/api/bets/"+betID+"/settle", nil)
		if code != http.StatusConflict {
			t.Fatalf("settle after cancel: want 409, got %d", code)
		}
	})

	t.Run("overdraw_rejected", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, base+"/api/bets", map[string]any{
			"walletId":   walletID,
			"gameId":     seededGameID,
			"amount":     "100000.00",
			"currencyId": 1,
		})
		if code != http.StatusConflict {
			t.Fatalf("overdraw: want 409, got %d (%v)", code, body)
		}
	})

	t.Run("below_minimum_rejected", func(t *testing.T) {
		code, body := doJSON(t, http.MethodPost, base+"/api/bets", map[string]any{
			"walletId":   walletID,
			"gameId":     seededGameID,
			"amount":     "1.00",
			"currencyId": 1,
		})
		if code != http.StatusBadRequest {
			t.Fatalf("below minimum: want 400, got %d (%v)", code, body)
		}
	})

	t.Run("checkpoint_keeps_balance", func(t *testing.T) {
		before := getBalance(t, base, walletID)

		code, body := doJSON(t, http.MethodPost, base+"/api/wallets/"+walletID+"/checkpoint", nil)
		if code != http.StatusCreated {
			t.Fatalf("checkpoint: want 201, got %d (%v)", code, body)
		}

		if body["type"] != "checkpoint" {
			t.Fatalf("want checkpoint entry, got %v", body["type"])
		}

		if after := getBalance(t, base, walletID); after != before {
			t.Fatalf("checkpoint moved balance: before %s after %s", before, after)
		}
	})
}

// diffCents returns before minus after in minor units.
func diffCents(t *testing.T, before, after string) int64 {
	t.Helper()

	return parseCents(t, before) - parseCents(t, after)
}

func parseCents(t *testing.T, s string) int64 {
	t.Helper()

	var units, cents int64

	_, err := fmt.Sscanf(s, "%d.%02d", &units, &cents)
	if err != nil {
		t.Fatalf("parse amount %q: %v", s, err)
	}

	if units < 0 {
		return units*100 - cents
	}

	return units*100 + cents
}

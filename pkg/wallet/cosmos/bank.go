package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// BankClient queries balances over the Cosmos SDK REST API
type BankClient struct {
	restURL string
	http    *http.Client
}

// NewBankClient creates a balance client for a REST endpoint
func NewBankClient(restURL string) *BankClient {
	return &BankClient{
		restURL: strings.TrimRight(restURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type balancesResponse struct {
	Balances []struct {
		Denom  string `json:"denom"`
		Amount string `json:"amount"`
	} `json:"balances"`
}

// Balance returns the amount of denom held by address, "0" when none
func (b *BankClient) Balance(ctx context.Context, address, denom string) (string, error) {
	u := fmt.Sprintf("%s/cosmos/bank/v1beta1/balances/%s", b.restURL, url.PathEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", errors.Wrap(err, "http.NewRequestWithContext")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "query balances")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("balances query returned status %d", resp.StatusCode)
	}

	var out balancesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrap(err, "decode balances")
	}

	for _, bal := range out.Balances {
		if bal.Denom == denom {
			return bal.Amount, nil
		}
	}
	return "0", nil
}

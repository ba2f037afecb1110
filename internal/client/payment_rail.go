package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// HTTPPaymentRail talks to the ledger service that holds user, escrow and
// collateral accounts. Transfers are idempotent on the reference key.
type HTTPPaymentRail struct {
	Address string
	client  *http.Client
}

func NewHTTPPaymentRail(address string) (*HTTPPaymentRail, error) {
	return &HTTPPaymentRail{
		Address: address,
		client:  http.DefaultClient,
	}, nil
}

type transferRequest struct {
	FromAccount string `json:"from_account"`
	ToAccount   string `json:"to_account"`
	Amount      uint64 `json:"amount"`
	Asset       string `json:"asset"`
	Reference   string `json:"reference"`
}

type balanceResponse struct {
	Account string `json:"account"`
	Asset   string `json:"asset"`
	Balance uint64 `json:"balance"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPPaymentRail) Transfer(ctx context.Context, fromAccount, toAccount string, amount uint64, asset, reference string) error {
	requestBodyBytes, err := json.Marshal(transferRequest{
		FromAccount: fromAccount,
		ToAccount:   toAccount,
		Amount:      amount,
		Asset:       asset,
		Reference:   reference,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/accounts/transfer", h.Address), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	} else {
		var errResp errorResponse
		if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil {
			return err
		}
		return errors.New(errResp.Error)
	}
}

func (h *HTTPPaymentRail) Balance(ctx context.Context, account, asset string) (uint64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/accounts/%s/balance?asset=%s", h.Address, account, asset), nil)
	if err != nil {
		return 0, err
	}

	response, err := h.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var balResp balanceResponse
		if err := json.Unmarshal(responseBodyBytes, &balResp); err != nil {
			return 0, err
		}
		return balResp.Balance, nil
	} else {
		var errResp errorResponse
		if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil {
			return 0, err
		}
		return 0, errors.New(errResp.Error)
	}
}

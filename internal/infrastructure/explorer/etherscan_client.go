package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"wallet-checkpoint-monitor/internal/domain/entity"
	"wallet-checkpoint-monitor/internal/infrastructure/config"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// EtherscanClient queries an Etherscan-compatible account API
type EtherscanClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewEtherscanClient creates a new explorer client. A zero request timeout
// leaves requests unbounded apart from the caller's context.
func NewEtherscanClient(cfg *config.ExplorerConfig, logger *logger.Logger) *EtherscanClient {
	return &EtherscanClient{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger.WithComponent("etherscan-client"),
	}
}

// txListEnvelope is the wire shape of every account API answer
type txListEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type rawTransaction struct {
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
}

// ListTransactions fetches the transaction list of address for the window
func (c *EtherscanClient) ListTransactions(ctx context.Context, address string, window entity.QueryWindow) (*entity.TxListResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.txListURL(address, window), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build txlist request: %w", err)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query explorer: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Explorer answered",
		zap.String("address", address),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("took", time.Since(started)))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to query explorer: status %d", resp.StatusCode)
	}

	var envelope txListEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedResponse, err)
	}

	return decodeTxList(envelope)
}

func (c *EtherscanClient) txListURL(address string, window entity.QueryWindow) string {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "txlist")
	params.Set("address", address)
	params.Set("page", strconv.Itoa(window.Page))
	params.Set("offset", strconv.Itoa(window.Offset))
	if window.StartBlock > 0 {
		params.Set("startblock", strconv.FormatUint(window.StartBlock, 10))
	}
	params.Set("sort", "desc")
	params.Set("apikey", c.apiKey)

	return c.apiURL + "?" + params.Encode()
}

// decodeTxList validates the envelope against the txlist schema
func decodeTxList(envelope txListEnvelope) (*entity.TxListResult, error) {
	result := &entity.TxListResult{
		Status:  envelope.Status,
		Message: envelope.Message,
	}

	if envelope.Status == "" {
		return nil, fmt.Errorf("%w: missing status", entity.ErrMalformedResponse)
	}

	if !result.OK() {
		// Rejections carry either an empty list or a reason string
		var reason string
		if err := json.Unmarshal(envelope.Result, &reason); err == nil {
			result.Reason = reason
			return result, nil
		}
		var raws []rawTransaction
		if len(envelope.Result) > 0 && json.Unmarshal(envelope.Result, &raws) != nil {
			return nil, fmt.Errorf("%w: unexpected result for status %s", entity.ErrMalformedResponse, envelope.Status)
		}
		txs, err := convertTransactions(raws)
		if err != nil {
			return nil, err
		}
		result.Transactions = txs
		return result, nil
	}

	var raws []rawTransaction
	if err := json.Unmarshal(envelope.Result, &raws); err != nil {
		return nil, fmt.Errorf("%w: result is not a transaction list: %v", entity.ErrMalformedResponse, err)
	}
	txs, err := convertTransactions(raws)
	if err != nil {
		return nil, err
	}
	result.Transactions = txs

	return result, nil
}

func convertTransactions(raws []rawTransaction) ([]entity.Transaction, error) {
	txs := make([]entity.Transaction, 0, len(raws))
	for i, raw := range raws {
		seconds, err := strconv.ParseInt(raw.TimeStamp, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %d has timeStamp %q", entity.ErrMalformedResponse, i, raw.TimeStamp)
		}

		var block uint64
		if raw.BlockNumber != "" {
			block, err = strconv.ParseUint(raw.BlockNumber, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: transaction %d has blockNumber %q", entity.ErrMalformedResponse, i, raw.BlockNumber)
			}
		}

		txs = append(txs, entity.Transaction{
			Hash:        raw.Hash,
			From:        raw.From,
			To:          raw.To,
			BlockNumber: block,
			Timestamp:   time.Unix(seconds, 0).UTC(),
		})
	}
	return txs, nil
}

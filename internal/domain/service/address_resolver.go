package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"wallet-checkpoint-monitor/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// ResolveAddresses decodes a JSON array of addresses, keeping input order.
// Elements that are not strings are kept as their JSON text so callers can
// still account for them.
func ResolveAddresses(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, entity.ErrNoAddresses
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidAddressList, err)
	}

	addresses := make([]string, 0, len(items))
	for _, item := range items {
		var value any
		if err := json.Unmarshal(item, &value); err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrInvalidAddressList, err)
		}
		if address, ok := value.(string); ok {
			addresses = append(addresses, address)
			continue
		}
		addresses = append(addresses, string(item))
	}

	return addresses, nil
}

// ValidateAddress checks for a 0x-prefixed 20-byte hex address
func ValidateAddress(address string) error {
	if !strings.HasPrefix(address, "0x") || !common.IsHexAddress(address) {
		return fmt.Errorf("%w: %q", entity.ErrInvalidAddress, address)
	}
	return nil
}

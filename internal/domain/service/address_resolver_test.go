package service

import (
	"testing"

	"wallet-checkpoint-monitor/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAddresses(t *testing.T) {
	addresses, err := ResolveAddresses(`  ["0xb", "0xa", "0xc"]  `)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xb", "0xa", "0xc"}, addresses)
}

func TestResolveAddressesKeepsNonStringsAsText(t *testing.T) {
	addresses, err := ResolveAddresses(`["0xa", 12, null]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xa", "12", "null"}, addresses)
}

func TestResolveAddressesEmpty(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		_, err := ResolveAddresses(raw)
		assert.ErrorIs(t, err, entity.ErrNoAddresses)
	}

	addresses, err := ResolveAddresses("[]")
	require.NoError(t, err)
	assert.Empty(t, addresses)

	addresses, err = ResolveAddresses("null")
	require.NoError(t, err)
	assert.Empty(t, addresses)
}

func TestResolveAddressesMalformed(t *testing.T) {
	for _, raw := range []string{"0xabc,0xdef", `["0xa"`, `{"a":"0xa"}`, `"0xa"`} {
		_, err := ResolveAddresses(raw)
		assert.ErrorIs(t, err, entity.ErrInvalidAddressList, raw)
	}
}

func TestValidateAddress(t *testing.T) {
	valid := []string{
		"0x52908400098527886E0F7030069857D2E4169EE7",
		"0xde709f2102306220921060314715629080e2fb77",
	}
	for _, address := range valid {
		assert.NoError(t, ValidateAddress(address), address)
	}

	invalid := []string{
		"",
		"0x",
		"52908400098527886E0F7030069857D2E4169EE7",
		"0X52908400098527886E0F7030069857D2E4169EE7",
		"0x52908400098527886E0F7030069857D2E4169EE",
		"0x52908400098527886E0F7030069857D2E4169EE77",
		"0x52908400098527886E0F7030069857D2E4169EZ7",
		"12",
	}
	for _, address := range invalid {
		assert.ErrorIs(t, ValidateAddress(address), entity.ErrInvalidAddress, address)
	}
}

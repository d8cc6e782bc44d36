package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHederaAccountID(t *testing.T) {
	assert.True(t, IsHederaAccountID("0.0.1234"))
	assert.True(t, IsHederaAccountID("1.2.3"))
	assert.False(t, IsHederaAccountID("0.0"))
	assert.False(t, IsHederaAccountID("0x1234"))
	assert.False(t, IsHederaAccountID("0.0.1234x"))
	assert.False(t, IsHederaAccountID(""))
}

func TestIsEVMAddress(t *testing.T) {
	assert.True(t, IsEVMAddress("0x52908400098527886E0F7030069857D2E4169EE7"))
	assert.True(t, IsEVMAddress("0x52908400098527886e0f7030069857d2e4169ee7"))
	assert.False(t, IsEVMAddress("52908400098527886E0F7030069857D2E4169EE7"))
	assert.False(t, IsEVMAddress("0x123"))
	assert.False(t, IsEVMAddress("0.0.1234"))
}

func TestNormalizeEVMAddressChecksums(t *testing.T) {
	got, err := NormalizeEVMAddress("0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359")
	require.NoError(t, err)
	assert.Equal(t, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359", got)

	_, err = NormalizeEVMAddress("not-an-address")
	assert.ErrorIs(t, err, ErrInvalidWalletAddress)
}

func TestTokenEVMAddressIsLongZeroAlias(t *testing.T) {
	got, err := TokenEVMAddress("0.0.5005")
	require.NoError(t, err)
	assert.Equal(t, "0x000000000000000000000000000000000000138d", got)

	_, err = TokenEVMAddress("0.0")
	assert.Error(t, err)
	_, err = TokenEVMAddress("0.0.abc")
	assert.Error(t, err)
}

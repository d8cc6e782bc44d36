package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBaseUnits(t *testing.T) {
	got, err := FormatBaseUnits(big.NewInt(123450000), 8)
	require.NoError(t, err)
	assert.Equal(t, "1.2345", got)

	got, err = FormatBaseUnits(big.NewInt(0), 8)
	require.NoError(t, err)
	assert.Equal(t, "0", got)

	got, err = FormatBaseUnits(big.NewInt(42), 0)
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	got, err = FormatBaseUnits(nil, 8)
	require.NoError(t, err)
	assert.Equal(t, "0", got)
}

func TestParseBaseUnits(t *testing.T) {
	got, err := ParseBaseUnits("1.2345", 8)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(123450000), got)

	_, err = ParseBaseUnits("one", 8)
	assert.Error(t, err)
}

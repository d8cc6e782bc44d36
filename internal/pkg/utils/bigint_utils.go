package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatBaseUnits converts an integer base-unit amount to a human-readable
// decimal string for the given number of decimals.
// Example: amount=123450000, decimals=8 => "1.2345"
func FormatBaseUnits(amount *big.Int, decimals uint8) (string, error) {
	if amount == nil {
		return "0", nil
	}
	if decimals == 0 {
		return amount.String(), nil
	}

	amountFloat := new(big.Float).SetInt(amount)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value := new(big.Float).Quo(amountFloat, divisor)

	formatted := value.Text('f', int(decimals))
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
	}
	if strings.HasPrefix(formatted, ".") {
		formatted = "0" + formatted
	}
	if formatted == "" {
		if amount.Sign() == 0 {
			return "0", nil
		}
		return value.Text('f', 2), fmt.Errorf("formatting resulted in empty string for non-zero value")
	}
	return formatted, nil
}

// ParseBaseUnits converts a display-unit decimal string to an integer
// base-unit amount, truncating excess precision.
func ParseBaseUnits(amount string, decimals uint8) (*big.Int, error) {
	value, ok := new(big.Float).SetString(amount)
	if !ok {
		return nil, fmt.Errorf("invalid decimal amount %q", amount)
	}
	multiplier := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value.Mul(value, multiplier)

	out, _ := value.Int(nil)
	return out, nil
}

package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var hederaAccountIDRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// IsHederaAccountID reports whether s looks like a Hedera account id
// (shard.realm.num, e.g. "0.0.1234").
func IsHederaAccountID(s string) bool {
	return hederaAccountIDRe.MatchString(s)
}

// IsEVMAddress reports whether s is a 0x-prefixed hex address.
func IsEVMAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// NormalizeEVMAddress returns the EIP-55 checksummed form of an EVM address.
func NormalizeEVMAddress(s string) (string, error) {
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWalletAddress, s)
	}
	return common.HexToAddress(s).Hex(), nil
}

// TokenEVMAddress converts a Hedera token id to its long-zero EVM alias:
// the entity number hex-encoded and left-padded to 40 nibbles.
func TokenEVMAddress(tokenID string) (string, error) {
	parts := strings.Split(tokenID, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed token id %q", tokenID)
	}
	num, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return "", fmt.Errorf("malformed token id %q: %w", tokenID, err)
	}
	return fmt.Sprintf("0x%040x", num), nil
}

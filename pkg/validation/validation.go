package validation

import (
	"regexp"

	"github.com/gagliardetto/solana-go"
)

// MaxGroupNameLength is the longest group name a user may create.
const MaxGroupNameLength = 50

var groupNameRe = regexp.MustCompile(`^[a-zA-Z0-9_ -]+$`)

// IsValidAddress reports whether s parses as a Solana public key
// (fixed-length base58 value). It never panics; an empty string is invalid.
func IsValidAddress(s string) bool {
	if s == "" {
		return false
	}
	_, err := solana.PublicKeyFromBase58(s)
	return err == nil
}

// IsValidGroupName reports whether s is an acceptable group name:
// 1 to 50 characters, letters, digits, underscore, space or hyphen.
func IsValidGroupName(s string) bool {
	if len(s) == 0 || len(s) > MaxGroupNameLength {
		return false
	}
	return groupNameRe.MatchString(s)
}

package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// DID represents a Decentralized Identifier (W3C standard)
type DID string

// NewDID creates a did:pkh identifier for an address on the given CAIP-2 chain
// Reference: https://github.com/w3c-ccg/did-pkh
func NewDID(address common.Address, chain string) DID {
	return DID(fmt.Sprintf("did:pkh:%s:%s", strings.ToLower(chain), strings.ToLower(address.Hex())))
}

// String returns the string representation of the DID
func (d DID) String() string {
	return string(d)
}

// Address extracts the account address of an eip155 did:pkh
func (d DID) Address() (common.Address, error) {
	parts := strings.Split(string(d), ":")
	if len(parts) != 5 || parts[0] != "did" || parts[1] != "pkh" || parts[2] != "eip155" {
		return common.Address{}, fmt.Errorf("%w: unsupported DID %q", ErrInvalidIdentity, d)
	}
	if !common.IsHexAddress(parts[4]) {
		return common.Address{}, fmt.Errorf("%w: invalid DID address %q", ErrInvalidIdentity, parts[4])
	}
	return common.HexToAddress(parts[4]), nil
}

// ParseIdentity accepts either a hex address or an eip155 did:pkh
func ParseIdentity(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "did:") {
		return DID(strings.ToLower(s)).Address()
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidIdentity, s)
	}
	return common.HexToAddress(s), nil
}

// IsZeroIdentity reports whether the address is the null identity
func IsZeroIdentity(address common.Address) bool {
	return address == common.Address{}
}

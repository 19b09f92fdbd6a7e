package domain

const (
	// ZERO_ADDRESS is the null identity
	ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// DEFAULT_CHAIN is used when a DID is built for a bare address
	DEFAULT_CHAIN = "eip155:1"
)

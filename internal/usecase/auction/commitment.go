package usecase

import (
	"bytes"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
)

// ComputeBidCommitment binds an amount to a bidder:
// keccak256(le64(amount) || salt || bidder_id). The salt keeps equal amounts
// from colliding across bidders.
func ComputeBidCommitment(amount uint64, salt []byte, bidderID string) []byte {
	amountBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(amountBytes, amount)
	return crypto.Keccak256(amountBytes, salt, []byte(bidderID))
}

// VerifyBidCommitment checks a reveal against the stored commitment hash.
func VerifyBidCommitment(commitment []byte, amount uint64, salt []byte, bidderID string) bool {
	return bytes.Equal(commitment, ComputeBidCommitment(amount, salt, bidderID))
}

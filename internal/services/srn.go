package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateSRN creates a citizen-visible reference id: "SRN-" followed by 8
// decimal digits, first digit nonzero. There is no collision check here; the
// unique constraint on the srn column rejects the rare duplicate and the
// submission fails without retry.
func GenerateSRN() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(90000000))
	return fmt.Sprintf("SRN-%d", 10000000+n.Int64())
}

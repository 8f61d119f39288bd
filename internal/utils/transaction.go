package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateTransactionID returns an identifier recorded on a completed order.
// The timestamp prefix makes ids sort in creation order; the random suffix
// separates ids minted within the same millisecond. Uniqueness is best effort.
func GenerateTransactionID(now time.Time) string {
	now = now.UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf("TX-%s-%03d-%04d", datePart, millis, n.Int64())
}

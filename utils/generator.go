package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const referenceSuffixLength = 6
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePaymentReference builds a local reference id for manually recorded
// payments, e.g. PAY-1735689600-X4T9QB. STK push payments use the provider's
// CheckoutRequestID instead.
var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

func GeneratePaymentReference() string {
	b := make([]byte, referenceSuffixLength)
	for i := range b {
		b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
	}

	return fmt.Sprintf("PAY-%d-%s", time.Now().Unix(), string(b))
}

package services

import (
	"crypto/rand"
	"math/big"
)

const (
	orderNoPrefix   = "NSB"
	orderNoLen      = 6
	orderNoAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewOrderNo returns an order number like "NSB7K2Q9X". Uses crypto/rand.
func NewOrderNo() (string, error) {
	suffix := make([]byte, orderNoLen)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderNoAlphabet))))
		if err != nil {
			return "", err
		}
		suffix[i] = orderNoAlphabet[n.Int64()]
	}
	return orderNoPrefix + string(suffix), nil
}

package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const urlSafeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ShareLinkLength is the default token length. 62^10 keeps the collision
// probability negligible for any realistic number of reviews.
const ShareLinkLength = 10

// GenerateShareLink returns a random URL-safe token of n characters.
// n values below ShareLinkLength are bumped up to it.
func GenerateShareLink(n int) (string, error) {
	if n < ShareLinkLength {
		n = ShareLinkLength
	}

	var sb strings.Builder
	sb.Grow(n)
	for range n {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(urlSafeChars))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(urlSafeChars[num.Int64()])
	}

	return sb.String(), nil
}

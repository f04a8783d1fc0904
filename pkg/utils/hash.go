// pkg/utils/hash.go
package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// MD5Hash generates MD5 hash of input string
func MD5Hash(input string) string {
	hash := md5.Sum([]byte(input))
	return hex.EncodeToString(hash[:])
}

package utils

import (
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"strconv"
)

func MD5(str string) string {
	h := md5.New() //nolint:gosec
	h.Write([]byte(str))
	return hex.EncodeToString(h.Sum(nil))
}

// GravatarURL returns the avatar image for an email address.
func GravatarURL(email string, size int) string {
	if size <= 0 {
		size = 48
	}
	return "https://www.gravatar.com/avatar/" + MD5(NormalizeEmail(email)) + "?d=identicon&s=" + strconv.Itoa(size)
}

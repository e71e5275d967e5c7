package utils

import (
	"math/rand"
	"net/url"
	"strings"
)

const uiAvatarsBaseURL = "https://ui-avatars.com/api/"

var avatarColors = []string{
	"FF6B6B", "4ECDC4", "45B7D1", "96CEB4", "FFEAA7", "DDA0DD",
	"98D8C8", "F7DC6F", "BB8FCE", "85C1E9", "F8C471", "82E0AA",
}

// GenerateUserAvatar builds an initials-based avatar URL for a new user.
func GenerateUserAvatar(userName string) string {
	q := url.Values{}
	q.Set("name", avatarInitials(userName))
	q.Set("size", "200")
	q.Set("background", avatarColors[rand.Intn(len(avatarColors))])
	q.Set("color", "ffffff")
	q.Set("format", "png")
	q.Set("bold", "true")
	q.Set("font-size", "0.5")
	return uiAvatarsBaseURL + "?" + q.Encode()
}

func avatarInitials(userName string) string {
	words := strings.Fields(userName)
	if len(words) == 0 {
		return "U"
	}
	// Slice runes, not bytes, so multibyte names keep valid initials.
	if len(words) == 1 {
		r := []rune(words[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	}
	first := []rune(words[0])
	second := []rune(words[1])
	return strings.ToUpper(string(first[0]) + string(second[0]))
}

// File: internal/slugify/slugify.go

// Package slugify derives URL-safe unique identifiers from chat display
// names, including transliteration of Cyrillic names and collision-resistant
// slug resolution.
package slugify

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"regexp"
	"strings"
)

const maxSlugWords = 3

// cyrToLat maps Cyrillic characters to Latin equivalents.
var cyrToLat = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "h", 'ґ': "g", 'д': "d", 'е': "e",
	'є': "ie", 'ж': "zh", 'з': "z", 'и': "y", 'і': "i", 'ї': "i", 'й': "y",
	'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r",
	'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ь': "", 'ю': "iu", 'я': "ia",
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9 ]`)

// Transliterate converts a Cyrillic string into lowercase Latin characters.
func Transliterate(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if lat, ok := cyrToLat[r]; ok {
			b.WriteString(lat)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Slugify generates a safe slug from a chat name: transliteration, character
// filtering, and a limit of the first few words. Names that produce nothing
// usable fall back to a short hash of the original input.
func Slugify(text string) string {
	normalized := nonSlugChars.ReplaceAllString(Transliterate(text), "")
	words := strings.Fields(normalized)
	if len(words) > maxSlugWords {
		words = words[:maxSlugWords]
	}
	slug := strings.Join(words, "_")

	if slug == "" {
		log.Printf("[SLUG|FALLBACK] Generated hash slug for empty result from input %q.", text)
		return "chat_" + shortHash(text, 0)
	}
	return slug
}

// ExistsFunc reports whether a candidate slug is already taken.
type ExistsFunc func(slug string) (bool, error)

// GenerateUniqueSlug resolves a slug collision by appending a short hash
// suffix derived from the seed, retrying with a varied suffix until an
// unused slug is found.
func GenerateUniqueSlug(baseSlug, seed string, exists ExistsFunc) (string, error) {
	const maxTries = 10
	for i := 0; i < maxTries; i++ {
		candidate := fmt.Sprintf("%s_%s", baseSlug, shortHash(seed, i))
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			if i > 0 {
				log.Printf("[SLUG|RESOLVE] Collision detected, resolved to %q.", candidate)
			}
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate unique slug for %q after %d attempts", baseSlug, maxTries)
}

func shortHash(seed string, round int) string {
	sum := sha1.Sum([]byte(seed + fmt.Sprint(round)))
	return hex.EncodeToString(sum[:])[:6]
}

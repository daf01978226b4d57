package identifier

import (
	"strings"
	"unicode"
)

// Slugify bir etkinlik başlığını URL güvenli slug'a çevirir:
// küçük harf, alfanümerik olmayan diziler tek '-' ile değiştirilir,
// baştaki/sondaki ayraçlar atılır. "My Event!!" -> "my-event".
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastWasSep := true // baştaki ayracı engellemek için true başlar
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			// ASCII dışı harfler URL'de kalabilir ama slug'ı sade tutmak
			// için yaygın Türkçe karakterleri ASCII karşılığına indirgeriz.
			b.WriteRune(asciiFold(r))
			lastWasSep = false
			continue
		}
		if !lastWasSep {
			b.WriteByte('-')
			lastWasSep = true
		}
	}

	return strings.Trim(b.String(), "-")
}

// asciiFold Türkçe karakterleri en yakın ASCII harfe eşler.
func asciiFold(r rune) rune {
	switch r {
	case 'ç':
		return 'c'
	case 'ğ':
		return 'g'
	case 'ı':
		return 'i'
	case 'ö':
		return 'o'
	case 'ş':
		return 's'
	case 'ü':
		return 'u'
	default:
		return r
	}
}

package utils

import "strings"

// Slugify converts a title to a lowercase URL-safe slug: runs of
// non-alphanumeric characters collapse to single hyphens and the result
// is trimmed to maxLength without a dangling hyphen. Empty input slugs
// to "item".
func Slugify(input string, maxLength int) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range input {
		switch {
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
			fallthrough
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}

	slug := b.String()
	if slug == "" {
		return "item"
	}
	if maxLength > 0 && len(slug) > maxLength {
		slug = strings.TrimRight(slug[:maxLength], "-")
	}
	return slug
}

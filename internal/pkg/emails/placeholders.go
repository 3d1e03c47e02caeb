package emails

import "strings"

// ResolvePlaceholders substitutes {placeholder} tokens in a template string.
func ResolvePlaceholders(template string, placeholders map[string]string) string {
	if len(placeholders) == 0 {
		return template
	}
	pairs := make([]string, 0, len(placeholders)*2)
	for token, value := range placeholders {
		pairs = append(pairs, token, value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

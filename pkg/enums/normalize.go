package enums

import "strings"

// normalizeKey collapses raw CSV/user input into a lookup key: lowercase with
// spaces, hyphens and underscores removed, so "In-Process", "in process" and
// "INPROCESS" all collide onto "inprocess".
func normalizeKey(value string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "_", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(value)))
}

// Package orders provides order reference parsing used by the chat
// classifier when users ask about order status or payment.
package orders

import (
	"regexp"
	"strings"
)

// Order references look like ORD-7F3K9Q: an "ORD-" prefix followed by
// 6 to 10 base36 characters. Users frequently type them lowercased or
// prefixed with '#', so parsing normalizes both.
var (
	orderIDRE = regexp.MustCompile(`(?i)#?\b(ORD-[0-9A-Z]{6,10})\b`)
	validIDRE = regexp.MustCompile(`^ORD-[0-9A-Z]{6,10}$`)
	bareRefRE = regexp.MustCompile(`(?i)#([0-9A-Z]{6,10})\b`)
)

// ParseOrderIDFromText scans free text for an order reference and
// returns it in canonical uppercase form, or "" when none is present.
func ParseOrderIDFromText(text string) string {
	if m := orderIDRE.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	// A bare "#7F3K9Q" is treated as shorthand for the full reference.
	if m := bareRefRE.FindStringSubmatch(text); m != nil {
		return "ORD-" + strings.ToUpper(m[1])
	}
	return ""
}

// IsValidOrderID reports whether id is a canonical order reference.
func IsValidOrderID(id string) bool {
	return validIDRE.MatchString(id)
}

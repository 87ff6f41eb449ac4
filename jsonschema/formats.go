package jsonschema

import (
	"net/mail"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format names understood by Generate and the validator.
const (
	FormatDateTime = "date-time"
	FormatDate     = "date"
	FormatTime     = "time"
	FormatEmail    = "email"
	FormatUUID     = "uuid"
	FormatIPv4     = "ipv4"
	FormatIPv6     = "ipv6"
	FormatURI      = "uri"
)

// detection order: the more specific shapes first
var formatOrder = []string{
	FormatDateTime, FormatDate, FormatTime, FormatUUID,
	FormatIPv4, FormatIPv6, FormatEmail, FormatURI,
}

var formatCheckers = map[string]func(string) bool{
	FormatDateTime: isDateTime,
	FormatDate:     isDate,
	FormatTime:     isTime,
	FormatEmail:    isEmail,
	FormatUUID:     isUUID,
	FormatIPv4:     isIPv4,
	FormatIPv6:     isIPv6,
	FormatURI:      isURI,
}

// DetectFormat returns the first known format s conforms to, or "".
func DetectFormat(s string) string {
	for _, name := range formatOrder {
		if formatCheckers[name](s) {
			return name
		}
	}
	return ""
}

// CheckFormat reports whether s conforms to format. Unknown formats are
// accepted.
func CheckFormat(format, s string) bool {
	fn, ok := formatCheckers[format]
	if !ok {
		return true
	}
	return fn(s)
}

// KnownFormat reports whether format has a checker.
func KnownFormat(format string) bool {
	_, ok := formatCheckers[format]
	return ok
}

func isDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

func isDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func isTime(s string) bool {
	_, err := time.Parse("15:04:05.999999999Z07:00", s)
	return err == nil
}

func isEmail(s string) bool {
	if !strings.Contains(s, "@") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}

// isUUID accepts only the canonical 8-4-4-4-12 form; uuid.Parse alone also
// takes urn: and braced spellings.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func isIPv4(s string) bool {
	a, err := netip.ParseAddr(s)
	return err == nil && a.Is4()
}

func isIPv6(s string) bool {
	a, err := netip.ParseAddr(s)
	return err == nil && a.Is6() && a.Zone() == ""
}

func isURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

package converter

import (
	"fmt"
	"strings"
)

// SplitTimeRange splits "HHMM-HHMM" and applies ClampBegin and ClampEnd.
func SplitTimeRange(s string) (begin, end string, err error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("want HHMM-HHMM")
	}
	for _, p := range parts {
		if !isClock(p) {
			return "", "", fmt.Errorf("%q is not a 4-digit time", p)
		}
	}
	return ClampBegin(parts[0]), ClampEnd(parts[1]), nil
}

// ClampBegin moves a midnight start to "0001".
func ClampBegin(hhmm string) string {
	if hhmm == "0000" {
		return "0001"
	}
	return hhmm
}

// ClampEnd moves a midnight end to "2359".
func ClampEnd(hhmm string) string {
	if hhmm == "2400" {
		return "2359"
	}
	return hhmm
}

func isClock(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Classify returns the classification tag for a language code.
func Classify(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" || strings.HasPrefix(lang, "-") {
		return ClassOther
	}
	return ClassSpoken
}

// ResolveRelay extracts the country and site a broadcast is transmitted
// from. Remarks of the form "/USA-gr" override the country; anything else
// is taken as the site code of itu.
func ResolveRelay(itu, remarks string) (country, site string) {
	itu = strings.TrimSpace(itu)
	remarks = strings.TrimSpace(remarks)
	_, rest, found := strings.Cut(remarks, "/")
	if !found {
		return itu, remarks
	}
	country, site, _ = strings.Cut(rest, "-")
	if country == "" {
		country = itu
	}
	return country, site
}

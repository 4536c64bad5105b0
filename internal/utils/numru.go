package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d\.,\-]`)

// ParsePrice parses catalog price cells: "450", "1.234,50 TL", "₺1 234,5",
// "$12.99", "1,299.00". The last of '.' or ',' is taken as the decimal mark
// when both are present; a lone ',' is decimal unless it groups thousands.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.NewReplacer("\u00A0", "", "\u202F", "", " ", "", "\t", "").Replace(s)
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." || s == "," {
		return 0, false
	}

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-comma-1 != 3 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

package services

import "strconv"

// FormatMoney renders integer currency units as "Rp1,500,000".
func FormatMoney(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "Rp-" + string(out)
	}
	return "Rp" + string(out)
}

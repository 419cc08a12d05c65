package numutil

import "strconv"

// Integer is any integer type IntWithCommas can format.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// IntWithCommas returns a string representation of an integer with commas.
//
// Example:
//
//	12345 -> "12,345"
func IntWithCommas[T Integer](i T) string {
	var digits string
	if i < 0 {
		digits = strconv.FormatInt(int64(i), 10)
	} else {
		digits = strconv.FormatUint(uint64(i), 10)
	}

	sign := ""
	if digits[0] == '-' {
		sign, digits = "-", digits[1:]
	}

	out := make([]byte, 0, len(digits)+len(digits)/3)
	for idx := range len(digits) {
		if idx > 0 && (len(digits)-idx)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[idx])
	}

	return sign + string(out)
}

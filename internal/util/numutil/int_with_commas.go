package numutil

import "strconv"

// IntWithCommas returns a string representation of an integer with commas.
//
// Example:
//
//	12345 -> "12,345"
func IntWithCommas[T ~int | ~int64](i T) string {
	digits := strconv.FormatInt(int64(i), 10)

	sign := ""
	if digits[0] == '-' {
		sign, digits = "-", digits[1:]
	}

	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	out := []byte(sign + digits[:head])
	for pos := head; pos < len(digits); pos += 3 {
		out = append(out, ',')
		out = append(out, digits[pos:pos+3]...)
	}
	return string(out)
}

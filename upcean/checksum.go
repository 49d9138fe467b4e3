package upcean

import scanline "github.com/scanlinehq/scanline"

// CheckStandardChecksum validates a digit string ending in its check
// digit against the standard UPC/EAN weighted mod-10 rule: working left
// from the digit beside the check digit, digits are weighted 3, 1, 3, 1,
// and the weighted sum plus the check digit must be divisible by ten.
// Returns ErrFormat when s contains a non-digit character or is empty,
// ErrChecksum when the digits are well formed but the check fails.
func CheckStandardChecksum(s string) error {
	if len(s) == 0 {
		return scanline.ErrFormat
	}
	check := int(s[len(s)-1] - '0')
	if check < 0 || check > 9 {
		return scanline.ErrFormat
	}
	want, err := StandardCheckDigit(s[:len(s)-1])
	if err != nil {
		return err
	}
	if want != check {
		return scanline.ErrChecksum
	}
	return nil
}

// StandardCheckDigit computes the check digit for a string of data digits
// (without the check digit). Returns ErrFormat on non-digit input.
func StandardCheckDigit(s string) (int, error) {
	sum := 0
	for i := len(s) - 1; i >= 0; i -= 2 {
		d := int(s[i] - '0')
		if d < 0 || d > 9 {
			return 0, scanline.ErrFormat
		}
		sum += d
	}
	sum *= 3
	for i := len(s) - 2; i >= 0; i -= 2 {
		d := int(s[i] - '0')
		if d < 0 || d > 9 {
			return 0, scanline.ErrFormat
		}
		sum += d
	}
	return (1000 - sum) % 10, nil
}

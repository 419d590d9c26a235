package sequence

import (
	"fmt"
	"strings"
)

// DefaultBarcodePrefix is the in-store (restricted circulation) EAN-13 range.
const DefaultBarcodePrefix = "200"

// FormatSKU renders a sequence as ART-000001.
func FormatSKU(seq int64) string {
	return fmt.Sprintf("ART-%06d", seq)
}

// FormatBarcode builds an EAN-13 code from a three digit prefix and the
// sequence zero padded to nine digits, followed by the check digit.
func FormatBarcode(seq int64, prefix string) (string, error) {
	if prefix == "" {
		prefix = DefaultBarcodePrefix
	}
	if len(prefix) != 3 || strings.Trim(prefix, "0123456789") != "" {
		return "", fmt.Errorf("barcode prefix %q must be three digits", prefix)
	}
	if seq < 0 || seq > 999_999_999 {
		return "", fmt.Errorf("sequence %d does not fit a nine digit barcode body", seq)
	}

	body := fmt.Sprintf("%s%09d", prefix, seq)
	return body + string(rune('0'+CheckDigit(body))), nil
}

// CheckDigit computes the EAN-13 check digit of a twelve digit body: digits
// at even positions weigh 1, odd positions weigh 3.
func CheckDigit(body string) int {
	sum := 0
	for i, r := range body {
		d := int(r - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return (10 - sum%10) % 10
}

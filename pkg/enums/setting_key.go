package enums

import "fmt"

// SettingKey identifies a singleton settings document.
type SettingKey string

const (
	SettingKeyMedia   SettingKey = "media"
	SettingKeyContact SettingKey = "contact"
)

var validSettingKeys = []SettingKey{
	SettingKeyMedia,
	SettingKeyContact,
}

// String implements fmt.Stringer.
func (k SettingKey) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SettingKey.
func (k SettingKey) IsValid() bool {
	for _, candidate := range validSettingKeys {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSettingKey converts raw input into a SettingKey.
func ParseSettingKey(value string) (SettingKey, error) {
	for _, candidate := range validSettingKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid setting key %q", value)
}

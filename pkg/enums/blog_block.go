package enums

import "fmt"

// BlogBlockType is the kind of a blog content block.
type BlogBlockType string

const (
	BlogBlockParagraph BlogBlockType = "paragraph"
	BlogBlockHeading   BlogBlockType = "heading"
	BlogBlockImage     BlogBlockType = "image"
	BlogBlockList      BlogBlockType = "list"
)

var validBlogBlockTypes = []BlogBlockType{
	BlogBlockParagraph,
	BlogBlockHeading,
	BlogBlockImage,
	BlogBlockList,
}

// String implements fmt.Stringer.
func (b BlogBlockType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BlogBlockType.
func (b BlogBlockType) IsValid() bool {
	for _, candidate := range validBlogBlockTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBlogBlockType converts raw input into a BlogBlockType.
func ParseBlogBlockType(value string) (BlogBlockType, error) {
	for _, candidate := range validBlogBlockTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid blog block type %q", value)
}

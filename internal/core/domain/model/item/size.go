package item

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Size is the physical size class of an item.
type Size int

const (
	// UnknownSize catches uninitialized values.
	UnknownSize Size = iota
	Small
	Medium
	Large
)

// Sizes lists every valid size in ascending order.
func Sizes() []Size {
	return []Size{Small, Medium, Large}
}

func getSizeStrings() map[Size]string {
	return map[Size]string{
		UnknownSize: "unknown",
		Small:       "small",
		Medium:      "medium",
		Large:       "large",
	}
}

// ParseSize accepts the lower-case names used on the wire ("small", "medium", "large").
func ParseSize(s string) (Size, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, size := range Sizes() {
		if size.String() == needle {
			return size, nil
		}
	}
	return UnknownSize, errs.NewValueIsInvalidErrorWithCause("item size", fmt.Errorf("%q is not a valid size", s))
}

func (s Size) String() string {
	if str, ok := getSizeStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Size) Validate() error {
	if s < Small || s > Large {
		return errs.NewValueIsInvalidErrorWithCause("item size", fmt.Errorf("%d is not a valid size", s))
	}
	return nil
}

// IsLarge reports whether the item needs trailer capacity.
func (s Size) IsLarge() bool {
	return s == Large
}

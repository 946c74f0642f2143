package catalog

import (
	"sort"
	"strings"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
)

// Size is a garment size drawn from an ordered enumeration
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// AllSizes lists every size in ascending order
var AllSizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

var sizeRank = map[Size]int{
	SizeXS:  0,
	SizeS:   1,
	SizeM:   2,
	SizeL:   3,
	SizeXL:  4,
	SizeXXL: 5,
}

// ParseSize normalises s and checks it against the enumeration
func ParseSize(s string) (Size, error) {
	size := Size(strings.ToUpper(strings.TrimSpace(s)))
	if !size.IsValid() {
		return "", shared.NewDomainError("INVALID_SIZE", "Size must be one of XS, S, M, L, XL, XXL")
	}
	return size, nil
}

// IsValid checks if the size is part of the enumeration
func (s Size) IsValid() bool {
	_, ok := sizeRank[s]
	return ok
}

// String returns the string representation of Size
func (s Size) String() string {
	return string(s)
}

// Less orders sizes from XS to XXL
func (s Size) Less(other Size) bool {
	return sizeRank[s] < sizeRank[other]
}

// ParseSizes parses, deduplicates and orders a list of sizes
func ParseSizes(values []string) ([]Size, error) {
	seen := make(map[Size]bool, len(values))
	sizes := make([]Size, 0, len(values))
	for _, v := range values {
		size, err := ParseSize(v)
		if err != nil {
			return nil, err
		}
		if seen[size] {
			continue
		}
		seen[size] = true
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i].Less(sizes[j]) })
	return sizes, nil
}

// NormalizeColor trims and lower-cases a color name
func NormalizeColor(color string) string {
	return strings.ToLower(strings.TrimSpace(color))
}

// NormalizeColors normalises and deduplicates colors, preserving first-seen order
func NormalizeColors(values []string) ([]string, error) {
	seen := make(map[string]bool, len(values))
	colors := make([]string, 0, len(values))
	for _, v := range values {
		c := NormalizeColor(v)
		if c == "" {
			return nil, shared.NewDomainError("INVALID_COLOR", "Color cannot be empty")
		}
		if len(c) > 50 {
			return nil, shared.NewDomainError("INVALID_COLOR", "Color cannot exceed 50 characters")
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		colors = append(colors, c)
	}
	return colors, nil
}

package hobby

import (
	"strings"

	"github.com/hobbylab/hobbylab-core/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATEGORY
// ══════════════════════════════════════════════════════════════════════════════

// Category is the closed set of hobby categories.
type Category int

const (
	CategoryArt Category = iota
	CategoryMusic
	CategorySports
	CategoryCoding
	CategoryWriting
	CategoryGardening
	CategoryCooking
	CategoryCrafts
	CategoryPhotography
	CategoryReading
	CategoryGaming
	CategoryOther

	categoryCount
)

// CategoryInfo is the static presentation data of a category.
type CategoryInfo struct {
	Name  string
	Icon  string // SF Symbol name
	Color string // hex, used for charts
}

// categoryTable is indexed by Category. Adding a variant without a row
// leaves an empty Name, which TestCategoryTableComplete catches.
var categoryTable = [categoryCount]CategoryInfo{
	CategoryArt:         {"Art", "paintbrush.fill", "#E91E63"},
	CategoryMusic:       {"Music", "music.note", "#9C27B0"},
	CategorySports:      {"Sports", "figure.run", "#4CAF50"},
	CategoryCoding:      {"Coding", "chevron.left.forwardslash.chevron.right", "#607D8B"},
	CategoryWriting:     {"Writing", "pencil.line", "#795548"},
	CategoryGardening:   {"Gardening", "leaf.fill", "#8BC34A"},
	CategoryCooking:     {"Cooking", "fork.knife", "#FF9800"},
	CategoryCrafts:      {"Crafts", "scissors", "#FFC107"},
	CategoryPhotography: {"Photography", "camera.fill", "#00BCD4"},
	CategoryReading:     {"Reading", "book.fill", "#2196F3"},
	CategoryGaming:      {"Gaming", "gamecontroller.fill", "#F44336"},
	CategoryOther:       {"Other", "star.fill", "#9E9E9E"},
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := Category(0); c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// IsValid reports whether c is a declared variant.
func (c Category) IsValid() bool {
	return c >= 0 && c < categoryCount
}

// Info returns the table row for c. Unknown values map to Other.
func (c Category) Info() CategoryInfo {
	if !c.IsValid() {
		return categoryTable[CategoryOther]
	}
	return categoryTable[c]
}

// String returns the display name.
func (c Category) String() string { return c.Info().Name }

// Icon returns the category symbol.
func (c Category) Icon() string { return c.Info().Icon }

// Color returns the chart color.
func (c Category) Color() string { return c.Info().Color }

// ParseCategory resolves a display name, case-insensitively.
func ParseCategory(name string) (Category, error) {
	for c := Category(0); c < categoryCount; c++ {
		if strings.EqualFold(categoryTable[c].Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return CategoryOther, shared.ErrUnknownCategory
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// PRIORITY
// ══════════════════════════════════════════════════════════════════════════════

// Priority is the closed set of task priorities.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh

	priorityCount
)

var priorityTable = [priorityCount]struct {
	Name  string
	Color string
}{
	PriorityLow:    {"Low", "#4CAF50"},
	PriorityMedium: {"Medium", "#FF9800"},
	PriorityHigh:   {"High", "#F44336"},
}

// IsValid reports whether p is a declared variant.
func (p Priority) IsValid() bool {
	return p >= 0 && p < priorityCount
}

// String returns the display name. Unknown values render as Medium.
func (p Priority) String() string {
	if !p.IsValid() {
		return priorityTable[PriorityMedium].Name
	}
	return priorityTable[p].Name
}

// Color returns the display color.
func (p Priority) Color() string {
	if !p.IsValid() {
		return priorityTable[PriorityMedium].Color
	}
	return priorityTable[p].Color
}

// ParsePriority resolves a display name, case-insensitively.
func ParsePriority(name string) (Priority, error) {
	for p := Priority(0); p < priorityCount; p++ {
		if strings.EqualFold(priorityTable[p].Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return PriorityMedium, shared.ErrUnknownPriority
}

// MarshalText encodes the priority by name.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a priority name.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

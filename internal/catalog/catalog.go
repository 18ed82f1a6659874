// Package catalog holds the fixed roast, size, and frequency options and the
// pricing rules derived from them. Catalogs are compiled-in constants, never
// user-supplied; an unresolved id is a programming error.
package catalog

import "fmt"

// Roast is a coffee roast offering.
type Roast struct {
	ID   string
	Name string
	Note string
}

// Size is a bag size with its base price in currency units.
type Size struct {
	ID    string
	Label string
	Price float64
}

// Frequency is a delivery cadence with its discount fraction in [0,1).
type Frequency struct {
	ID       string
	Label    string
	Discount float64
}

var roasts = []Roast{
	{ID: "first-light", Name: "First Light", Note: "Light Roast"},
	{ID: "house-medium", Name: "House Crafted Small Batch", Note: "Medium Roast"},
	{ID: "admirals-reserve", Name: "Admiral's Reserve", Note: "Dark Roast"},
}

var sizes = []Size{
	{ID: "16oz", Label: "16 oz", Price: 18},
	{ID: "2lb", Label: "2 lb", Price: 32},
}

var frequencies = []Frequency{
	{ID: "weekly", Label: "Weekly", Discount: 0.15},
	{ID: "biweekly", Label: "Every 2 Weeks", Discount: 0.10},
	{ID: "monthly", Label: "Monthly", Discount: 0.05},
}

// Roasts returns the roast catalog in display order.
func Roasts() []Roast { return roasts }

// Sizes returns the size catalog in display order.
func Sizes() []Size { return sizes }

// Frequencies returns the frequency catalog in display order.
func Frequencies() []Frequency { return frequencies }

// RoastByID resolves a roast id.
func RoastByID(id string) (Roast, bool) {
	for _, r := range roasts {
		if r.ID == id {
			return r, true
		}
	}
	return Roast{}, false
}

// SizeByID resolves a size id.
func SizeByID(id string) (Size, bool) {
	for _, s := range sizes {
		if s.ID == id {
			return s, true
		}
	}
	return Size{}, false
}

// FrequencyByID resolves a frequency id.
func FrequencyByID(id string) (Frequency, bool) {
	for _, f := range frequencies {
		if f.ID == id {
			return f, true
		}
	}
	return Frequency{}, false
}

// MustSize resolves a size id and panics on an unknown id.
func MustSize(id string) Size {
	s, ok := SizeByID(id)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown size id %q", id))
	}
	return s
}

// MustFrequency resolves a frequency id and panics on an unknown id.
func MustFrequency(id string) Frequency {
	f, ok := FrequencyByID(id)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown frequency id %q", id))
	}
	return f
}

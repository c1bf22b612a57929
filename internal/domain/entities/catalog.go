package entities

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// AddOnKind discriminates how an add-on is billed.

type AddOnKind string

const (
	AddOnPerPerson AddOnKind = "per_person"
	AddOnPerEvent  AddOnKind = "per_event"
)

// Catalog item variants. Each row carries an explicit kind when persisted
// (see the repository layer); in memory the variants are separate types.

type Package struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	PPP  float64 `json:"ppp"` // price per person
}

type AddOn struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Kind  AddOnKind `json:"kind"`
	Price float64   `json:"price"`
}

type Rental struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	QtyPerGuests int     `json:"qty_per_guests"` // guests needed to require one extra unit
}

// UnitsFor returns how many rental units a guest count requires. A selected
// rental always bills at least one unit.
func (r Rental) UnitsFor(guests int) int {
	if r.QtyPerGuests < 1 {
		return 1
	}
	units := int(math.Ceil(float64(guests) / float64(r.QtyPerGuests)))
	if units < 1 {
		return 1
	}
	return units
}

// Settings holds the pricing knobs merged over hard-coded defaults. All fields
// are guaranteed populated after normalization.

type Settings struct {
	PerMileRate       float64 `json:"per_mile_rate"`
	ServiceFeePct     float64 `json:"service_fee_pct"`
	TaxRate           float64 `json:"tax_rate"`
	DepositPct        float64 `json:"deposit_pct"`
	QuoteValidityDays int     `json:"quote_validity_days"`
	ServerRate        float64 `json:"server_rate"`
	ChefRate          float64 `json:"chef_rate"`
}

type Catalog struct {
	Packages []Package `json:"packages"`
	Addons   []AddOn   `json:"addons"`
	Rentals  []Rental  `json:"rentals"`
	Settings Settings  `json:"settings"`
}

// RawCatalog is the loosely-shaped form a catalog arrives in (API payloads,
// persisted rows, seed data). Numeric fields are `any` on purpose: callers may
// send numbers, numeric strings, or garbage, and normalization must absorb all
// of it without failing.

type RawPackage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	PPP  any    `json:"ppp"`
}

type RawAddOn struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Price any    `json:"price"`
}

type RawRental struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        any    `json:"price"`
	QtyPerGuests any    `json:"qty_per_guests"`
}

type RawCatalog struct {
	Packages []RawPackage   `json:"packages"`
	Addons   []RawAddOn     `json:"addons"`
	Rentals  []RawRental    `json:"rentals"`
	Settings map[string]any `json:"settings"`
}

// Default catalog shipped with the service. Used to seed the local backend and
// as the fallback when a backend holds no catalog rows yet.

func DefaultPackages() []Package {
	return []Package{
		{ID: "classic", Name: "Classic", PPP: 18},
		{ID: "premium", Name: "Premium", PPP: 24},
		{ID: "deluxe", Name: "Deluxe", PPP: 32},
	}
}

func DefaultAddons() []AddOn {
	return []AddOn{
		{ID: "dessert", Name: "Dessert", Kind: AddOnPerPerson, Price: 3},
		{ID: "tea", Name: "Sweet Tea", Kind: AddOnPerPerson, Price: 1.5},
		{ID: "coffee", Name: "Coffee Station", Kind: AddOnPerEvent, Price: 95},
	}
}

func DefaultRentals() []Rental {
	return []Rental{
		{ID: "linens", Name: "Linens", Price: 8, QtyPerGuests: 8},
		{ID: "chafers", Name: "Chafers", Price: 12, QtyPerGuests: 40},
	}
}

func DefaultSettings() Settings {
	return Settings{
		PerMileRate:       0.7,
		ServiceFeePct:     0.2,
		TaxRate:           0.1,
		DepositPct:        0.5,
		QuoteValidityDays: 30,
		ServerRate:        22,
		ChefRate:          28,
	}
}

func DefaultCatalog() Catalog {
	return Catalog{
		Packages: DefaultPackages(),
		Addons:   DefaultAddons(),
		Rentals:  DefaultRentals(),
		Settings: DefaultSettings(),
	}
}

// NormalizeCatalog turns a raw catalog into a fully-populated one. It is total:
// missing arrays fall back to the defaults, non-numeric prices coerce to zero,
// unknown add-on kinds collapse to per-person, and settings merge over the
// hard-coded defaults so no field is ever left unset.
func NormalizeCatalog(raw RawCatalog) Catalog {
	c := Catalog{
		Settings: normalizeSettings(raw.Settings),
	}

	if raw.Packages == nil {
		c.Packages = DefaultPackages()
	} else {
		c.Packages = make([]Package, 0, len(raw.Packages))
		for _, p := range raw.Packages {
			c.Packages = append(c.Packages, Package{
				ID:   p.ID,
				Name: p.Name,
				PPP:  toNumber(p.PPP),
			})
		}
	}

	if raw.Addons == nil {
		c.Addons = DefaultAddons()
	} else {
		c.Addons = make([]AddOn, 0, len(raw.Addons))
		for _, a := range raw.Addons {
			kind := AddOnPerPerson
			if a.Kind == string(AddOnPerEvent) {
				kind = AddOnPerEvent
			}
			c.Addons = append(c.Addons, AddOn{
				ID:    a.ID,
				Name:  a.Name,
				Kind:  kind,
				Price: toNumber(a.Price),
			})
		}
	}

	if raw.Rentals == nil {
		c.Rentals = DefaultRentals()
	} else {
		c.Rentals = make([]Rental, 0, len(raw.Rentals))
		for _, r := range raw.Rentals {
			qty := int(toNumber(r.QtyPerGuests))
			if qty < 1 {
				qty = 1
			}
			c.Rentals = append(c.Rentals, Rental{
				ID:           r.ID,
				Name:         r.Name,
				Price:        toNumber(r.Price),
				QtyPerGuests: qty,
			})
		}
	}

	return c
}

// ToStorageForm converts a normalized catalog back to its persistence shape:
// raw ratios and prices only, nothing derived. Normalizing the result yields
// the same catalog, so the round trip is idempotent.
func (c Catalog) ToStorageForm() RawCatalog {
	raw := RawCatalog{
		Packages: make([]RawPackage, 0, len(c.Packages)),
		Addons:   make([]RawAddOn, 0, len(c.Addons)),
		Rentals:  make([]RawRental, 0, len(c.Rentals)),
		Settings: map[string]any{
			"per_mile_rate":       c.Settings.PerMileRate,
			"service_fee_pct":     c.Settings.ServiceFeePct,
			"tax_rate":            c.Settings.TaxRate,
			"deposit_pct":         c.Settings.DepositPct,
			"quote_validity_days": float64(c.Settings.QuoteValidityDays),
			"server_rate":         c.Settings.ServerRate,
			"chef_rate":           c.Settings.ChefRate,
		},
	}
	for _, p := range c.Packages {
		raw.Packages = append(raw.Packages, RawPackage{ID: p.ID, Name: p.Name, PPP: p.PPP})
	}
	for _, a := range c.Addons {
		raw.Addons = append(raw.Addons, RawAddOn{ID: a.ID, Name: a.Name, Kind: string(a.Kind), Price: a.Price})
	}
	for _, r := range c.Rentals {
		raw.Rentals = append(raw.Rentals, RawRental{ID: r.ID, Name: r.Name, Price: r.Price, QtyPerGuests: float64(r.QtyPerGuests)})
	}
	return raw
}

func normalizeSettings(raw map[string]any) Settings {
	s := DefaultSettings()
	if raw == nil {
		return s
	}
	if v, ok := numberAt(raw, "per_mile_rate"); ok {
		s.PerMileRate = v
	}
	if v, ok := numberAt(raw, "service_fee_pct"); ok {
		s.ServiceFeePct = v
	}
	if v, ok := numberAt(raw, "tax_rate"); ok {
		s.TaxRate = v
	}
	if v, ok := numberAt(raw, "deposit_pct"); ok {
		s.DepositPct = v
	}
	if v, ok := numberAt(raw, "quote_validity_days"); ok && int(v) >= 1 {
		s.QuoteValidityDays = int(v)
	}
	if v, ok := numberAt(raw, "server_rate"); ok {
		s.ServerRate = v
	}
	if v, ok := numberAt(raw, "chef_rate"); ok {
		s.ChefRate = v
	}
	return s
}

func numberAt(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false
	}
	n, ok := asNumber(v)
	return n, ok
}

// toNumber coerces any value to a float64, mapping non-numeric input to zero.
func toNumber(v any) float64 {
	n, _ := asNumber(v)
	return n
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return n, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

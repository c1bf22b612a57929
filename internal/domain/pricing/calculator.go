// Package pricing derives an itemized quote from an event form and a
// normalized catalog. Everything here is pure: no I/O, no clock, no
// randomness, so it is safe to call repeatedly and concurrently.
package pricing

import (
	"fmt"
	"math"

	"catering_quotes/internal/domain/entities"
)

// StaffRule describes the staffing ratios of a service style. An infinite
// ratio forces that role to zero regardless of the minimum.
type StaffRule struct {
	ServerRatio float64
	MinServers  int
	ChefRatio   float64
}

var staffRules = map[string]StaffRule{
	entities.StyleBuffet:   {ServerRatio: 25, MinServers: 2, ChefRatio: math.Inf(1)},
	entities.StylePlated:   {ServerRatio: 12, MinServers: 3, ChefRatio: 50},
	entities.StyleStations: {ServerRatio: 20, MinServers: 2, ChefRatio: 75},
	entities.StyleDropOff:  {ServerRatio: math.Inf(1), MinServers: 0, ChefRatio: math.Inf(1)},
}

// StaffRuleFor returns the staffing rule for a service style, falling back to
// the Buffet rule for unknown styles.
func StaffRuleFor(style string) StaffRule {
	if rule, ok := staffRules[style]; ok {
		return rule
	}
	return staffRules[entities.StyleBuffet]
}

// Result is the full pricing output: the resolved package, staffing counts and
// the monetary totals snapshot. Amounts keep full float precision; rounding
// happens only at presentation time via Currency.
type Result struct {
	SelectedPackage entities.Package
	Guests          int
	Servers         int
	Chefs           int
	Totals          entities.Totals
}

// Calculate prices an event. It never fails: a non-positive guest count yields
// the all-zero totals (with the package still resolved), unknown package ids
// fall back to the catalog's first package, and unknown add-on or rental ids
// are ignored.
func Calculate(form entities.EventForm, catalog entities.Catalog, settings entities.Settings) Result {
	guests := form.ClampedGuests()
	res := Result{
		SelectedPackage: resolvePackage(catalog.Packages, form.PackageID),
		Guests:          guests,
	}
	if guests <= 0 {
		return res
	}

	base := res.SelectedPackage.PPP * float64(guests)

	var addons float64
	for _, id := range form.Addons {
		for _, a := range catalog.Addons {
			if a.ID != id {
				continue
			}
			if a.Kind == entities.AddOnPerPerson {
				addons += a.Price * float64(guests)
			} else {
				addons += a.Price
			}
			break
		}
	}

	var rentals float64
	for _, id := range form.Rentals {
		for _, r := range catalog.Rentals {
			if r.ID == id {
				rentals += r.Price * float64(r.UnitsFor(guests))
				break
			}
		}
	}

	rule := StaffRuleFor(form.Style)
	res.Servers = staffCount(guests, rule.ServerRatio, rule.MinServers)
	res.Chefs = staffCount(guests, rule.ChefRatio, 0)

	labor := settings.ServerRate*float64(res.Servers)*form.Hours +
		settings.ChefRate*float64(res.Chefs)*form.Hours
	travel := settings.PerMileRate * form.MilesRT

	preFee := base + addons + rentals + labor + travel
	serviceFee := preFee * settings.ServiceFeePct
	// Labor and travel are excluded from the tax base.
	tax := (base + addons + rentals + serviceFee) * settings.TaxRate

	total := preFee + serviceFee + tax
	deposit := total * settings.DepositPct
	var cardFee float64
	if form.PayMethod == entities.PayMethodCard {
		cardFee = deposit * 0.03
	}

	res.Totals = entities.Totals{
		Base:       base,
		Addons:     addons,
		Rentals:    rentals,
		Labor:      labor,
		Travel:     travel,
		ServiceFee: serviceFee,
		Tax:        tax,
		Total:      total,
		Deposit:    deposit,
		CardFee:    cardFee,
	}
	return res
}

func resolvePackage(packages []entities.Package, id string) entities.Package {
	for _, p := range packages {
		if p.ID == id {
			return p
		}
	}
	if len(packages) > 0 {
		return packages[0]
	}
	return entities.Package{}
}

func staffCount(guests int, ratio float64, minimum int) int {
	if math.IsInf(ratio, 1) {
		return 0
	}
	n := int(math.Ceil(float64(guests) / ratio))
	if n < minimum {
		return minimum
	}
	return n
}

// Currency formats an amount for display: rounded to cents, two decimals,
// dollar prefix.
func Currency(v float64) string {
	return fmt.Sprintf("$%.2f", math.Round(v*100)/100)
}

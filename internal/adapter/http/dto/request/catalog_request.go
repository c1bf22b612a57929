package request

import "catering_quotes/internal/domain/entities"

// CatalogSaveRequest carries a full catalog replacement. Numeric fields are
// deliberately untyped: admin tooling has historically sent prices as strings,
// and normalization coerces whatever arrives.
type CatalogSaveRequest struct {
	Packages []PackageInput `json:"packages"`
	Addons   []AddOnInput   `json:"addons"`
	Rentals  []RentalInput  `json:"rentals"`
	Settings map[string]any `json:"settings"`
}

type PackageInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	PPP  any    `json:"ppp"`
}

type AddOnInput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Price any    `json:"price"`
}

type RentalInput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        any    `json:"price"`
	QtyPerGuests any    `json:"qty_per_guests"`
}

func (r CatalogSaveRequest) ToRawCatalog() entities.RawCatalog {
	raw := entities.RawCatalog{Settings: r.Settings}
	if r.Packages != nil {
		raw.Packages = make([]entities.RawPackage, 0, len(r.Packages))
		for _, p := range r.Packages {
			raw.Packages = append(raw.Packages, entities.RawPackage{ID: p.ID, Name: p.Name, PPP: p.PPP})
		}
	}
	if r.Addons != nil {
		raw.Addons = make([]entities.RawAddOn, 0, len(r.Addons))
		for _, a := range r.Addons {
			raw.Addons = append(raw.Addons, entities.RawAddOn{ID: a.ID, Name: a.Name, Kind: a.Kind, Price: a.Price})
		}
	}
	if r.Rentals != nil {
		raw.Rentals = make([]entities.RawRental, 0, len(r.Rentals))
		for _, rental := range r.Rentals {
			raw.Rentals = append(raw.Rentals, entities.RawRental{ID: rental.ID, Name: rental.Name, Price: rental.Price, QtyPerGuests: rental.QtyPerGuests})
		}
	}
	return raw
}

package response

import "catering_quotes/internal/domain/entities"

type CatalogResponse struct {
	Source   string             `json:"source"`
	Packages []entities.Package `json:"packages"`
	Addons   []entities.AddOn   `json:"addons"`
	Rentals  []entities.Rental  `json:"rentals"`
	Settings entities.Settings  `json:"settings"`
}

func FromCatalog(c entities.Catalog, source string) CatalogResponse {
	return CatalogResponse{
		Source:   source,
		Packages: c.Packages,
		Addons:   c.Addons,
		Rentals:  c.Rentals,
		Settings: c.Settings,
	}
}

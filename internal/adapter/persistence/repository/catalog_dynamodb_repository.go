package repository

import (
	"context"

	"catering_quotes/internal/domain/entities"
	"catering_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultCatalogTableName = "catalog_items"

	kindPackage  = "package"
	kindAddon    = "addon"
	kindRental   = "rental"
	kindSettings = "settings"

	settingsRowID = "settings"
)

// catalogRow is the tagged-union persistence shape of a catalog entry. The
// kind attribute discriminates the variant; unused fields stay empty.
type catalogRow struct {
	ID           string  `dynamodbav:"id"`
	Kind         string  `dynamodbav:"kind"`
	Name         string  `dynamodbav:"name,omitempty"`
	PPP          float64 `dynamodbav:"ppp,omitempty"`
	Charge       string  `dynamodbav:"charge,omitempty"`
	Price        float64 `dynamodbav:"price,omitempty"`
	QtyPerGuests int     `dynamodbav:"qty_per_guests,omitempty"`

	Settings map[string]float64 `dynamodbav:"settings,omitempty"`
}

// CatalogDynamoRepository persists catalog rows in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// All item variants and the settings row share one table; a save reconciles
// the full row set in a single TransactWriteItems call so the catalog is never
// half-applied. DynamoDB caps a transaction at 100 items, which comfortably
// covers a catering catalog.

type CatalogDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb *dynamodb.Client) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CATALOG_TABLE", defaultCatalogTableName),
	}
}

func (r *CatalogDynamoRepository) Source() string {
	return "dynamodb"
}

func (r *CatalogDynamoRepository) Load(ctx context.Context) (entities.RawCatalog, bool, error) {
	rows, err := r.scanRows(ctx)
	if err != nil {
		return entities.RawCatalog{}, false, err
	}

	raw := entities.RawCatalog{}
	hasItems := false
	for _, row := range rows {
		switch row.Kind {
		case kindPackage:
			raw.Packages = append(raw.Packages, entities.RawPackage{ID: row.ID, Name: row.Name, PPP: row.PPP})
			hasItems = true
		case kindAddon:
			raw.Addons = append(raw.Addons, entities.RawAddOn{ID: row.ID, Name: row.Name, Kind: row.Charge, Price: row.Price})
			hasItems = true
		case kindRental:
			raw.Rentals = append(raw.Rentals, entities.RawRental{ID: row.ID, Name: row.Name, Price: row.Price, QtyPerGuests: float64(row.QtyPerGuests)})
			hasItems = true
		case kindSettings:
			raw.Settings = make(map[string]any, len(row.Settings))
			for k, v := range row.Settings {
				raw.Settings[k] = v
			}
		}
	}

	if !hasItems {
		return entities.RawCatalog{}, false, nil
	}
	return raw, true, nil
}

func (r *CatalogDynamoRepository) Save(ctx context.Context, c entities.Catalog) error {
	existing, err := r.scanRows(ctx)
	if err != nil {
		return err
	}

	next := buildCatalogRows(c)
	keep := make(map[string]bool, len(next))
	for _, row := range next {
		keep[row.ID] = true
	}

	var writes []types.TransactWriteItem
	for _, row := range existing {
		if !keep[row.ID] {
			writes = append(writes, types.TransactWriteItem{
				Delete: &types.Delete{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: row.ID},
					},
				},
			})
		}
	}
	for _, row := range next {
		av, err := attributevalue.MarshalMap(row)
		if err != nil {
			return err
		}
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(r.tableName),
				Item:      av,
			},
		})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	return err
}

func (r *CatalogDynamoRepository) scanRows(ctx context.Context) ([]catalogRow, error) {
	var rows []catalogRow
	paginator := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var pageRows []catalogRow
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageRows); err != nil {
			return nil, err
		}
		rows = append(rows, pageRows...)
	}
	return rows, nil
}

func buildCatalogRows(c entities.Catalog) []catalogRow {
	rows := make([]catalogRow, 0, len(c.Packages)+len(c.Addons)+len(c.Rentals)+1)
	for _, p := range c.Packages {
		rows = append(rows, catalogRow{ID: p.ID, Kind: kindPackage, Name: p.Name, PPP: p.PPP})
	}
	for _, a := range c.Addons {
		rows = append(rows, catalogRow{ID: a.ID, Kind: kindAddon, Name: a.Name, Charge: string(a.Kind), Price: a.Price})
	}
	for _, rental := range c.Rentals {
		rows = append(rows, catalogRow{ID: rental.ID, Kind: kindRental, Name: rental.Name, Price: rental.Price, QtyPerGuests: rental.QtyPerGuests})
	}
	rows = append(rows, catalogRow{
		ID:   settingsRowID,
		Kind: kindSettings,
		Settings: map[string]float64{
			"per_mile_rate":       c.Settings.PerMileRate,
			"service_fee_pct":     c.Settings.ServiceFeePct,
			"tax_rate":            c.Settings.TaxRate,
			"deposit_pct":         c.Settings.DepositPct,
			"quote_validity_days": float64(c.Settings.QuoteValidityDays),
			"server_rate":         c.Settings.ServerRate,
			"chef_rate":           c.Settings.ChefRate,
		},
	})
	return rows
}

package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"catering_quotes/internal/domain/entities"
	"catering_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const defaultQuotesTableName = "quotes"

type quoteItem struct {
	ID          string            `dynamodbav:"id"`
	QuoteNumber string            `dynamodbav:"quote_number"`
	Customer    customerItem      `dynamodbav:"customer"`
	Event       eventItem         `dynamodbav:"event"`
	Selection   selectionItem     `dynamodbav:"selection"`
	Payment     paymentItem       `dynamodbav:"payment"`
	Totals      totalsItem        `dynamodbav:"totals"`
	Status      string            `dynamodbav:"status"`
	Source      string            `dynamodbav:"source"`
	CreatedAt   string            `dynamodbav:"created_at"`
	ExpiresAt   string            `dynamodbav:"expires_at"`
	UpdatedAt   string            `dynamodbav:"updated_at"`
	Lifecycle   map[string]string `dynamodbav:"lifecycle"`
}

type customerItem struct {
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email"`
}

type eventItem struct {
	Date   string  `dynamodbav:"date"`
	Time   string  `dynamodbav:"time"`
	Venue  string  `dynamodbav:"venue"`
	Guests int     `dynamodbav:"guests"`
	Hours  float64 `dynamodbav:"hours"`
	Style  string  `dynamodbav:"style"`
}

type selectionItem struct {
	PackageID   string   `dynamodbav:"package_id"`
	PackageName string   `dynamodbav:"package_name"`
	Addons      []string `dynamodbav:"addons"`
	Rentals     []string `dynamodbav:"rentals"`
	MilesRT     float64  `dynamodbav:"miles_rt"`
	PayMethod   string   `dynamodbav:"pay_method"`
}

type paymentItem struct {
	DepositLink string `dynamodbav:"deposit_link"`
}

type totalsItem struct {
	Base       float64 `dynamodbav:"base"`
	Addons     float64 `dynamodbav:"addons"`
	Rentals    float64 `dynamodbav:"rentals"`
	Labor      float64 `dynamodbav:"labor"`
	Travel     float64 `dynamodbav:"travel"`
	ServiceFee float64 `dynamodbav:"service_fee"`
	Tax        float64 `dynamodbav:"tax"`
	Total      float64 `dynamodbav:"total"`
	Deposit    float64 `dynamodbav:"deposit"`
	CardFee    float64 `dynamodbav:"card_fee"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Ordering note: quotes are listed via Scan and sorted by created_at in
// memory. Quote volume here is a sales pipeline, not an event stream.

type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Source() string {
	return "dynamodb"
}

func (r *QuoteDynamoRepository) Append(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}

	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) List(ctx context.Context) ([]entities.Quote, error) {
	var quotes []entities.Quote

	paginator := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []quoteItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			quotes = append(quotes, fromQuoteItem(it))
		}
	}

	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
	return quotes, nil
}

func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus, at time.Time) (entities.Quote, error) {
	now := at.UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		// The lifecycle stamp for a status is written once and kept on
		// re-entry, hence if_not_exists.
		UpdateExpression: aws.String("SET #status = :status, #updated_at = :updated_at, #lifecycle.#status_at = if_not_exists(#lifecycle.#status_at, :at)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
			":at":         &types.AttributeValueMemberS{Value: now},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
			"#lifecycle":  "lifecycle",
			"#status_at":  string(status),
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	lifecycle := make(map[string]string, len(q.Lifecycle))
	for status, at := range q.Lifecycle {
		lifecycle[string(status)] = at.UTC().Format(time.RFC3339Nano)
	}
	return quoteItem{
		ID:          q.ID,
		QuoteNumber: q.QuoteNumber,
		Customer:    customerItem(q.Customer),
		Event:       eventItem(q.Event),
		Selection:   selectionItem(q.Selection),
		Payment:     paymentItem(q.Payment),
		Totals:      totalsItem(q.Totals),
		Status:      string(q.Status),
		Source:      q.Source,
		CreatedAt:   q.CreatedAt.UTC().Format(time.RFC3339Nano),
		ExpiresAt:   q.ExpiresAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   q.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Lifecycle:   lifecycle,
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	expiresAt, _ := time.Parse(time.RFC3339Nano, it.ExpiresAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	lifecycle := make(map[entities.QuoteStatus]time.Time, len(it.Lifecycle))
	for status, raw := range it.Lifecycle {
		if at, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			lifecycle[entities.QuoteStatus(status)] = at
		}
	}
	return entities.Quote{
		ID:          it.ID,
		QuoteNumber: it.QuoteNumber,
		Customer:    entities.Customer(it.Customer),
		Event:       entities.EventDetails(it.Event),
		Selection:   entities.Selection(it.Selection),
		Payment:     entities.PaymentInfo(it.Payment),
		Totals:      entities.Totals(it.Totals),
		Status:      entities.QuoteStatus(it.Status),
		Source:      it.Source,
		CreatedAt:   createdAt,
		ExpiresAt:   expiresAt,
		UpdatedAt:   updatedAt,
		Lifecycle:   lifecycle,
	}
}

package repository

import (
	"context"
	"fmt"
	"time"

	"ges_billing/internal/domain/entities"
	"ges_billing/internal/infrastructure/database"
	"ges_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

type billingCycleItem struct {
	ID               string             `dynamodbav:"id"`
	PeriodLabel      string             `dynamodbav:"period_label"`
	CycleDate        string             `dynamodbav:"cycle_date"`
	InputTotals      []string           `dynamodbav:"input_totals"`
	TotalAmount      string             `dynamodbav:"total_amount"`
	TotalConsumption string             `dynamodbav:"total_consumption"`
	UnitPrice        string             `dynamodbav:"unit_price"`
	Readings         []cycleReadingItem `dynamodbav:"readings"`
	CreatedAt        string             `dynamodbav:"created_at"`
	UpdatedAt        string             `dynamodbav:"updated_at"`
}

type cycleReadingItem struct {
	ConsumerID      string `dynamodbav:"consumer_id"`
	CurrentReading  string `dynamodbav:"current_reading"`
	PreviousReading string `dynamodbav:"previous_reading"`
	Consumption     string `dynamodbav:"consumption"`
	UnitPrice       string `dynamodbav:"unit_price"`
	ShareExact      string `dynamodbav:"share_exact"`
	ShareRounded    int64  `dynamodbav:"share_rounded"`
	Source          bool   `dynamodbav:"source,omitempty"`
}

// BillingCycleDynamoRepository persists BillingCycle entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, month key "YYYY-MM")
//   - GSI: period_label-index (PK: period_label)
//
// The month key as PK is what guarantees one cycle per month: Create is a
// conditional put on attribute_not_exists(id).
//
// obligationsTable is written only by Delete, which detaches the month's
// obligations in the same transaction.

type BillingCycleDynamoRepository struct {
	ddb              DynamoDBAPI
	tableName        string
	obligationsTable string
}

var _ interfaces.IBillingCycleRepository = (*BillingCycleDynamoRepository)(nil)

func NewBillingCycleDynamoRepository(ddb DynamoDBAPI, tableName, obligationsTable string) *BillingCycleDynamoRepository {
	return &BillingCycleDynamoRepository{ddb: ddb, tableName: tableName, obligationsTable: obligationsTable}
}

func (r *BillingCycleDynamoRepository) Create(ctx context.Context, c entities.BillingCycle) (entities.BillingCycle, error) {
	av, err := attributevalue.MarshalMap(toBillingCycleItem(c))
	if err != nil {
		return entities.BillingCycle{}, err
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
		if isConditionFailed(err) {
			return entities.BillingCycle{}, interfaces.ErrConditionFailed
		}
		return entities.BillingCycle{}, err
	}
	return c, nil
}

func (r *BillingCycleDynamoRepository) Replace(ctx context.Context, c entities.BillingCycle) (entities.BillingCycle, error) {
	av, err := attributevalue.MarshalMap(toBillingCycleItem(c))
	if err != nil {
		return entities.BillingCycle{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.BillingCycle{}, nil
		}
		return entities.BillingCycle{}, err
	}
	return c, nil
}

func (r *BillingCycleDynamoRepository) GetByID(ctx context.Context, id string) (entities.BillingCycle, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.BillingCycle{}, err
	}
	if len(out.Item) == 0 {
		return entities.BillingCycle{}, nil
	}

	var it billingCycleItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.BillingCycle{}, err
	}
	return fromBillingCycleItem(it), nil
}

// GetByPeriodLabel returns the most recent cycle carrying label.
func (r *BillingCycleDynamoRepository) GetByPeriodLabel(ctx context.Context, label string) (entities.BillingCycle, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.PeriodLabelIndex),
		KeyConditionExpression: aws.String("period_label = :label"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":label": &types.AttributeValueMemberS{Value: label},
		},
	})

	var latest entities.BillingCycle
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return entities.BillingCycle{}, err
		}
		for _, raw := range out.Items {
			var it billingCycleItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return entities.BillingCycle{}, err
			}
			if it.ID > latest.ID {
				latest = fromBillingCycleItem(it)
			}
		}
	}
	return latest, nil
}

func (r *BillingCycleDynamoRepository) List(ctx context.Context) ([]entities.BillingCycle, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	items := make([]entities.BillingCycle, 0)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it billingCycleItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromBillingCycleItem(it))
		}
	}
	return items, nil
}

func (r *BillingCycleDynamoRepository) Delete(ctx context.Context, id string, detachObligationIDs []string) (bool, error) {
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}

	if len(detachObligationIDs) == 0 {
		out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:    aws.String(r.tableName),
			Key:          key,
			ReturnValues: types.ReturnValueAllOld,
		})
		if err != nil {
			return false, err
		}
		return len(out.Attributes) > 0, nil
	}

	if len(detachObligationIDs) >= maxTransactItems {
		return false, fmt.Errorf("too many obligations to detach in one transaction: %d", len(detachObligationIDs))
	}

	now := formatTimestamp(time.Now())
	items := make([]types.TransactWriteItem, 0, len(detachObligationIDs)+1)
	items = append(items, types.TransactWriteItem{Delete: &types.Delete{
		TableName:                aws.String(r.tableName),
		Key:                      key,
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}})
	for _, oid := range detachObligationIDs {
		items = append(items, types.TransactWriteItem{Update: detachCycleUpdate(r.obligationsTable, oid, now)})
	}

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		// Cycle already gone: nothing was written.
		if isTransactConditionFailed(err, 0) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func toBillingCycleItem(c entities.BillingCycle) billingCycleItem {
	totals := make([]string, len(c.InputTotals))
	for i, v := range c.InputTotals {
		totals[i] = v.String()
	}
	readings := make([]cycleReadingItem, len(c.Readings))
	for i, r := range c.Readings {
		readings[i] = cycleReadingItem{
			ConsumerID:      r.ConsumerID,
			CurrentReading:  r.CurrentReading.String(),
			PreviousReading: r.PreviousReading.String(),
			Consumption:     r.Consumption.String(),
			UnitPrice:       r.UnitPrice.String(),
			ShareExact:      r.ShareExact.String(),
			ShareRounded:    r.ShareRounded,
			Source:          r.Source,
		}
	}
	return billingCycleItem{
		ID:               c.ID,
		PeriodLabel:      c.PeriodLabel,
		CycleDate:        formatDate(c.CycleDate),
		InputTotals:      totals,
		TotalAmount:      c.TotalAmount.String(),
		TotalConsumption: c.TotalConsumption.String(),
		UnitPrice:        c.UnitPrice.String(),
		Readings:         readings,
		CreatedAt:        formatTimestamp(c.CreatedAt),
		UpdatedAt:        formatTimestamp(c.UpdatedAt),
	}
}

func fromBillingCycleItem(it billingCycleItem) entities.BillingCycle {
	totals := make([]decimal.Decimal, len(it.InputTotals))
	for i, v := range it.InputTotals {
		totals[i] = parseDecimal(v)
	}
	readings := make([]entities.CycleReading, len(it.Readings))
	for i, r := range it.Readings {
		readings[i] = entities.CycleReading{
			ConsumerID:      r.ConsumerID,
			CurrentReading:  parseDecimal(r.CurrentReading),
			PreviousReading: parseDecimal(r.PreviousReading),
			Consumption:     parseDecimal(r.Consumption),
			UnitPrice:       parseDecimal(r.UnitPrice),
			ShareExact:      parseDecimal(r.ShareExact),
			ShareRounded:    r.ShareRounded,
			Source:          r.Source,
		}
	}
	return entities.BillingCycle{
		ID:               it.ID,
		PeriodLabel:      it.PeriodLabel,
		CycleDate:        parseDate(it.CycleDate),
		InputTotals:      totals,
		TotalAmount:      parseDecimal(it.TotalAmount),
		TotalConsumption: parseDecimal(it.TotalConsumption),
		UnitPrice:        parseDecimal(it.UnitPrice),
		Readings:         readings,
		CreatedAt:        parseTimestamp(it.CreatedAt),
		UpdatedAt:        parseTimestamp(it.UpdatedAt),
	}
}

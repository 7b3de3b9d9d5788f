package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"ges_billing/internal/domain/entities"
	"ges_billing/internal/infrastructure/database"
	"ges_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type paymentObligationItem struct {
	ID                string `dynamodbav:"id"`
	ConsumerID        string `dynamodbav:"consumer_id"`
	Month             string `dynamodbav:"month"`
	CycleID           string `dynamodbav:"cycle_id,omitempty"`
	ExpensesAmount    string `dynamodbav:"expenses_amount"`
	WaterAmount       int64  `dynamodbav:"water_amount"`
	TotalAmount       string `dynamodbav:"total_amount"`
	PaidAmount        string `dynamodbav:"paid_amount,omitempty"`
	Status            string `dynamodbav:"status"`
	PaymentDate       string `dynamodbav:"payment_date,omitempty"`
	ProviderPaymentID string `dynamodbav:"provider_payment_id,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

// PaymentObligationDynamoRepository persists PaymentObligation entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, "<month>:<consumer>")
//   - GSI: month-index (PK: month)

type PaymentObligationDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IPaymentObligationRepository = (*PaymentObligationDynamoRepository)(nil)

func NewPaymentObligationDynamoRepository(ddb DynamoDBAPI, tableName string) *PaymentObligationDynamoRepository {
	return &PaymentObligationDynamoRepository{ddb: ddb, tableName: tableName}
}

// Upsert writes the amounts of an obligation. Status and created_at are only
// set when the item is new, so a recorded payment survives a refresh unless
// ResetPayment asks to drop it.
func (r *PaymentObligationDynamoRepository) Upsert(ctx context.Context, in interfaces.ObligationRefresh) (entities.PaymentObligation, error) {
	now := formatTimestamp(time.Now())
	id := entities.ObligationID(in.Month, in.ConsumerID)

	sets := []string{
		"#consumer_id = :consumer_id",
		"#month = :month",
		"#cycle_id = :cycle_id",
		"#expenses_amount = :expenses_amount",
		"#water_amount = :water_amount",
		"#total_amount = :total_amount",
		"#status = if_not_exists(#status, :pending)",
		"#created_at = if_not_exists(#created_at, :now)",
		"#updated_at = :now",
	}
	names := map[string]string{
		"#consumer_id":     "consumer_id",
		"#month":           "month",
		"#cycle_id":        "cycle_id",
		"#expenses_amount": "expenses_amount",
		"#water_amount":    "water_amount",
		"#total_amount":    "total_amount",
		"#status":          "status",
		"#created_at":      "created_at",
		"#updated_at":      "updated_at",
	}
	var removes []string
	if in.ResetPayment {
		sets[6] = "#status = :pending"
		removes = []string{"#paid_amount", "#payment_date", "#provider_payment_id"}
		names["#paid_amount"] = "paid_amount"
		names["#payment_date"] = "payment_date"
		names["#provider_payment_id"] = "provider_payment_id"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:         aws.String(updateExpression(sets, removes)),
		ExpressionAttributeNames: names,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":consumer_id":     &types.AttributeValueMemberS{Value: in.ConsumerID},
			":month":           &types.AttributeValueMemberS{Value: in.Month},
			":cycle_id":        &types.AttributeValueMemberS{Value: in.CycleID},
			":expenses_amount": &types.AttributeValueMemberS{Value: in.ExpensesAmount.String()},
			":water_amount":    &types.AttributeValueMemberN{Value: strconv.FormatInt(in.WaterAmount, 10)},
			":total_amount":    &types.AttributeValueMemberS{Value: in.TotalAmount.String()},
			":pending":         &types.AttributeValueMemberS{Value: string(entities.PaymentStatusPending)},
			":now":             &types.AttributeValueMemberS{Value: now},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.PaymentObligation{}, err
	}
	return decodePaymentObligation(out.Attributes)
}

func (r *PaymentObligationDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentObligation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentObligation{}, err
	}
	return decodePaymentObligation(out.Item)
}

func (r *PaymentObligationDynamoRepository) ListByMonth(ctx context.Context, month string) ([]entities.PaymentObligation, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.MonthIndex),
		KeyConditionExpression: aws.String("#month = :month"),
		ExpressionAttributeNames: map[string]string{
			"#month": "month",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":month": &types.AttributeValueMemberS{Value: month},
		},
	})

	items := make([]entities.PaymentObligation, 0)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			o, err := decodePaymentObligation(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, o)
		}
	}
	return items, nil
}

func (r *PaymentObligationDynamoRepository) RecordPayment(ctx context.Context, id string, rec interfaces.PaymentRecord) (entities.PaymentObligation, error) {
	sets := []string{"#status = :status", "#updated_at = :now"}
	var removes []string
	names := map[string]string{
		"#status":              "status",
		"#updated_at":          "updated_at",
		"#paid_amount":         "paid_amount",
		"#payment_date":        "payment_date",
		"#provider_payment_id": "provider_payment_id",
	}
	values := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: string(rec.Status)},
		":now":    &types.AttributeValueMemberS{Value: formatTimestamp(time.Now())},
	}

	if rec.PaidAmount != nil {
		sets = append(sets, "#paid_amount = :paid_amount")
		values[":paid_amount"] = &types.AttributeValueMemberS{Value: rec.PaidAmount.String()}
	} else {
		removes = append(removes, "#paid_amount")
	}
	if rec.PaymentDate != nil {
		sets = append(sets, "#payment_date = :payment_date")
		values[":payment_date"] = &types.AttributeValueMemberS{Value: formatDate(*rec.PaymentDate)}
	} else {
		removes = append(removes, "#payment_date")
	}
	if rec.ProviderPaymentID != "" {
		sets = append(sets, "#provider_payment_id = :provider_payment_id")
		values[":provider_payment_id"] = &types.AttributeValueMemberS{Value: rec.ProviderPaymentID}
	} else {
		removes = append(removes, "#provider_payment_id")
	}

	return r.update(ctx, id, updateExpression(sets, removes), names, values)
}

// Detach removes cycle_id from the given obligations. Missing ids are skipped.
func (r *PaymentObligationDynamoRepository) Detach(ctx context.Context, ids []string) error {
	now := formatTimestamp(time.Now())
	for _, id := range ids {
		u := detachCycleUpdate(r.tableName, id, now)
		_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 u.TableName,
			Key:                       u.Key,
			ConditionExpression:       u.ConditionExpression,
			UpdateExpression:          u.UpdateExpression,
			ExpressionAttributeNames:  u.ExpressionAttributeNames,
			ExpressionAttributeValues: u.ExpressionAttributeValues,
		})
		if err != nil && !isConditionFailed(err) {
			return err
		}
	}
	return nil
}

func (r *PaymentObligationDynamoRepository) update(
	ctx context.Context,
	id string,
	updateExpr string,
	names map[string]string,
	values map[string]types.AttributeValue,
) (entities.PaymentObligation, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.PaymentObligation{}, nil
		}
		return entities.PaymentObligation{}, err
	}
	return decodePaymentObligation(out.Attributes)
}

func updateExpression(sets, removes []string) string {
	expr := "SET " + strings.Join(sets, ", ")
	if len(removes) > 0 {
		expr += " REMOVE " + strings.Join(removes, ", ")
	}
	return expr
}

func decodePaymentObligation(av map[string]types.AttributeValue) (entities.PaymentObligation, error) {
	if len(av) == 0 {
		return entities.PaymentObligation{}, nil
	}
	var it paymentObligationItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.PaymentObligation{}, err
	}
	return fromPaymentObligationItem(it), nil
}

func fromPaymentObligationItem(it paymentObligationItem) entities.PaymentObligation {
	o := entities.PaymentObligation{
		ID:                it.ID,
		ConsumerID:        it.ConsumerID,
		Month:             it.Month,
		CycleID:           it.CycleID,
		ExpensesAmount:    parseDecimal(it.ExpensesAmount),
		WaterAmount:       it.WaterAmount,
		TotalAmount:       parseDecimal(it.TotalAmount),
		Status:            entities.PaymentStatus(it.Status),
		ProviderPaymentID: it.ProviderPaymentID,
		CreatedAt:         parseTimestamp(it.CreatedAt),
		UpdatedAt:         parseTimestamp(it.UpdatedAt),
	}
	if it.PaidAmount != "" {
		paid := parseDecimal(it.PaidAmount)
		o.PaidAmount = &paid
	}
	if it.PaymentDate != "" {
		date := parseDate(it.PaymentDate)
		o.PaymentDate = &date
	}
	return o
}

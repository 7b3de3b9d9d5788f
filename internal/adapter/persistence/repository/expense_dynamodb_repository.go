package repository

import (
	"context"

	"ges_billing/internal/domain/entities"
	"ges_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type expenseItem struct {
	ID            string `dynamodbav:"id"`
	Description   string `dynamodbav:"description"`
	InvoiceNumber string `dynamodbav:"invoice_number,omitempty"`
	Amount        string `dynamodbav:"amount"`
	Date          string `dynamodbav:"date"`
	CreatedAt     string `dynamodbav:"created_at"`
}

// ExpenseDynamoRepository persists Expense entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, uuid)

type ExpenseDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IExpenseRepository = (*ExpenseDynamoRepository)(nil)

func NewExpenseDynamoRepository(ddb DynamoDBAPI, tableName string) *ExpenseDynamoRepository {
	return &ExpenseDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ExpenseDynamoRepository) Create(ctx context.Context, e entities.Expense) (entities.Expense, error) {
	av, err := attributevalue.MarshalMap(toExpenseItem(e))
	if err != nil {
		return entities.Expense{}, err
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
			return entities.Expense{}, interfaces.ErrConditionFailed
		}
		return entities.Expense{}, err
	}
	return e, nil
}

func (r *ExpenseDynamoRepository) List(ctx context.Context) ([]entities.Expense, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	items := make([]entities.Expense, 0)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it expenseItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromExpenseItem(it))
		}
	}
	return items, nil
}

func (r *ExpenseDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}
	return len(out.Attributes) > 0, nil
}

func toExpenseItem(e entities.Expense) expenseItem {
	return expenseItem{
		ID:            e.ID,
		Description:   e.Description,
		InvoiceNumber: e.InvoiceNumber,
		Amount:        e.Amount.String(),
		Date:          formatDate(e.Date),
		CreatedAt:     formatTimestamp(e.CreatedAt),
	}
}

func fromExpenseItem(it expenseItem) entities.Expense {
	return entities.Expense{
		ID:            it.ID,
		Description:   it.Description,
		InvoiceNumber: it.InvoiceNumber,
		Amount:        parseDecimal(it.Amount),
		Date:          parseDate(it.Date),
		CreatedAt:     parseTimestamp(it.CreatedAt),
	}
}

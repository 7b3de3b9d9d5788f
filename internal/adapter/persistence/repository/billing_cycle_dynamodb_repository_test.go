package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"ges_billing/internal/domain/entities"
	"ges_billing/internal/infrastructure/database"
	"ges_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sampleCycle() entities.BillingCycle {
	ts := time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC)
	return entities.BillingCycle{
		ID:               "2025-03",
		PeriodLabel:      "Febrero-Marzo",
		CycleDate:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		InputTotals:      []decimal.Decimal{decimal.RequireFromString("600.10"), decimal.RequireFromString("400")},
		TotalAmount:      decimal.RequireFromString("1000.1"),
		TotalConsumption: decimal.RequireFromString("3"),
		UnitPrice:        decimal.RequireFromString("333.3666666666666667"),
		Readings: []entities.CycleReading{
			{
				ConsumerID:      "PB-A",
				CurrentReading:  decimal.RequireFromString("12.5"),
				PreviousReading: decimal.RequireFromString("9.5"),
				Consumption:     decimal.RequireFromString("3"),
				UnitPrice:       decimal.RequireFromString("333.3666666666666667"),
				ShareExact:      decimal.RequireFromString("1000.1000000000000001"),
				ShareRounded:    1000,
			},
			{ConsumerID: "GENERAL", CurrentReading: decimal.RequireFromString("50"), Source: true},
		},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func TestBillingCycleItemRoundTrip(t *testing.T) {
	c := sampleCycle()

	av, err := attributevalue.MarshalMap(toBillingCycleItem(c))
	require.NoError(t, err)
	require.Equal(t, &types.AttributeValueMemberS{Value: "1000.1"}, av["total_amount"])
	require.Equal(t, &types.AttributeValueMemberS{Value: "2025-03-10"}, av["cycle_date"])

	var it billingCycleItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &it))
	got := fromBillingCycleItem(it)

	require.Equal(t, c.ID, got.ID)
	require.True(t, c.UnitPrice.Equal(got.UnitPrice))
	require.True(t, c.Readings[0].ShareExact.Equal(got.Readings[0].ShareExact))
	require.Equal(t, int64(1000), got.Readings[0].ShareRounded)
	require.True(t, got.Readings[1].Source)
	require.True(t, c.CycleDate.Equal(got.CycleDate))
	require.True(t, c.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.InputTotals, 2)
	require.True(t, got.InputTotals[0].Equal(decimal.RequireFromString("600.1")))
}

func TestBillingCycleDynamoRepository_Create(t *testing.T) {
	t.Run("conditional put", func(t *testing.T) {
		fake := &fakeDynamoDB{putItem: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			require.Equal(t, "billing_cycles", aws.ToString(in.TableName))
			require.Equal(t, "attribute_not_exists(#id)", aws.ToString(in.ConditionExpression))
			return &dynamodb.PutItemOutput{}, nil
		}}
		repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

		c, err := repo.Create(context.Background(), sampleCycle())
		require.NoError(t, err)
		require.Equal(t, "2025-03", c.ID)
	})

	t.Run("duplicate month", func(t *testing.T) {
		fake := &fakeDynamoDB{putItem: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		}}
		repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

		_, err := repo.Create(context.Background(), sampleCycle())
		require.ErrorIs(t, err, interfaces.ErrConditionFailed)
	})

	t.Run("replace missing", func(t *testing.T) {
		fake := &fakeDynamoDB{putItem: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			require.Equal(t, "attribute_exists(#id)", aws.ToString(in.ConditionExpression))
			return nil, &types.ConditionalCheckFailedException{}
		}}
		repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

		c, err := repo.Replace(context.Background(), sampleCycle())
		require.NoError(t, err)
		require.Empty(t, c.ID)
	})
}

func TestBillingCycleDynamoRepository_Reads(t *testing.T) {
	t.Run("get missing returns zero value", func(t *testing.T) {
		fake := &fakeDynamoDB{getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		}}
		repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

		c, err := repo.GetByID(context.Background(), "2025-03")
		require.NoError(t, err)
		require.Empty(t, c.ID)
	})

	t.Run("list follows pages", func(t *testing.T) {
		first, err := attributevalue.MarshalMap(billingCycleItem{ID: "2025-01"})
		require.NoError(t, err)
		second, err := attributevalue.MarshalMap(billingCycleItem{ID: "2025-02"})
		require.NoError(t, err)

		calls := 0
		fake := &fakeDynamoDB{scan: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			calls++
			if in.ExclusiveStartKey == nil {
				return &dynamodb.ScanOutput{
					Items:            []map[string]types.AttributeValue{first},
					LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "2025-01"}},
				}, nil
			}
			return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{second}}, nil
		}}
		repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

		cycles, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, calls)
		require.Len(t, cycles, 2)
	})

	t.Run("period label picks latest", func(t *testing.T) {
		older, _ := attributevalue.MarshalMap(billingCycleItem{ID: "2024-03", PeriodLabel: "Marzo"})
		newer, _ := attributevalue.MarshalMap(billingCycleItem{ID: "2025-03", PeriodLabel: "Marzo"})
		fake := &fakeDynamoDB{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			require.Equal(t, database.PeriodLabelIndex, aws.ToString(in.IndexName))
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{newer, older}}, nil
		}}
		repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

		c, err := repo.GetByPeriodLabel(context.Background(), "Marzo")
		require.NoError(t, err)
		require.Equal(t, "2025-03", c.ID)
	})

	t.Run("query error", func(t *testing.T) {
		fake := &fakeDynamoDB{query: func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return nil, errors.New("throttled")
		}}
		repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

		_, err := repo.GetByPeriodLabel(context.Background(), "Marzo")
		require.Error(t, err)
	})
}

func TestBillingCycleDynamoRepository_Delete(t *testing.T) {
	for _, tc := range []struct {
		name  string
		attrs map[string]types.AttributeValue
		want  bool
	}{
		{"existing", map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "2025-03"}}, true},
		{"missing", nil, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeDynamoDB{deleteItem: func(in *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
				require.Equal(t, types.ReturnValueAllOld, in.ReturnValues)
				return &dynamodb.DeleteItemOutput{Attributes: tc.attrs}, nil
			}}
			repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

			deleted, err := repo.Delete(context.Background(), "2025-03", nil)
			require.NoError(t, err)
			require.Equal(t, tc.want, deleted)
		})
	}
}

func TestBillingCycleDynamoRepository_DeleteDetachesInOneTransaction(t *testing.T) {
	ids := []string{"2025-03:PB-A", "2025-03:1-A"}

	t.Run("cycle delete and detaches share a transaction", func(t *testing.T) {
		fake := &fakeDynamoDB{
			deleteItem: func(*dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
				t.Fatalf("DeleteItem must not be called when obligations are detached")
				return nil, nil
			},
			updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
				t.Fatalf("UpdateItem must not be called outside the transaction")
				return nil, nil
			},
			transact: func(in *dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
				require.Len(t, in.TransactItems, 3)
				del := in.TransactItems[0].Delete
				require.NotNil(t, del)
				require.Equal(t, "billing_cycles", aws.ToString(del.TableName))
				require.Equal(t, &types.AttributeValueMemberS{Value: "2025-03"}, del.Key["id"])
				require.Equal(t, "attribute_exists(#id)", aws.ToString(del.ConditionExpression))
				for i, id := range ids {
					up := in.TransactItems[i+1].Update
					require.NotNil(t, up)
					require.Equal(t, "payment_obligations", aws.ToString(up.TableName))
					require.Equal(t, &types.AttributeValueMemberS{Value: id}, up.Key["id"])
					require.Equal(t, "SET #updated_at = :now REMOVE #cycle_id", aws.ToString(up.UpdateExpression))
				}
				return &dynamodb.TransactWriteItemsOutput{}, nil
			},
		}
		repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

		deleted, err := repo.Delete(context.Background(), "2025-03", ids)
		require.NoError(t, err)
		require.True(t, deleted)
	})

	t.Run("missing cycle cancels the transaction", func(t *testing.T) {
		fake := &fakeDynamoDB{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
			}}
		}}
		repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

		deleted, err := repo.Delete(context.Background(), "2025-03", ids)
		require.NoError(t, err)
		require.False(t, deleted)
	})

	t.Run("obligation condition failure is an error", func(t *testing.T) {
		fake := &fakeDynamoDB{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			}}
		}}
		repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

		deleted, err := repo.Delete(context.Background(), "2025-03", ids)
		if err == nil {
			t.Fatalf("expected error, got nil")
		}
		require.False(t, deleted)
	})

	t.Run("transport error is returned", func(t *testing.T) {
		fake := &fakeDynamoDB{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, errors.New("throttled")
		}}
		repo := NewBillingCycleDynamoRepository(fake, "billing_cycles", "payment_obligations")

		_, err := repo.Delete(context.Background(), "2025-03", ids)
		require.EqualError(t, err, "throttled")
	})
}

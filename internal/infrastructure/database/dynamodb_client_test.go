package database

import (
	"context"
	"testing"

	appconfig "ges_billing/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/require"
)

func testConfig() *appconfig.Config {
	return &appconfig.Config{
		AWSRegion:          "sa-east-1",
		AWSAccessKeyID:     "local",
		AWSSecretAccessKey: "local",
		BillingCyclesTable: "billing_cycles",
		PaymentsTable:      "payment_obligations",
		ExpensesTable:      "expenses",
	}
}

func TestNewDynamoDBConfig(t *testing.T) {
	cfg := testConfig()
	cfg.DynamoDBEndpoint = "http://localhost:8000"

	awsCfg, err := NewDynamoDBConfig(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, "sa-east-1", awsCfg.Region)

	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "local", creds.AccessKeyID)
}

func TestTableSpecs(t *testing.T) {
	specs := TableSpecs(testConfig())
	require.Len(t, specs, 3)

	cycles := specs[0].CreateTableInput()
	require.Equal(t, "billing_cycles", aws.ToString(cycles.TableName))
	require.Len(t, cycles.AttributeDefinitions, 2)
	require.Len(t, cycles.GlobalSecondaryIndexes, 1)
	require.Equal(t, PeriodLabelIndex, aws.ToString(cycles.GlobalSecondaryIndexes[0].IndexName))

	payments := specs[1].CreateTableInput()
	require.Equal(t, MonthIndex, aws.ToString(payments.GlobalSecondaryIndexes[0].IndexName))

	expenses := specs[2].CreateTableInput()
	require.Empty(t, expenses.GlobalSecondaryIndexes)
	require.Len(t, expenses.AttributeDefinitions, 1)
}

package main

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/dynamodb"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type CheckinTableArgs struct {
	// name is the logical resource name, "checkins" when empty.
	name string
}

type CheckinTable struct {
	table *dynamodb.Table
}

// NewCheckinTable creates the table holding one item per identifier, keyed by "id".
func NewCheckinTable(ctx *pulumi.Context, args CheckinTableArgs) (*CheckinTable, error) {
	name := args.name
	if name == "" {
		name = "checkins"
	}
	table, err := dynamodb.NewTable(ctx, name, &dynamodb.TableArgs{
		Attributes: dynamodb.TableAttributeArray{
			dynamodb.TableAttributeArgs{
				Name: pulumi.String("id"),
				Type: pulumi.String("S"),
			},
		},
		HashKey:     pulumi.String("id"),
		BillingMode: pulumi.String("PAY_PER_REQUEST"),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating table: %w", err)
	}

	ctx.Export("tableName", table.Name)

	return &CheckinTable{table: table}, nil
}

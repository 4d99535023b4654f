package main

import (
	"sync"
	"testing"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/lambda"
	"github.com/pulumi/pulumi/sdk/v3/go/common/resource"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/stretchr/testify/assert"
)

type mocks int

func (mocks) NewResource(args pulumi.MockResourceArgs) (string, resource.PropertyMap, error) {
	return args.Name + "_id", args.Inputs, nil
}

func (mocks) Call(args pulumi.MockCallArgs) (resource.PropertyMap, error) {
	return args.Args, nil
}

func str(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case *string:
		if s != nil {
			return *s
		}
	}
	return ""
}

func TestCheckinTable(t *testing.T) {
	err := pulumi.RunErr(func(ctx *pulumi.Context) error {
		table, err := NewCheckinTable(ctx, CheckinTableArgs{})
		if err != nil {
			return err
		}

		var wg sync.WaitGroup
		wg.Add(1)
		pulumi.All(table.table.HashKey, table.table.BillingMode).ApplyT(func(all []interface{}) error {
			defer wg.Done()
			assert.Equal(t, "id", str(all[0]))
			assert.Equal(t, "PAY_PER_REQUEST", str(all[1]))
			return nil
		})
		wg.Wait()
		return nil
	}, pulumi.WithMocks("checkin-example-app", "test", mocks(0)))
	assert.NoError(t, err)
}

func TestCheckinSchedule(t *testing.T) {
	err := pulumi.RunErr(func(ctx *pulumi.Context) error {
		fn, err := lambda.NewFunction(ctx, "recorder", &lambda.FunctionArgs{
			Role:    pulumi.String("arn:aws:iam::123456789012:role/recorder"),
			Runtime: pulumi.String("provided.al2023"),
			Handler: pulumi.String("bootstrap"),
		})
		if err != nil {
			return err
		}
		schedule, err := NewCheckinSchedule(ctx, CheckinScheduleArgs{
			expression: "rate(1 minute)",
			function:   fn,
		})
		if err != nil {
			return err
		}

		var wg sync.WaitGroup
		wg.Add(1)
		pulumi.All(schedule.rule.ScheduleExpression).ApplyT(func(all []interface{}) error {
			defer wg.Done()
			assert.Equal(t, "rate(1 minute)", str(all[0]))
			return nil
		})
		wg.Wait()
		return nil
	}, pulumi.WithMocks("checkin-example-app", "test", mocks(0)))
	assert.NoError(t, err)
}

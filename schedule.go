package main

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/cloudwatch"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/lambda"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type CheckinScheduleArgs struct {
	expression string
	function   *lambda.Function
}

type CheckinSchedule struct {
	rule *cloudwatch.EventRule
}

// NewCheckinSchedule invokes the recorder function on a fixed cadence.
func NewCheckinSchedule(ctx *pulumi.Context, args CheckinScheduleArgs) (*CheckinSchedule, error) {
	rule, err := cloudwatch.NewEventRule(ctx, "checkin-schedule", &cloudwatch.EventRuleArgs{
		Description:        pulumi.String("records a random patient check-in"),
		ScheduleExpression: pulumi.String(args.expression),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating event rule: %w", err)
	}

	_, err = cloudwatch.NewEventTarget(ctx, "checkin-schedule-target", &cloudwatch.EventTargetArgs{
		Rule: rule.Name,
		Arn:  args.function.Arn,
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating event target: %w", err)
	}

	_, err = lambda.NewPermission(ctx, "events-lambda-permission", &lambda.PermissionArgs{
		Action:    pulumi.String("lambda:InvokeFunction"),
		Function:  args.function.Name,
		Principal: pulumi.String("events.amazonaws.com"),
		SourceArn: rule.Arn,
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating lambda permission: %w", err)
	}

	return &CheckinSchedule{rule: rule}, nil
}

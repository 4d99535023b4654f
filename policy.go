package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type tableAccess []string

var (
	readOnlyAccess  = tableAccess{"dynamodb:DescribeTable", "dynamodb:GetItem"}
	readWriteAccess = tableAccess{"dynamodb:DescribeTable", "dynamodb:GetItem", "dynamodb:PutItem"}
)

// tablePolicy is an inline policy document granting access on the check-in table.
func tablePolicy(table *CheckinTable, access tableAccess) pulumi.StringOutput {
	return pulumi.JSONMarshal(map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":   "Allow",
				"Action":   []string(access),
				"Resource": table.table.Arn,
			},
		},
	})
}

package main

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/lambda"
	"github.com/pulumi/pulumi-command/sdk/go/command/local"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type LambdaHandler struct {
	function *lambda.Function
	role     *iam.Role
}

type LambdaHandlerArgs struct {
	network      *Network
	table        *CheckinTable
	access       tableAccess
	patientCount int
	timeout      int
}

// NewLambdaHandler builds ./cmd/<name> and deploys it as a function in the
// private subnets with access to the check-in table.
func NewLambdaHandler(ctx *pulumi.Context, name string, args LambdaHandlerArgs) (*LambdaHandler, error) {
	lh := &LambdaHandler{}
	bootstrap := path.Join("asset", name, "bootstrap")

	_, err := local.Run(ctx, &local.RunArgs{
		Dir: pulumi.StringRef("."),
		Command: strings.Join([]string{
			fmt.Sprintf("rm -rf asset/%s && mkdir -p asset/%s", name, name),
			fmt.Sprintf("GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -mod=readonly -o ./%s ./cmd/%s", bootstrap, name),
			fmt.Sprintf("chmod +x ./%s", bootstrap),
		}, " && "),
		AssetPaths: []string{bootstrap},
	})
	if err != nil {
		return nil, fmt.Errorf("Error running local command: %w", err)
	}
	sourceHash, err := hashFile(bootstrap)
	if err != nil {
		return nil, fmt.Errorf("Error hashing %s: %w", bootstrap, err)
	}

	assumeRolePolicy, err := iam.GetPolicyDocument(ctx, &iam.GetPolicyDocumentArgs{
		Statements: []iam.GetPolicyDocumentStatement{
			{
				Actions: []string{"sts:AssumeRole"},
				Principals: []iam.GetPolicyDocumentStatementPrincipal{
					{Type: "Service", Identifiers: []string{"lambda.amazonaws.com"}},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating AssumeRolePolicy: %w", err)
	}
	lh.role, err = iam.NewRole(ctx, name+"-execution-role", &iam.RoleArgs{
		AssumeRolePolicy: pulumi.String(assumeRolePolicy.Json),
		ManagedPolicyArns: pulumi.ToStringArray([]string{
			string(iam.ManagedPolicyAWSLambdaBasicExecutionRole),
			string(iam.ManagedPolicyAWSLambdaVPCAccessExecutionRole),
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating execution role: %w", err)
	}
	_, err = iam.NewRolePolicy(ctx, name+"-table-policy", &iam.RolePolicyArgs{
		Role:   lh.role.Name,
		Policy: tablePolicy(args.table, args.access),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating table policy: %w", err)
	}

	region, err := aws.GetRegion(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Error looking up region: %w", err)
	}

	code := pulumi.NewAssetArchive(map[string]interface{}{"bootstrap": pulumi.NewFileAsset(bootstrap)})
	lh.function, err = lambda.NewFunction(ctx, name, &lambda.FunctionArgs{
		Architectures:  pulumi.ToStringArray([]string{"arm64"}),
		Role:           lh.role.Arn,
		Code:           code,
		SourceCodeHash: pulumi.String(sourceHash),
		Handler:        pulumi.String("bootstrap"),
		Runtime:        pulumi.String("provided.al2023"),
		Timeout:        pulumi.IntPtr(args.timeout),
		Environment: &lambda.FunctionEnvironmentArgs{
			Variables: pulumi.StringMap{
				"STORE_TABLE_NAME": args.table.table.Name,
				"REGION":           pulumi.String(region.Name),
				"PATIENT_COUNT":    pulumi.String(strconv.Itoa(args.patientCount)),
			},
		},
		VpcConfig: &lambda.FunctionVpcConfigArgs{
			SubnetIds:        args.network.vpc.PrivateSubnetIds,
			SecurityGroupIds: pulumi.StringArray{args.network.functionSg.ID()},
		},
	}, pulumi.DependsOn([]pulumi.Resource{lh.role}))
	if err != nil {
		return nil, fmt.Errorf("Error creating lambda function: %w", err)
	}

	ctx.Export(name+"FunctionName", lh.function.Name)

	return lh, nil
}

package main

import (
	"fmt"

	ec2_classic "github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ec2"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ecs"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/servicediscovery"
	"github.com/pulumi/pulumi-awsx/sdk/v2/go/awsx/ec2"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// Network is the VPC shared by the functions and the container service.
type Network struct {
	vpc        *ec2.Vpc
	cluster    *ecs.Cluster
	namespace  *servicediscovery.PrivateDnsNamespace
	functionSg *ec2_classic.SecurityGroup
}

func NewNetwork(ctx *pulumi.Context) (*Network, error) {
	var err error
	network := &Network{}

	as := ec2.SubnetAllocationStrategyAuto
	network.vpc, err = ec2.NewVpc(ctx, "checkin-network", &ec2.VpcArgs{
		CidrBlock:      pulumi.StringRef("10.0.0.0/16"),
		NatGateways:    &ec2.NatGatewayConfigurationArgs{Strategy: ec2.NatGatewayStrategySingle},
		SubnetStrategy: &as,
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating vpc: %w", err)
	}

	network.functionSg, err = ec2_classic.NewSecurityGroup(ctx, "function-sg", &ec2_classic.SecurityGroupArgs{
		VpcId:               network.vpc.VpcId,
		Egress:              egressAll(),
		RevokeRulesOnDelete: pulumi.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating function security group: %w", err)
	}

	namespace, err := servicediscovery.NewPrivateDnsNamespace(ctx, "checkin.internal", &servicediscovery.PrivateDnsNamespaceArgs{
		Vpc: network.vpc.VpcId,
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating namespace: %w", err)
	}
	network.namespace = namespace
	network.cluster, err = ecs.NewCluster(ctx, "cluster", &ecs.ClusterArgs{
		ServiceConnectDefaults: &ecs.ClusterServiceConnectDefaultsArgs{
			Namespace: namespace.Arn,
		},
		Settings: ecs.ClusterSettingArray{
			ecs.ClusterSettingArgs{
				Name:  pulumi.String("containerInsights"),
				Value: pulumi.String("enabled"),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating cluster: %w", err)
	}

	return network, nil
}

func egressAll() ec2_classic.SecurityGroupEgressArray {
	return ec2_classic.SecurityGroupEgressArray{
		ec2_classic.SecurityGroupEgressArgs{
			CidrBlocks:  pulumi.ToStringArray([]string{"0.0.0.0/0"}),
			Description: pulumi.String("Egress all"),
			Protocol:    pulumi.String("-1"),
			FromPort:    pulumi.Int(0),
			ToPort:      pulumi.Int(0),
		},
	}
}

func ingress(port int, sg ...*ec2_classic.SecurityGroup) ec2_classic.SecurityGroupIngressArray {
	sgs := pulumi.StringArray{}
	for i := range sg {
		sgs = append(sgs, sg[i].ID())
	}
	return ec2_classic.SecurityGroupIngressArray{
		ec2_classic.SecurityGroupIngressArgs{
			FromPort:       pulumi.Int(port),
			ToPort:         pulumi.Int(port),
			Protocol:       pulumi.String("tcp"),
			SecurityGroups: sgs,
		},
	}
}

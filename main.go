package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		settings := loadSettings(ctx)

		network, err := NewNetwork(ctx)
		if err != nil {
			return err
		}

		table, err := NewCheckinTable(ctx, CheckinTableArgs{})
		if err != nil {
			return err
		}

		build, err := NewEcrDockerBuild(ctx)
		if err != nil {
			return err
		}

		api, err := NewApi(ctx, ApiArgs{
			network: network,
		})
		if err != nil {
			return err
		}

		recorder, err := NewLambdaHandler(ctx, "recorder", LambdaHandlerArgs{
			network:      network,
			table:        table,
			access:       readWriteAccess,
			patientCount: settings.patientCount,
			timeout:      settings.handlerTimeout,
		})
		if err != nil {
			return err
		}

		_, err = NewCheckinSchedule(ctx, CheckinScheduleArgs{
			expression: settings.checkinSchedule,
			function:   recorder.function,
		})
		if err != nil {
			return err
		}

		reporter, err := NewLambdaHandler(ctx, "reporter", LambdaHandlerArgs{
			network:      network,
			table:        table,
			access:       readOnlyAccess,
			patientCount: settings.patientCount,
			timeout:      settings.handlerTimeout,
		})
		if err != nil {
			return err
		}
		if err := api.registerLambda(ctx, reporter.function); err != nil {
			return err
		}

		_, err = NewEcsService(ctx, EcsServiceArgs{
			image:        build.image,
			api:          api,
			network:      network,
			table:        table,
			patientCount: settings.patientCount,
		})
		if err != nil {
			return err
		}

		return nil
	})
}

package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

type Settings struct {
	patientCount    int
	checkinSchedule string
	handlerTimeout  int
}

func loadSettings(ctx *pulumi.Context) Settings {
	cfg := config.New(ctx, "")
	s := Settings{
		patientCount:    cfg.GetInt("patientCount"),
		checkinSchedule: cfg.Get("checkinSchedule"),
		handlerTimeout:  cfg.GetInt("handlerTimeout"),
	}
	if s.patientCount <= 0 {
		s.patientCount = 10
	}
	if s.checkinSchedule == "" {
		s.checkinSchedule = "rate(1 minute)"
	}
	if s.handlerTimeout <= 0 {
		s.handlerTimeout = 25
	}
	return s
}

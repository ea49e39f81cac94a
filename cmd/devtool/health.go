package main

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const slowResponseThreshold = time.Second

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Usage() string {
	return "[base-url]"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness and readiness of a running server"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := apiURL()
	if len(args) > 0 {
		base = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", base))

	client := resty.New().SetBaseURL(base).SetTimeout(5 * time.Second)
	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		resp, err := client.R().Get(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if resp.IsError() {
			return fmt.Errorf("%s returned %s: %s", path, resp.Status(), resp.String())
		}

		if d := time.Since(start); d > slowResponseThreshold {
			PrintWarning("%s slow response time (%v)", path, d)
		} else {
			PrintSuccess("%s passed (response time: %v)", path, d)
		}
	}
	return nil
}

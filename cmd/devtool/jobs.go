package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type RunJobCommand struct{}

func (c *RunJobCommand) Name() string {
	return "run-job"
}

func (c *RunJobCommand) Usage() string {
	return "<messages|activity>"
}

func (c *RunJobCommand) Description() string {
	return "Trigger a retention job on a running server"
}

func (c *RunJobCommand) Run(args []string) error {
	if len(args) < 1 {
		return errors.New("job name required: messages, activity")
	}
	apiKey := getEnv("API_KEY", "")
	if apiKey == "" {
		return errors.New("API_KEY must be set")
	}

	PrintHeader(fmt.Sprintf("Running job %s", args[0]))

	resp, err := resty.New().
		SetBaseURL(apiURL()).
		SetTimeout(10*time.Second).
		SetHeader("X-API-Key", apiKey).
		R().
		SetPathParam("name", args[0]).
		Post("/api/v1/admin/jobs/{name}/run")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("server returned %s: %s", resp.Status(), resp.String())
	}

	PrintSuccess("Job %s queued", args[0])
	return nil
}

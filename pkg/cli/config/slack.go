package config

import (
	"github.com/urfave/cli/v3"

	"github.com/cybermatters/themis/pkg/service/notify"
)

// Slack holds configuration for critical risk alerting
type Slack struct {
	botToken string
	channel  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for critical risk alerts",
			Sources:     cli.EnvVars("THEMIS_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for critical risk alerts",
			Sources:     cli.EnvVars("THEMIS_SLACK_CHANNEL"),
			Destination: &s.channel,
		},
	}
}

// IsConfigured returns true when both token and channel are set
func (s *Slack) IsConfigured() bool {
	return s.botToken != "" && s.channel != ""
}

// Configure creates a notification service from the configured flags.
// Returns nil when Slack is not configured (alerting is disabled).
func (s *Slack) Configure() (notify.Service, error) {
	if !s.IsConfigured() {
		return nil, nil
	}
	return notify.New(s.botToken, s.channel)
}

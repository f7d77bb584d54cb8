package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/cybermatters/themis/pkg/domain/model"
)

// client implements Service using a Slack bot
type client struct {
	api     *slack.Client
	channel string
}

// New creates a new Slack notifier posting to the given channel
func New(token, channel string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	return &client{
		api:     slack.New(token),
		channel: channel,
	}, nil
}

func (c *client) NotifyCriticalRisk(ctx context.Context, tenant *model.Tenant, risk *model.Risk) error {
	attachment := slack.Attachment{
		Color: "danger",
		Title: fmt.Sprintf("Critical risk registered: %s", risk.Title),
		Fields: []slack.AttachmentField{
			{Title: "Tenant", Value: tenant.Name, Short: true},
			{Title: "Risk code", Value: risk.RiskCode, Short: true},
			{Title: "Category", Value: risk.Category.String(), Short: true},
			{Title: "Inherent score", Value: fmt.Sprintf("%d (L%d × I%d)", risk.InherentScore, risk.Likelihood, risk.Impact), Short: true},
		},
	}

	_, _, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionAttachments(attachment),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post critical risk notification",
			goerr.V("channel", c.channel),
			goerr.V("riskID", risk.ID),
		)
	}

	return nil
}

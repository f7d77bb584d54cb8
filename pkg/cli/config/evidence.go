package config

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/cybermatters/themis/pkg/service/evidence"
)

// Evidence holds configuration for the evidence document store
type Evidence struct {
	bucket string
	prefix string
}

// Flags returns CLI flags for evidence store configuration
func (e *Evidence) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "evidence-bucket",
			Usage:       "Cloud Storage bucket for evidence documents",
			Sources:     cli.EnvVars("THEMIS_EVIDENCE_BUCKET"),
			Destination: &e.bucket,
		},
		&cli.StringFlag{
			Name:        "evidence-prefix",
			Usage:       "Object name prefix within the evidence bucket",
			Sources:     cli.EnvVars("THEMIS_EVIDENCE_PREFIX"),
			Destination: &e.prefix,
		},
	}
}

// Configure creates an evidence store from the configured flags. Returns
// nil when no bucket is set (evidence endpoints are disabled).
func (e *Evidence) Configure(ctx context.Context) (evidence.Service, error) {
	if e.bucket == "" {
		return nil, nil
	}

	var opts []evidence.GCSOption
	if e.prefix != "" {
		opts = append(opts, evidence.WithObjectPrefix(e.prefix))
	}

	return evidence.NewGCS(ctx, e.bucket, opts...)
}

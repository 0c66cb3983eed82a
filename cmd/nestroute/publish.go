package main

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/nestroute/internal/config"
	"github.com/vango-dev/nestroute/internal/errors"
	"github.com/vango-dev/nestroute/pkg/registry"
)

func publishCmd(a *app) *cobra.Command {
	var (
		file   string
		bucket string
		key    string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the route table as JSON",
		Long: `Publish the route table to the targets in nestroute.json (publish.file
and publish.s3), or to the targets given on the command line.

S3 credentials come from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN; the region from publish.s3.region or AWS_REGION.

Examples:
  nestroute publish
  nestroute publish --file dist/routes.json
  nestroute publish --bucket shop-routes --key v2/routes.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			if file != "" {
				a.cfg.Publish.File = file
			}
			if bucket != "" {
				a.cfg.Publish.S3.Bucket = bucket
			}
			if key != "" {
				a.cfg.Publish.S3.Key = key
			}
			if a.cfg.Publish.S3.Bucket != "" && a.cfg.Publish.S3.Key == "" {
				a.cfg.Publish.S3.Key = "routes.json"
			}

			_, routes, err := a.tree()
			if err != nil {
				return err
			}

			pubs, targets := publishers(a.cfg, file != "")
			if len(pubs) == 0 {
				return errors.New("E401")
			}

			snap := registry.FromRoutes(a.cfg.Name, routes)
			if err := registry.Multi(pubs...).Publish(cmd.Context(), snap); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, t := range targets {
				success(out, "Published %d routes to %s", len(snap.Routes), t)
			}
			a.logger.Info("route registry published", "snapshot", snap.ID, "routes", len(snap.Routes), "targets", len(targets))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write the route table to this file")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Upload the route table to this S3 bucket")
	cmd.Flags().StringVar(&key, "key", "", "S3 object key (default: routes.json)")

	return cmd
}

// publishers returns the configured publish targets. A file given on the
// command line is relative to the working directory.
func publishers(cfg *config.Config, fileFromFlag bool) ([]registry.Publisher, []string) {
	var (
		pubs    []registry.Publisher
		targets []string
	)

	if cfg.Publish.File != "" {
		path := cfg.PublishFilePath()
		if fileFromFlag {
			path = cfg.Publish.File
		}
		pubs = append(pubs, registry.NewFilePublisher(path))
		targets = append(targets, path)
	}

	if s3cfg := cfg.Publish.S3; s3cfg.Bucket != "" {
		pubs = append(pubs, registry.NewS3Publisher(newS3Client(s3cfg), s3cfg.Bucket, s3cfg.Key))
		targets = append(targets, "s3://"+s3cfg.Bucket+"/"+s3cfg.Key)
	}

	return pubs, targets
}

// newS3Client builds an S3 client from the publish config and the standard
// AWS environment variables.
func newS3Client(cfg config.S3Config) *s3.Client {
	region := cfg.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}

	opts := s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials(ctx context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "nestroute-env",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, errors.New("E400").
			WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set to publish to S3")
	}
	return creds, nil
}

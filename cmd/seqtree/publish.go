package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/seqtree/pkg/publish"
	"github.com/vango-dev/seqtree/pkg/script"
)

// newStore creates the object store for publishing. Tests replace it.
var newStore = func(opts publish.Options) (publish.ObjectStore, error) {
	return publish.NewS3Client(opts)
}

func (a *app) publishCmd() *cobra.Command {
	var (
		bucket string
		prefix string
		frames bool
	)

	cmd := &cobra.Command{
		Use:   "publish <script.json>...",
		Short: "Render scripts and upload the pages to S3",
		Long: `Render each script as a full HTML page and upload it to the bucket
configured in seqtree.json. Credentials are read from AWS_ACCESS_KEY_ID,
AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.

Examples:
  seqtree publish scripts/list.json
  seqtree publish scripts/*.json --bucket=previews --prefix=pr-42/
  seqtree publish ls
  seqtree publish prune --older-than=168h`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.publisher(bucket, prefix)
			if err != nil {
				return err
			}
			for _, path := range args {
				sc, html, err := a.renderScript(cmd, path, true)
				if err != nil {
					return err
				}
				key, err := p.Publish(cmd.Context(), sc.Name, html)
				if err != nil {
					return err
				}
				a.logger.Info("published page", "script", sc.Name, "key", key)
				success(cmd.ErrOrStderr(), "Published %s", key)

				if frames {
					opts, err := a.builderOptions()
					if err != nil {
						return err
					}
					fs, err := sc.Frames(cmd.Context(), script.NewRegistry(), opts...)
					if err != nil {
						return err
					}
					key, err := p.PublishFrames(cmd.Context(), sc.Name, fs)
					if err != nil {
						return err
					}
					success(cmd.ErrOrStderr(), "Published %s", key)
				}
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&bucket, "bucket", "", "Destination bucket (default from seqtree.json)")
	flags.StringVar(&prefix, "prefix", "", "Key prefix (default from seqtree.json)")
	cmd.Flags().BoolVar(&frames, "frames", false, "Also upload the frames as JSON")

	cmd.AddCommand(a.publishListCmd(&bucket, &prefix), a.publishPruneCmd(&bucket, &prefix))
	return cmd
}

func (a *app) publishListCmd(bucket, prefix *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List published objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.publisher(*bucket, *prefix)
			if err != nil {
				return err
			}
			objects, err := p.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, obj := range objects {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n",
					obj.Key, obj.Size, obj.LastModified.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}
}

func (a *app) publishPruneCmd(bucket, prefix *string) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete published objects older than a given age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.publisher(*bucket, *prefix)
			if err != nil {
				return err
			}
			deleted, err := p.Prune(cmd.Context(), olderThan)
			for _, key := range deleted {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			if err != nil {
				return err
			}
			a.logger.Info("pruned objects", "count", len(deleted), "older_than", olderThan)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 7*24*time.Hour, "Minimum age of deleted objects")

	return cmd
}

func (a *app) publisher(bucket, prefix string) (*publish.S3Publisher, error) {
	opts := publish.Options{
		Bucket:    a.cfg.Publish.Bucket,
		Prefix:    a.cfg.Publish.Prefix,
		Region:    a.cfg.Publish.Region,
		Endpoint:  a.cfg.Publish.Endpoint,
		PathStyle: a.cfg.Publish.PathStyle,
	}
	if bucket != "" {
		opts.Bucket = bucket
	}
	if prefix != "" {
		opts.Prefix = prefix
	}

	store, err := newStore(opts)
	if err != nil {
		return nil, err
	}
	return publish.NewS3Publisher(store, opts), nil
}

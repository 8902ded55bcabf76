package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/report"
)

func newExportCommand(get func() *app) *cobra.Command {
	var (
		out      string
		bucket   string
		prefix   string
		endpoint string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every pet record as " + report.Filename,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			ctx := cmd.Context()
			if err := a.sync.Start(ctx); err != nil {
				return err
			}
			r, err := a.sync.Report()
			if err != nil {
				return err
			}

			if bucket == "" {
				bucket = a.cfg.S3Config.Bucket
			}
			if endpoint == "" {
				endpoint = a.cfg.S3Config.Endpoint
			}

			var sink report.Sink = report.FileSink{Path: out}
			if bucket != "" && out == "" {
				s3Sink, err := report.NewS3Sink(ctx, report.S3Config{
					Bucket:   bucket,
					Region:   a.cfg.S3Config.Region,
					Endpoint: endpoint,
					Prefix:   prefix,
				})
				if err != nil {
					return err
				}
				sink = s3Sink
			}

			loc, err := sink.Deliver(ctx, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Exported %d record(s) to %s\n", r.Rows, loc)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this local path (default ./"+report.Filename+")")
	cmd.Flags().StringVar(&bucket, "s3-bucket", "", "upload to this S3 bucket instead of a local file")
	cmd.Flags().StringVar(&prefix, "s3-prefix", "", "object key prefix inside the bucket")
	cmd.Flags().StringVar(&endpoint, "s3-endpoint", "", "S3-compatible endpoint, e.g. MinIO")
	return cmd
}

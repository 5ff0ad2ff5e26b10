package main

import (
	"fmt"

	"github.com/hyperjump/nasari/internal/cli"
	"github.com/hyperjump/nasari/internal/models"
	"github.com/hyperjump/nasari/internal/source"
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	q := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show loaded table sizes and data paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cli.ParseOutputFormat(q.output)
			if err != nil {
				return err
			}
			var status *models.StatusResponse
			if q.serverURL != "" {
				status, err = cli.NewClient(q.serverURL).Status(cmd.Context())
				if err != nil {
					return fmt.Errorf("status failed: %w", err)
				}
			} else {
				engine, cfg, err := loadEngine(cmd.Context(), opts)
				if err != nil {
					return err
				}
				status = &models.StatusResponse{
					Stats:   engine.Stats(),
					Version: version,
					Config: &models.StatusConfig{
						MappingPath: cfg.Data.MappingPath,
						VectorsPath: cfg.Data.VectorsPath,
					},
				}
				if n, err := source.DiskUsageBytes(cfg.Data.MappingPath, cfg.Data.VectorsPath); err == nil {
					status.DiskUsageBytes = &n
				}
			}
			return cli.WriteStatus(cmd.OutOrStdout(), status, format)
		},
	}
	q.register(cmd)
	return cmd
}

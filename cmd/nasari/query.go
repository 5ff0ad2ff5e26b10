package main

import (
	"context"
	"fmt"

	"github.com/hyperjump/nasari/internal/cli"
	"github.com/hyperjump/nasari/internal/config"
	"github.com/hyperjump/nasari/internal/lookup"
	"github.com/hyperjump/nasari/pkg/utils"
	"github.com/spf13/cobra"
)

type queryOptions struct {
	serverURL string
	output    string
}

func (q *queryOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.serverURL, "server", defaultServerURL, `server URL (empty = load the data files directly)`)
	cmd.Flags().StringVar(&q.output, "output", "text", "output format: text or json")
}

func newVectorCmd(opts *rootOptions) *cobra.Command {
	q := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "vector <key>",
		Short: "Print the NASARI vector of a WordNet offset or BabelNet ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(q.output)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if q.serverURL != "" {
				res, err := cli.NewClient(q.serverURL).Vector(ctx, args[0])
				if err != nil {
					return err
				}
				return cli.WriteVector(cmd.OutOrStdout(), res, format)
			}
			engine, _, err := loadEngine(ctx, opts)
			if err != nil {
				return err
			}
			res, err := engine.Vector(args[0])
			if err != nil {
				return err
			}
			return cli.WriteVector(cmd.OutOrStdout(), res, format)
		},
	}
	q.register(cmd)
	return cmd
}

func newSimilarityCmd(opts *rootOptions) *cobra.Command {
	q := &queryOptions{}
	cmd := &cobra.Command{
		Use:     "similarity <key1> <key2>",
		Aliases: []string{"cosine"},
		Short:   "Print the cosine similarity of two WordNet offsets or BabelNet IDs",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(q.output)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if q.serverURL != "" {
				res, err := cli.NewClient(q.serverURL).Similarity(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return cli.WriteSimilarity(cmd.OutOrStdout(), res, format)
			}
			engine, _, err := loadEngine(ctx, opts)
			if err != nil {
				return err
			}
			res, err := engine.Similarity(args[0], args[1])
			if err != nil {
				return err
			}
			return cli.WriteSimilarity(cmd.OutOrStdout(), res, format)
		},
	}
	q.register(cmd)
	return cmd
}

// loadEngine loads the data files named by the config for direct queries.
func loadEngine(ctx context.Context, opts *rootOptions) (*lookup.Engine, *config.Config, error) {
	cfg, _, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := utils.NewLoggerOrNop(cfg.Debug || opts.debug)
	defer logger.Sync()
	engine, err := lookup.Load(ctx, &cfg.Data, &cfg.Similarity, logger)
	if err != nil {
		return nil, nil, err
	}
	return engine, cfg, nil
}

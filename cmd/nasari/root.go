package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperjump/nasari/internal/config"
	"github.com/spf13/cobra"
)

const (
	defaultConfigPath = "/usr/local/etc/nasari/config.yaml"
	defaultServerURL  = "http://localhost:5000"
)

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "nasari",
		Short:         "Serve NASARI vectors and cosine similarity over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `nasari loads a WordNet 3.1 -> BabelNet mapping and a NASARI embedding file
into memory and answers vector and similarity queries for WordNet offsets
or BabelNet synset IDs.`,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "config file path")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newServerCmd(opts),
		newVectorCmd(opts),
		newSimilarityCmd(opts),
		newStatusCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nasari version %s\n", version)
		},
	}
}

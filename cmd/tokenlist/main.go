package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/quantmind-br/tokenlist-go/internal/cache"
	"github.com/quantmind-br/tokenlist-go/internal/config"
	"github.com/quantmind-br/tokenlist-go/internal/domain"
	"github.com/quantmind-br/tokenlist-go/internal/metrics"
	"github.com/quantmind-br/tokenlist-go/internal/strategies"
	"github.com/quantmind-br/tokenlist-go/internal/tokenlist"
	"github.com/quantmind-br/tokenlist-go/internal/utils"
	"github.com/quantmind-br/tokenlist-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// queryOptions holds the filter and output flags of the root command
type queryOptions struct {
	cfgFile        string
	verbose        bool
	mirrors        []string
	tag            string
	excludeTag     string
	chainID        int
	excludeChainID int
	cluster        string
	format         string
	showMetrics    bool
}

func newRootCmd() *cobra.Command {
	opts := &queryOptions{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "tokenlist",
		Short: "Resolve and filter the Solana token list",
		Long: `tokenlist fetches the Solana token list from one of its mirror families
(GitHub, Solana, CDN), merges every mirror that answered, and prints the
tokens left after the requested filters.

Filters apply in order: --tag, --exclude-tag, --chain-id, --exclude-chain-id,
--cluster.`,
		Version:       version.Short(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, v, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ~/.tokenlist/config.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	flags.StringP("strategy", "s", "", "Strategy to resolve with: GitHub, Solana or CDN (default CDN)")
	flags.StringSlice("mirror", nil, "Replace the mirror URLs of the selected strategy")
	flags.Duration("timeout", 0, "Request timeout (0 keeps the transport default)")
	flags.String("user-agent", "", "Custom User-Agent")
	flags.Bool("cache", false, "Cache fetched documents on disk")
	flags.Duration("cache-ttl", config.DefaultCacheTTL, "Cache TTL")

	_ = v.BindPFlag("sources.default_strategy", flags.Lookup("strategy"))
	_ = v.BindPFlag("fetch.timeout", flags.Lookup("timeout"))
	_ = v.BindPFlag("fetch.user_agent", flags.Lookup("user-agent"))
	_ = v.BindPFlag("cache.enabled", flags.Lookup("cache"))
	_ = v.BindPFlag("cache.ttl", flags.Lookup("cache-ttl"))

	local := cmd.Flags()
	local.StringVar(&opts.tag, "tag", "", "Keep tokens with this tag")
	local.StringVar(&opts.excludeTag, "exclude-tag", "", "Drop tokens with this tag")
	local.IntVar(&opts.chainID, "chain-id", 0, "Keep tokens on this chain id")
	local.IntVar(&opts.excludeChainID, "exclude-chain-id", 0, "Drop tokens on this chain id")
	local.StringVar(&opts.cluster, "cluster", "", "Keep tokens on this cluster (mainnet-beta, testnet, devnet)")
	local.StringVarP(&opts.format, "format", "f", "json", "Output format: json or yaml")
	local.BoolVar(&opts.showMetrics, "metrics", false, "Print resolution metrics to stderr")

	cmd.AddCommand(newStrategiesCmd(v, opts))
	cmd.AddCommand(newCacheCmd(v, opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads config file, environment and bound flags into a Config
func loadConfig(cmd *cobra.Command, v *viper.Viper, opts *queryOptions) (*config.Config, error) {
	if opts.cfgFile != "" {
		v.SetConfigFile(opts.cfgFile)
	}
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("mirror") {
		mirrors, _ := cmd.Flags().GetStringSlice("mirror")
		if err := cfg.Sources.SetMirrors(cfg.Sources.Strategy(), mirrors); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runQuery(cmd *cobra.Command, v *viper.Viper, opts *queryOptions) error {
	if opts.format != "json" && opts.format != "yaml" {
		return domain.NewInvalidArgumentError("format", opts.format, "unsupported format: "+opts.format+", please use one of json,yaml")
	}

	cfg, err := loadConfig(cmd, v, opts)
	if err != nil {
		return err
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cmd.ErrOrStderr(),
		Verbose: opts.verbose,
	})

	registry := prometheus.NewRegistry()
	deps, err := strategies.NewDependencies(strategies.DependencyOptions{
		Timeout:     cfg.Fetch.Timeout,
		EnableCache: cfg.Cache.Enabled,
		CacheTTL:    cfg.Cache.TTL,
		CacheDir:    cfg.Cache.Directory,
		UserAgent:   cfg.Fetch.UserAgent,
		ProxyURL:    cfg.Fetch.ProxyURL,
		Logger:      logger,
		Metrics:     metrics.NewMetrics("", registry),
	})
	if err != nil {
		return fmt.Errorf("failed to create dependencies: %w", err)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider := tokenlist.NewProviderFromConfig(cfg.Sources, deps)
	container, err := provider.Resolve(ctx, cfg.Sources.Strategy())
	if err != nil {
		return err
	}

	container, err = applyFilters(cmd, container, opts)
	if err != nil {
		return err
	}

	if err := writeTokens(cmd.OutOrStdout(), opts.format, container.GetList()); err != nil {
		return err
	}

	if opts.showMetrics {
		return metrics.WriteText(cmd.ErrOrStderr(), registry)
	}
	return nil
}

// applyFilters chains the filters whose flags were set
func applyFilters(cmd *cobra.Command, c *tokenlist.Container, opts *queryOptions) (*tokenlist.Container, error) {
	flags := cmd.Flags()
	if flags.Changed("tag") {
		c = c.FilterByTag(opts.tag)
	}
	if flags.Changed("exclude-tag") {
		c = c.ExcludeByTag(opts.excludeTag)
	}
	if flags.Changed("chain-id") {
		c = c.FilterByChainID(domain.ChainID(opts.chainID))
	}
	if flags.Changed("exclude-chain-id") {
		c = c.ExcludeByChainID(domain.ChainID(opts.excludeChainID))
	}
	if flags.Changed("cluster") {
		return c.FilterByClusterSlug(opts.cluster)
	}
	return c, nil
}

func writeTokens(w io.Writer, format string, tokens []domain.TokenInfo) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tokens); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tokens)
	}
}

func newStrategiesCmd(v *viper.Viper, opts *queryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List strategies and their mirrors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v, opts)
			if err != nil {
				return err
			}

			provider := tokenlist.NewProviderFromConfig(cfg.Sources, &strategies.Dependencies{})
			out := cmd.OutOrStdout()
			for _, name := range provider.Strategies() {
				marker := " "
				if name == cfg.Sources.Strategy() {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, name)

				s, _ := provider.Strategy(name)
				for _, repo := range s.Repositories() {
					fmt.Fprintf(out, "    %s\n", repo)
				}
			}
			return nil
		},
	}
}

func newCacheCmd(v *viper.Viper, opts *queryOptions) *cobra.Command {
	// openCache opens the configured cache directory whether or not caching is enabled
	openCache := func(cmd *cobra.Command) (*cache.BadgerCache, string, error) {
		cfg, err := loadConfig(cmd, v, opts)
		if err != nil {
			return nil, "", err
		}
		c, err := cache.NewBadgerCache(cache.Options{Directory: cfg.Cache.Directory})
		if err != nil {
			return nil, "", err
		}
		return c, cfg.Cache.Directory, nil
	}

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the document cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the cache directory and entry count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, dir, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "directory: %s\n", dir)
			fmt.Fprintf(out, "entries: %d\n", c.Size())
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			removed := c.Size()
			if err := c.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", removed)
			return nil
		},
	})

	return cacheCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"storj.io/crypto-gas-quote/pkg/config"
	"storj.io/crypto-gas-quote/pkg/eth"
	"storj.io/crypto-gas-quote/pkg/quote"
	"storj.io/crypto-gas-quote/pkg/report"
	"storj.io/crypto-gas-quote/pkg/rpc"
)

const (
	defaultLogLevel = "warn"
)

type rootConfig struct {
	ConfigPath string
	LogLevel   string
	LogDir     string

	Denom      string
	JSON       bool
	NoColor    bool
	Retries    int
	RetryDelay time.Duration
}

func newRootCommand() *cobra.Command {
	root := new(rootConfig)
	cmd := &cobra.Command{
		Use:   "gasquote [flags] <rpc-url>",
		Short: "Suggest slow, standard and fast EIP-1559 fees from an Ethereum node",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageErr.New("expected a single RPC endpoint URL but got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return doQuote(cmd, root, args)
		},
		Version:       getVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErr.Wrap(err)
	})

	cmd.PersistentFlags().StringVarP(
		&root.ConfigPath,
		"config", "c",
		config.DefaultPath,
		"Path to the TOML configuration file")
	cmd.PersistentFlags().StringVarP(
		&root.LogLevel,
		"log-level", "",
		defaultLogLevel,
		"Minimum level of log messages written to stderr (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(
		&root.LogDir,
		"log-dir", "",
		"",
		"Directory to also write debug logs to as JSON")
	cmd.PersistentFlags().StringVarP(
		&root.Denom,
		"denom", "d",
		eth.WEI.String(),
		"Denomination to print amounts in (wei, gwei, eth)")
	cmd.PersistentFlags().BoolVarP(
		&root.JSON,
		"json", "",
		false,
		"Print the summary as JSON")
	cmd.PersistentFlags().BoolVarP(
		&root.NoColor,
		"no-color", "",
		false,
		"Disable colored output")
	cmd.PersistentFlags().IntVarP(
		&root.Retries,
		"retries", "",
		0,
		"How many times to retry a call that fails to reach the node")
	cmd.PersistentFlags().DurationVarP(
		&root.RetryDelay,
		"retry-delay", "",
		0,
		"Initial delay between retries, doubled on every retry (default from config)")

	cmd.AddCommand(newConfigCommand(root))
	return cmd
}

// load reads the configuration file and applies any flags that were set on
// the command line.
func (root *rootConfig) load(cmd *cobra.Command) (_ config.Config, err error) {
	var cfg config.Config
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(root.ConfigPath)
	} else {
		cfg, err = config.LoadOptional(root.ConfigPath)
	}
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("denom") {
		denom, err := eth.ParseDenom(root.Denom)
		if err != nil {
			return config.Config{}, usageErr.Wrap(err)
		}
		cfg.Output.Denom = denom
	}
	if flags.Changed("json") {
		cfg.Output.Format = config.FormatText
		if root.JSON {
			cfg.Output.Format = config.FormatJSON
		}
	}
	if flags.Changed("no-color") {
		cfg.Output.Color = !root.NoColor
	}
	if flags.Changed("retries") {
		if root.Retries < 0 {
			return config.Config{}, usageErr.New("--retries must not be negative")
		}
		cfg.RPC.RetryAttempts = root.Retries + 1
	}
	if flags.Changed("retry-delay") {
		cfg.RPC.RetryDelay = config.Duration(root.RetryDelay)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, usageErr.Wrap(err)
	}
	return cfg, nil
}

func doQuote(cmd *cobra.Command, root *rootConfig, args []string) error {
	cfg, err := root.load(cmd)
	if err != nil {
		return err
	}

	endpoint := cfg.RPC.Endpoint
	if len(args) > 0 {
		endpoint = args[0]
	}
	if endpoint == "" {
		return usageErr.New("missing RPC endpoint URL: pass it as an argument or set rpc.endpoint in %s", root.ConfigPath)
	}

	log, err := openLog(cmd.ErrOrStderr(), root.LogLevel, root.LogDir)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client := rpc.NewRetrying(
		rpc.NewClient(endpoint, rpc.WithLogger(log)),
		cfg.RPC.RetryPolicy(),
		log)

	// Keep stdout to exactly one document when printing JSON.
	stdout := cmd.OutOrStdout()
	progress := stdout
	if cfg.Output.Format == config.FormatJSON {
		progress = cmd.ErrOrStderr()
	}

	q, err := quote.New(client, quote.Options{
		Multipliers: cfg.Tiers,
		Progress:    progress,
		Log:         log,
	}).Run(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.Output.Format == config.FormatJSON {
		return report.JSON(stdout, q, cfg.Output.Denom)
	}
	_, _ = fmt.Fprintln(stdout)
	report.Text(stdout, q, report.Options{
		Denom: cfg.Output.Denom,
		Color: cfg.Output.Color && isTerminal(stdout),
	})
	return nil
}

func getVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	return fmt.Sprintf("%s (built with %s)", buildInfo.Main.Version, runtime.Version())
}

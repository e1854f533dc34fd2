package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/zeebo/errs"

	"storj.io/crypto-gas-quote/pkg/eth"
	"storj.io/crypto-gas-quote/pkg/fees"
	"storj.io/crypto-gas-quote/pkg/rpc"
)

var Error = errs.Class("config")

const (
	DefaultPath = "~/.gasquote/config.toml"

	defaultRetryAttempts = 1
	defaultRetryDelay    = Duration(500 * time.Millisecond)
)

type Config struct {
	RPC    RPC              `toml:"rpc"`
	Tiers  fees.Multipliers `toml:"tiers"`
	Output Output           `toml:"output"`
}

type RPC struct {
	// Endpoint is the JSON-RPC URL used when none is given on the command
	// line.
	Endpoint string `toml:"endpoint"`

	// RetryAttempts is the total number of tries for a call that fails to
	// reach the node. 1 disables retries.
	RetryAttempts int `toml:"retry_attempts"`

	// RetryDelay is the initial backoff between tries.
	RetryDelay Duration `toml:"retry_delay"`
}

func (r RPC) RetryPolicy() rpc.RetryPolicy {
	return rpc.RetryPolicy{
		Attempts: r.RetryAttempts,
		Delay:    time.Duration(r.RetryDelay),
	}
}

type Output struct {
	Denom  eth.Denom `toml:"denom"`
	Format Format    `toml:"format"`

	// Color only takes effect when stdout is a terminal.
	Color bool `toml:"color"`
}

func Default() Config {
	return Config{
		RPC: RPC{
			RetryAttempts: defaultRetryAttempts,
			RetryDelay:    defaultRetryDelay,
		},
		Tiers: fees.DefaultMultipliers(),
		Output: Output{
			Denom:  eth.WEI,
			Format: FormatText,
			Color:  true,
		},
	}
}

func (c Config) Validate() error {
	if c.RPC.RetryAttempts < 1 {
		return Error.New("rpc.retry_attempts must be at least 1: got %d", c.RPC.RetryAttempts)
	}
	if c.RPC.RetryDelay < 0 {
		return Error.New("rpc.retry_delay must not be negative: got %s", time.Duration(c.RPC.RetryDelay))
	}
	if err := c.Tiers.Validate(); err != nil {
		return Error.Wrap(err)
	}
	return nil
}

// Load reads the config at path. A leading ~ is expanded to the home
// directory.
func Load(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, Error.Wrap(err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return Config{}, Error.Wrap(fmt.Errorf("failed to read config: %w", err))
	}
	return Parse(data)
}

// LoadOptional is like Load but returns the defaults if the file does not
// exist.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func Parse(data []byte) (Config, error) {
	config := Default()

	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(&config); err != nil {
		return Config{}, Error.Wrap(fmt.Errorf("failed to unmarshal config: %w", err))
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Marshal() ([]byte, error) {
	b, err := toml.Marshal(c)
	return b, Error.Wrap(err)
}

func DumpUnknownFields(err error) string {
	var sme *toml.StrictMissingError
	if errors.As(err, &sme) {
		return sme.String()
	}
	return ""
}

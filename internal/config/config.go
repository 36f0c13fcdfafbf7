package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/fleshka4/amm-engine/internal/fees"
)

// RPCURLEnv overrides rpc_url from the config file when set.
const RPCURLEnv = "ETH_RPC_URL"

// Config holds application configuration loaded from file.
type Config struct {
	RPCURL            string        `yaml:"rpc_url"`
	RPCTimeout        time.Duration `yaml:"rpc_timeout"`
	RPCRetries        uint          `yaml:"rpc_retries"`
	ListenAddr        string        `yaml:"listen_addr"`
	GraceTimeout      time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	AllowedOrigins    []string      `yaml:"allowed_origins"`

	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`

	// EstimateFees prices on-chain Uniswap V2 pairs. Nil only when the key is
	// absent, so an explicit all-zero schedule stays fee-free.
	EstimateFees *fees.Schedule `yaml:"estimate_fees"`
}

// Load reads the config from a YAML file path, applies fallbacks and
// validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to open config file: os.Open")
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse config file: decoder.Decode")
	}

	if url := strings.TrimSpace(os.Getenv(RPCURLEnv)); url != "" {
		cfg.RPCURL = url
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	const defaultTimeout = 5 * time.Second
	if c.ListenAddr == "" {
		c.ListenAddr = ":1337"
	}
	if c.GraceTimeout == 0 {
		c.GraceTimeout = defaultTimeout
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaultTimeout
	}
	if c.RPCTimeout == 0 {
		c.RPCTimeout = defaultTimeout
	}
	if c.RPCRetries == 0 {
		c.RPCRetries = 3
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.EstimateFees == nil {
		c.EstimateFees = &fees.Schedule{TradeFeeNumerator: 3, TradeFeeDenominator: 1000}
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var err error
	if _, lvlErr := zapcore.ParseLevel(c.LogLevel); lvlErr != nil {
		err = multierr.Append(err, errors.Wrap(lvlErr, "log_level"))
	}
	if c.RequestTimeout < 0 || c.GraceTimeout < 0 || c.ReadHeaderTimeout < 0 || c.RPCTimeout < 0 {
		err = multierr.Append(err, errors.New("timeouts cannot be negative"))
	}
	if c.LogMaxSizeMB < 0 || c.LogMaxBackups < 0 {
		err = multierr.Append(err, errors.New("log rotation limits cannot be negative"))
	}
	if c.EstimateFees == nil {
		err = multierr.Append(err, errors.New("estimate_fees is not set"))
	} else if feeErr := c.EstimateFees.Validate(); feeErr != nil {
		err = multierr.Append(err, errors.Wrap(feeErr, "estimate_fees"))
	}
	return err
}

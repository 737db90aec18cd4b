package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Explorer ExplorerConfig `mapstructure:"explorer"`
	Wallets  WalletsConfig  `mapstructure:"wallets"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	NATS     NATSConfig     `mapstructure:"nats"`
	HTTP     HTTPConfig     `mapstructure:"http"`
}

// AppConfig represents application-specific configuration
type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// ExplorerConfig describes the block explorer API and how hard we may hit it
type ExplorerConfig struct {
	APIURL               string        `mapstructure:"api_url"`
	AddressURL           string        `mapstructure:"address_url"`
	APIKey               string        `mapstructure:"api_key"`
	RequestDelay         time.Duration `mapstructure:"request_delay"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
	RateLimitPolicy      string        `mapstructure:"rate_limit_policy"`
	CheckpointStartBlock uint64        `mapstructure:"checkpoint_start_block"`
	CheckpointWindow     int           `mapstructure:"checkpoint_window"`
}

// WalletsConfig holds the JSON-encoded address lists as they were configured.
// They are decoded per report so a broken list only affects its own flow.
type WalletsConfig struct {
	Addresses    string `mapstructure:"addresses"`
	AllAddresses string `mapstructure:"all_addresses"`
}

// ScheduleConfig represents the periodic status report configuration
type ScheduleConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	Recipient string        `mapstructure:"recipient"`
}

// TelegramConfig represents Telegram bot configuration
type TelegramConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Token       string `mapstructure:"token"`
	PollTimeout int    `mapstructure:"poll_timeout"`
}

// NATSConfig represents NATS configuration
type NATSConfig struct {
	URL               string        `mapstructure:"url"`
	SubjectPrefix     string        `mapstructure:"subject_prefix"`
	QueueGroup        string        `mapstructure:"queue_group"`
	ConnectTimeout    time.Duration `mapstructure:"connect_timeout"`
	ReconnectAttempts int           `mapstructure:"reconnect_attempts"`
	ReconnectDelay    time.Duration `mapstructure:"reconnect_delay"`
	Enabled           bool          `mapstructure:"enabled"`
}

// HTTPConfig represents the HTTP server configuration
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// Rate limit policies understood by the explorer client
const (
	RateLimitFixedDelay  = "fixed_delay"
	RateLimitTokenBucket = "token_bucket"
)

// Load loads configuration from environment variables and files
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/wallet-checkpoint-monitor")

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindLegacyEnv(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Wallets.Addresses = strings.TrimSpace(config.Wallets.Addresses)
	config.Wallets.AllAddresses = strings.TrimSpace(config.Wallets.AllAddresses)

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.env", "production")
	v.SetDefault("app.log_level", "info")

	// Explorer defaults (Sepolia Etherscan)
	v.SetDefault("explorer.api_url", "https://api-sepolia.etherscan.io/api")
	v.SetDefault("explorer.address_url", "https://sepolia.etherscan.io/address/")
	v.SetDefault("explorer.api_key", "")
	v.SetDefault("explorer.request_delay", "1s")
	v.SetDefault("explorer.request_timeout", "0s")
	v.SetDefault("explorer.rate_limit_policy", RateLimitFixedDelay)
	v.SetDefault("explorer.checkpoint_start_block", 7852278)
	v.SetDefault("explorer.checkpoint_window", 2000)

	// Wallet lists
	v.SetDefault("wallets.addresses", "")
	v.SetDefault("wallets.all_addresses", "")

	// Schedule defaults
	v.SetDefault("schedule.enabled", true)
	v.SetDefault("schedule.interval", "1h")
	v.SetDefault("schedule.recipient", "")

	// Telegram defaults
	v.SetDefault("telegram.enabled", true)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.poll_timeout", 60)

	// NATS defaults
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.subject_prefix", "wallets.reports")
	v.SetDefault("nats.queue_group", "wallet-checkpoint-monitor")
	v.SetDefault("nats.connect_timeout", "10s")
	v.SetDefault("nats.reconnect_attempts", 5)
	v.SetDefault("nats.reconnect_delay", "2s")
	v.SetDefault("nats.enabled", false)

	// HTTP defaults
	v.SetDefault("http.enabled", true)
	v.SetDefault("http.port", 8080)
}

// bindLegacyEnv keeps the variable names the bot has always been deployed with
func bindLegacyEnv(v *viper.Viper) {
	v.BindEnv("explorer.api_key", "ETHERSCAN_API_KEY")
	v.BindEnv("wallets.addresses", "ADDRESSES")
	v.BindEnv("wallets.all_addresses", "ALL_ADDRESSES")
	v.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("schedule.recipient", "TELEGRAM_CHAT_ID")
	v.BindEnv("nats.url", "NATS_URL")
}

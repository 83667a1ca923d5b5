package cli

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"poolwatch/config"
)

var rootCmd = &cobra.Command{
	Use:   "poolwatch",
	Short: "poolwatch polls a Cardano stake pool and serves its state",
	Long: "poolwatch polls Blockfrost and Binance on a fixed interval, keeps a snapshot of one " +
		"stake pool and the recent epochs, records minted blocks as leaderlogs and serves it all over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

// logLevel is shared by every handler so a config reload can change it in place.
var logLevel = new(slog.LevelVar)

// keys without a default still need binding so Unmarshal sees their env values.
var envOnlyKeys = []string{
	"blockfrost.apiKey",
	"server.apiKey",
	"store.url",
	"db.url",
	"db.token",
	"db.org",
	"db.bucket",
	"redis.url",
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		return errors.New("unable to run root command")
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("config", "", "path to the configuration file")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	rootCmd.PersistentFlags().String("pool.hash", "", "stake pool id or hex hash")
	_ = viper.BindPFlag("pool.hash", rootCmd.PersistentFlags().Lookup("pool.hash"))
	rootCmd.PersistentFlags().String("server.addr", "", "http listen address")
	_ = viper.BindPFlag("server.addr", rootCmd.PersistentFlags().Lookup("server.addr"))
	rootCmd.PersistentFlags().String("logging.level", "", "log level: debug, info, warn or error")
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("logging.level"))
}

func initConfig() {
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	configureViper()
	initLogging()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Info("no config file found, using defaults and environment")
		} else {
			slog.Warn("Failed to read config file", "error", err)
		}
		return
	}
	setLogLevel(viper.GetString("logging.level"))
	slog.Info("using config file", "file", viper.ConfigFileUsed())

	viper.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("config file changed", "file", e.Name, "op", e.Op.String())
		setLogLevel(viper.GetString("logging.level"))
	})
	viper.WatchConfig()
}

func configureViper() {
	viper.SetEnvPrefix("POOLWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for key, value := range config.Defaults() {
		viper.SetDefault(key, value)
	}
	for _, key := range envOnlyKeys {
		_ = viper.BindEnv(key)
	}
}

func initLogging() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	})
	slog.SetDefault(slog.New(handler))
	setLogLevel(viper.GetString("logging.level"))
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setLogLevel(name string) {
	level := parseLevel(name)
	if logLevel.Level() != level {
		slog.Info("Setting log level", "level", level.String())
	}
	logLevel.Set(level)
}

// loadConfig unmarshals, applies the legacy environment and validates.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	config.ApplyLegacyEnv(&cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

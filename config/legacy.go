package config

import (
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ApplyLegacyEnv maps the environment variables of earlier deployments onto cfg.
// getenv is os.Getenv outside tests. Values already set through POOLWATCH_* or the
// config file are overridden only when the legacy variable is present.
func ApplyLegacyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("BLOCKFROST_API_KEY"); v != "" {
		cfg.Blockfrost.APIKey = v
	}
	if v := getenv("POOL_HASH"); v != "" {
		cfg.Pool.Hash = v
	}
	if v := getenv("APIKEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := getenv("RUN_INTERVAL_SECONDS"); v != "" {
		if secs, err := strconv.ParseUint(v, 10, 32); err == nil && secs > 0 {
			cfg.Poll.Interval = time.Duration(secs) * time.Second
		} else {
			slog.Warn("ignoring invalid RUN_INTERVAL_SECONDS", "value", v)
		}
	}
	if v := getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := getenv("DEV"); v != "" {
		dev, err := strconv.ParseBool(v)
		cfg.Poll.Dev = err == nil && dev
	}
	if driver, dsn := legacyDatabase(getenv); driver != "" {
		cfg.Store.Driver = driver
		cfg.Store.URL = dsn
	}
}

// legacyDatabase maps DATABASE_* onto a store driver and url. Only postgres is supported; any
// other dialect, mariadb when unset, is passed through as the driver so Validate rejects it
// instead of the service falling back to SQLite.
func legacyDatabase(getenv func(string) string) (string, string) {
	name := getenv("DATABASE")
	if name == "" {
		return "", ""
	}
	dialect := strings.ToLower(getenv("DATABASE_DIALECT"))
	if dialect == "" {
		dialect = "mariadb"
	}
	if dialect != "postgres" && dialect != "postgresql" {
		slog.Error("unsupported DATABASE_DIALECT, only postgres is supported", "dialect", dialect, "database", name)
		return dialect, ""
	}
	host := getenv("DATABASE_HOST")
	if host == "" {
		host = "database"
	}
	port := getenv("DATABASE_PORT")
	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(getenv("DATABASE_USERNAME"), getenv("DATABASE_PASSWORD")),
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + name,
	}
	return "postgres", u.String()
}

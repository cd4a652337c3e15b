package config

import (
	"github.com/spf13/pflag"
)

// parseFlags overrides cfg with command-line flags. Flag defaults are the
// values already loaded from the environment, so unset flags change nothing.
func parseFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("envelope-relay", pflag.ContinueOnError)

	fs.IntVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "slog level (-4 debug, 0 info, 4 warn, 8 error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	fs.StringVar(&cfg.GRPC.Port, "grpc-port", cfg.GRPC.Port, "gRPC listen port")
	fs.BoolVar(&cfg.GRPC.EnableHTTPS, "grpc-tls", cfg.GRPC.EnableHTTPS, "serve gRPC over TLS")
	fs.StringVar(&cfg.Database.DSN, "database-dsn", cfg.Database.DSN, "PostgreSQL connection string")
	fs.DurationVar(&cfg.Database.StatementTimeout, "database-statement-timeout", cfg.Database.StatementTimeout, "per-statement timeout")
	fs.StringVar(&cfg.Identity.Kind, "identity-kind", cfg.Identity.Kind, "external identifier kind: handle or email")
	fs.BoolVar(&cfg.Auth.HandleCapability, "handle-capability", cfg.Auth.HandleCapability, "accept the contact handle as a bearer capability")

	return fs.Parse(args)
}

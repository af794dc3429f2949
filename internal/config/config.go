package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress     string
	DatabaseURI    string
	RPCNodeAddress string
	MintAPIAddress string
	MintAPIKey     string
	RatesAddress   string
	Cluster        string

	AuthSecret   string
	AuthTokenTTL time.Duration

	PaymentTolerance    float64
	SendMaxRetries      int
	ConfirmPollInterval time.Duration
	ConfirmMaxPolls     int

	PendingOrderTTL time.Duration
	ReaperInterval  time.Duration
	ReaperBatch     int
	WorkerPoolSize  int

	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultRatesAddress        = "https://api.coingecko.com/api/v3"
	defaultCluster             = "devnet"
	defaultAuthSecret          = "change-me-in-production"
	defaultAuthTokenTTL        = 24 * time.Hour
	defaultPaymentTolerance    = 0.01
	defaultSendMaxRetries      = 3
	defaultConfirmPollInterval = 2 * time.Second
	defaultConfirmMaxPolls     = 30
	defaultPendingOrderTTL     = 15 * time.Minute
	defaultReaperInterval      = time.Minute
	defaultReaperBatch         = 32
	defaultWorkerPoolSize      = 4
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		RPCNodeAddress:      getString(lookup, "RPC_NODE_ADDRESS", ""),
		MintAPIAddress:      getString(lookup, "MINT_API_ADDRESS", ""),
		MintAPIKey:          getString(lookup, "MINT_API_KEY", ""),
		RatesAddress:        getString(lookup, "RATES_ADDRESS", defaultRatesAddress),
		Cluster:             getString(lookup, "CLUSTER", defaultCluster),
		AuthSecret:          getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		AuthTokenTTL:        getDuration(lookup, "AUTH_TOKEN_TTL", defaultAuthTokenTTL),
		PaymentTolerance:    getFloat(lookup, "PAYMENT_TOLERANCE", defaultPaymentTolerance),
		SendMaxRetries:      getInt(lookup, "SEND_MAX_RETRIES", defaultSendMaxRetries),
		ConfirmPollInterval: getDuration(lookup, "CONFIRM_POLL_INTERVAL", defaultConfirmPollInterval),
		ConfirmMaxPolls:     getInt(lookup, "CONFIRM_MAX_POLLS", defaultConfirmMaxPolls),
		PendingOrderTTL:     getDuration(lookup, "PENDING_ORDER_TTL", defaultPendingOrderTTL),
		ReaperInterval:      getDuration(lookup, "REAPER_INTERVAL", defaultReaperInterval),
		ReaperBatch:         getInt(lookup, "REAPER_BATCH", defaultReaperBatch),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("streetmint", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.ConfirmPollInterval.String()
		pendingTTLStr      = cfg.PendingOrderTTL.String()
		reaperIntervalStr  = cfg.ReaperInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RPCNodeAddress, "rpc", cfg.RPCNodeAddress, "Blockchain node RPC URL")
	fs.StringVar(&cfg.MintAPIAddress, "mint-api", cfg.MintAPIAddress, "Hosted mint API base URL")
	fs.StringVar(&cfg.MintAPIKey, "mint-api-key", cfg.MintAPIKey, "Hosted mint API key")
	fs.StringVar(&cfg.RatesAddress, "rates", cfg.RatesAddress, "Exchange rate API base URL")
	fs.StringVar(&cfg.Cluster, "cluster", cfg.Cluster, "Network cluster used in explorer links")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing artist auth tokens")
	fs.Float64Var(&cfg.PaymentTolerance, "tolerance", cfg.PaymentTolerance, "Relative payment amount tolerance")
	fs.IntVar(&cfg.SendMaxRetries, "send-retries", cfg.SendMaxRetries, "Node-side send retries per submission")
	fs.StringVar(&pollIntervalStr, "confirm-interval", pollIntervalStr, "Interval between confirmation polls")
	fs.IntVar(&cfg.ConfirmMaxPolls, "confirm-polls", cfg.ConfirmMaxPolls, "Maximum confirmation polls per submission")
	fs.StringVar(&pendingTTLStr, "pending-ttl", pendingTTLStr, "Age after which a pending order is failed")
	fs.StringVar(&reaperIntervalStr, "reaper-interval", reaperIntervalStr, "Interval between stale order sweeps")
	fs.IntVar(&cfg.ReaperBatch, "reaper-batch", cfg.ReaperBatch, "Maximum orders per reaper sweep")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reaper workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ConfirmPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid confirm interval: %w", err)
	}

	if cfg.PendingOrderTTL, err = time.ParseDuration(pendingTTLStr); err != nil {
		return nil, fmt.Errorf("invalid pending ttl: %w", err)
	}

	if cfg.ReaperInterval, err = time.ParseDuration(reaperIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reaper interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.PaymentTolerance <= 0 || cfg.PaymentTolerance >= 1 {
		cfg.PaymentTolerance = defaultPaymentTolerance
	}

	if cfg.SendMaxRetries < 0 {
		cfg.SendMaxRetries = defaultSendMaxRetries
	}

	if cfg.ConfirmPollInterval <= 0 {
		cfg.ConfirmPollInterval = defaultConfirmPollInterval
	}

	if cfg.ConfirmMaxPolls <= 0 {
		cfg.ConfirmMaxPolls = defaultConfirmMaxPolls
	}

	if cfg.PendingOrderTTL <= 0 {
		cfg.PendingOrderTTL = defaultPendingOrderTTL
	}

	if cfg.ReaperInterval <= 0 {
		cfg.ReaperInterval = defaultReaperInterval
	}

	if cfg.ReaperBatch <= 0 {
		cfg.ReaperBatch = defaultReaperBatch
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.AuthTokenTTL <= 0 {
		cfg.AuthTokenTTL = defaultAuthTokenTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.RPCNodeAddress == "" {
		return nil, fmt.Errorf("RPC node address must be provided")
	}

	if cfg.MintAPIAddress == "" {
		return nil, fmt.Errorf("mint API address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

package config

import "git.home.luguber.info/inful/chainset/internal/hashset"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

// SetDefaultApplier handles set sizing defaults.
type SetDefaultApplier struct{}

func (SetDefaultApplier) Domain() string { return "set" }

func (SetDefaultApplier) ApplyDefaults(cfg *Config) {
	if cfg.Set.BucketCount == 0 {
		cfg.Set.BucketCount = hashset.DefaultBucketCount
	}
	if cfg.Set.LoadFactorLimit == 0 {
		cfg.Set.LoadFactorLimit = hashset.DefaultLoadFactorLimit
	}
}

// LoggingDefaultApplier handles logging defaults.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

// ServerDefaultApplier handles HTTP server, metrics and reporter defaults.
type ServerDefaultApplier struct{}

func (ServerDefaultApplier) Domain() string { return "server" }

func (ServerDefaultApplier) ApplyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == "" {
		cfg.Server.ReadTimeout = "15s"
	}
	if cfg.Server.WriteTimeout == "" {
		cfg.Server.WriteTimeout = "15s"
	}
	if cfg.Server.ShutdownTimeout == "" {
		cfg.Server.ShutdownTimeout = "10s"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Reporter.Interval == "" {
		cfg.Reporter.Interval = "1m"
	}
}

// BenchDefaultApplier handles load generator defaults.
type BenchDefaultApplier struct{}

func (BenchDefaultApplier) Domain() string { return "bench" }

func (BenchDefaultApplier) ApplyDefaults(cfg *Config) {
	if cfg.Bench.Elements == 0 {
		cfg.Bench.Elements = 100000
	}
	if cfg.Bench.Seed == 0 {
		cfg.Bench.Seed = 1
	}
}

// defaultAppliers runs in order; later domains may rely on earlier ones.
var defaultAppliers = []DefaultApplier{
	SetDefaultApplier{},
	LoggingDefaultApplier{},
	ServerDefaultApplier{},
	BenchDefaultApplier{},
}

func applyDefaults(cfg *Config) {
	for _, a := range defaultAppliers {
		a.ApplyDefaults(cfg)
	}
}

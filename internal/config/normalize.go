package config

import (
	"fmt"
	"strings"
)

// normalizeConfig canonicalizes enumerations and trims free-form strings in place,
// returning a warning for every value it changed.
func normalizeConfig(cfg *Config) []string {
	var warnings []string

	if raw := string(cfg.Logging.Level); raw != "" {
		if n := NormalizeLogLevel(raw); string(n) != raw {
			warnings = append(warnings, fmt.Sprintf("normalized logging.level from '%s' to '%s'", raw, n))
			cfg.Logging.Level = n
		}
	}
	if raw := string(cfg.Logging.Format); raw != "" {
		if n := NormalizeLogFormat(raw); string(n) != raw {
			warnings = append(warnings, fmt.Sprintf("normalized logging.format from '%s' to '%s'", raw, n))
			cfg.Logging.Format = n
		}
	}

	trim := func(field string, v *string) {
		if t := strings.TrimSpace(*v); t != *v {
			warnings = append(warnings, fmt.Sprintf("trimmed whitespace from %s", field))
			*v = t
		}
	}
	trim("server.addr", &cfg.Server.Addr)
	trim("metrics.path", &cfg.Metrics.Path)
	trim("reporter.interval", &cfg.Reporter.Interval)
	return warnings
}

package config

import (
	"os"
	"strings"
	"time"
)

func envBool(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "y" || v == "on"
}

// ParallelRuleEvaluation runs compliance rules on separate goroutines.
// Report order is unaffected.
//
// Set via env:
// - COMPLIANCE_PARALLEL_RULES=true
func ParallelRuleEvaluation() bool {
	return envBool("COMPLIANCE_PARALLEL_RULES")
}

// MasterDataCacheEnabled caches the seeded major head hierarchy in Redis.
// Per-company data is never cached: every compliance report is computed fresh.
//
// Set via env:
// - ENABLE_MASTER_CACHE=true
func MasterDataCacheEnabled() bool {
	return envBool("ENABLE_MASTER_CACHE")
}

// SkipMigrations disables AutoMigrate on startup.
//
// Set via env:
// - SKIP_MIGRATIONS=true
func SkipMigrations() bool {
	return envBool("SKIP_MIGRATIONS")
}

// ComplianceSlowThreshold is the run duration above which a compliance run is logged as slow.
//
// Set via env:
// - COMPLIANCE_SLOW_MS=500
func ComplianceSlowThreshold() time.Duration {
	return time.Duration(intFromEnv("COMPLIANCE_SLOW_MS", 500)) * time.Millisecond
}

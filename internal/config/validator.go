package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion must match ENV_SCHEMA_VERSION in the .env file
const ExpectedEnvSchemaVersion = "1.0"

// MinAPIKeyLength is the shortest API key accepted without a warning
const MinAPIKeyLength = 16

// ExampleDBPassword is the placeholder shipped in .env.example
const ExampleDBPassword = "change_this_secure_password"

// RequiredEnvVars must be present even though Load has defaults for most of
// them, so a deployment never runs on development fallbacks by accident
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"REDIS_HOST",
	"API_KEY",
}

// ValidateEnv checks the schema version and that every required variable is set
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); v {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set (expected %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s", ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, key := range RequiredEnvVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and reports settings that work but
// should not reach production
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	if os.Getenv("DB_PASSWORD") == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD is the example value")
	}
	if os.Getenv("REDIS_PASSWORD") == "" {
		warnings = append(warnings, "REDIS_PASSWORD is empty, PVP counters are stored without authentication")
	}
	if len(os.Getenv("API_KEY")) < MinAPIKeyLength {
		warnings = append(warnings, fmt.Sprintf("API_KEY is shorter than %d characters", MinAPIKeyLength))
	}
	if os.Getenv("DOUBLE_EXP") == "true" && os.Getenv("EXP_MULTIPLIER") != "" && os.Getenv("EXP_MULTIPLIER") != "1" {
		warnings = append(warnings, "DOUBLE_EXP and EXP_MULTIPLIER are both set, experience gains stack")
	}
	return warnings, nil
}

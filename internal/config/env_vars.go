package config

import (
	"os"
	"strings"
)

const (
	appNameVar  = "APP_NAME"
	envVar      = "ENV"
	logLevelVar = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Session CTL")
}

func (EnvVars) GetEnv() string {
	return GetEnv(envVar, "DEV")
}

// GetLogLevel returns a zerolog level name ("debug", "info", ...)
func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv(logLevelVar, "info"))
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

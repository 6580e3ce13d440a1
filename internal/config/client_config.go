package config

import (
	"strings"
	"time"
)

const (
	apiBaseURLVar     = "API_BASE_URL"
	requestTimeoutVar = "REQUEST_TIMEOUT"
)

type ClientConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
}

type Client struct{}

var _ ClientConfig = Client{}

// GetAPIBaseURL returns the API gateway every authenticated request is sent to
func (Client) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLVar, "http://localhost:8080"), "/")
}

func (Client) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(requestTimeoutVar, "10s"))
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

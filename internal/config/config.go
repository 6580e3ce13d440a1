package config

type Config interface {
	EnvConfig
	ClientConfig
	StoreConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	Client
	Store
}

func New() Config {
	return mainConfig{}
}

package constants

const (
	AppName      = "portfolio"
	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "PORTFOLIO"
)

package config

var AppVersion = "DEVELOPMENT"

const (
	AppName   = "shelf"
	CfgFile   = "config.toml"
	CacheFile = "catalog.json"
)

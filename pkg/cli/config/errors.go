package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig    = goerr.New("invalid configuration")
	ErrDuplicateKeyword = goerr.New("duplicate keyword")
)

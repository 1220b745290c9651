package config

import "errors"

var errInitFailed = errors.New(
	"Unable to initialise tomatobar settings from the configuration file",
)

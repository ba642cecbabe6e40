// Package config manages aiko's settings: defaults, environment overrides and the persisted TOML file.
package config

import (
	"strings"

	"github.com/aiko-cli/aiko/filesystem"
	"github.com/aiko-cli/aiko/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps configuration keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

var current *Store

// Setup loads the process-wide store on top of the global viper instance,
// so flag bindings and package-level viper lookups see the same values.
func Setup() error {
	s := New(viper.GetViper(), filesystem.API(), where.ConfigFile())
	if err := s.Load(); err != nil {
		return err
	}

	current = s
	return nil
}

// Current returns the store created by Setup.
func Current() *Store {
	if current == nil {
		panic("config: Setup was not called")
	}
	return current
}

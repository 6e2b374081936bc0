package main

import (
	"os"
	"strings"

	stabiliser "github.com/WilfredSalmon/Stabiliser"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"allow-global-factor": "allow_global_factor",
	"tolerance":           "tolerance",
	"workers":             "workers",
}

// loadConfig layers defaults, the --config file, the environment and changed flags.
func loadConfig(cmd *cobra.Command) (*stabiliser.Config, error) {
	k := koanf.New(".")
	defaults := stabiliser.NewConfig()

	for key, value := range map[string]any{
		"tolerance":           defaults.Tolerance,
		"allow_global_factor": defaults.AllowGlobalFactor,
		"workers":             defaults.Workers,
		"scheduling_timeout":  defaults.SchedulingTimeout,
	} {
		if err := k.Set(key, value); err != nil {
			return nil, errors.Wrapf(err, "setting default %s", key)
		}
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrap(err, "config file")
		}

		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "loading config %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, errors.Wrap(err, "loading environment config")
	}

	for flag, key := range flagKeys {
		if !cmd.Flags().Changed(flag) {
			continue
		}

		if err := k.Set(key, cmd.Flags().Lookup(flag).Value.String()); err != nil {
			return nil, errors.Wrapf(err, "setting %s from --%s", key, flag)
		}
	}

	var cfg stabiliser.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}

	if cfg.Tolerance <= 0 {
		return nil, errors.Wrapf(stabiliser.ErrInvalidParameters, "tolerance %v", cfg.Tolerance)
	}

	return &cfg, nil
}

func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

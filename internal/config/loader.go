package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/turtacn/entitylens/pkg/errors"
)

// envPrefix is the environment variable prefix for every setting.
const envPrefix = "ENTITYLENS"

// newViper builds a Viper instance with YAML as the file type, the
// ENTITYLENS_ env prefix, automatic env binding and a "." → "_" key replacer,
// so "render.format" resolves to ENTITYLENS_RENDER_FORMAT.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerDefaults(v)
	return v
}

// Load reads the YAML file at configPath, merges ENTITYLENS_* overrides,
// applies defaults and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, errors.ErrCodeConfigNotFound, "config file not found").WithDetail("path=" + configPath)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").WithDetail("path=" + configPath)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromReader parses YAML from r.  Env overrides still apply.
func LoadFromReader(r io.Reader) (*Config, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config")
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from defaults and ENTITYLENS_* variables only.
//
//	ENTITYLENS_<SECTION>_<FIELD>   e.g.  ENTITYLENS_LOG_LEVEL, ENTITYLENS_RENDER_FORMAT
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to unmarshal configuration")
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Watch reloads configPath whenever it changes on disk.  onChange receives
// each valid reload; onError, if non-nil, receives reloads that fail to
// parse or validate, and onChange is skipped for those.  The initial read
// error is returned so callers can refuse to watch a missing file.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigNotFound, "cannot watch config file").WithDetail("path=" + configPath)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(errors.Wrap(err, errors.CodeUnknown, "config reload rejected").WithDetail("event=" + e.Op.String()))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

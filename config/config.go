package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/archiver-cli/archiver/constant"
	"github.com/archiver-cli/archiver/filesystem"
	"github.com/archiver-cli/archiver/key"
	"github.com/archiver-cli/archiver/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers defaults and environment bindings, then reads archiver.toml when it exists.
// Values that would break the client, such as a negative burst, are rejected.
func Setup() error {
	viper.SetConfigName(constant.Archiver)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Archiver)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	return validate()
}

func validate() error {
	for name, field := range Default {
		if _, ok := field.Value.(int); ok && viper.GetInt(name) < 0 {
			return fmt.Errorf("config: %s cannot be negative", name)
		}
	}

	base, err := url.Parse(viper.GetString(key.ArchiveBaseURL))
	if err != nil || !lo.Contains([]string{"http", "https"}, base.Scheme) || base.Host == "" {
		return fmt.Errorf("config: %s must be an http(s) URL", key.ArchiveBaseURL)
	}
	return nil
}

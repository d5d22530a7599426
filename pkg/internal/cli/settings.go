package cli

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func setDefaults() {
	viper.SetDefault("bind", "0.0.0.0:8444")
	viper.SetDefault("grpc_bind", "0.0.0.0:7444")
	viper.SetDefault("store.driver", "sanity")
	viper.SetDefault("sanity.dataset", "production")
	viper.SetDefault("sanity.api_version", "2024-10-01")
	viper.SetDefault("mongo.database", "arcade")
	viper.SetDefault("mongo.collection", "documents")
	viper.SetDefault("locks.driver", "local")
	viper.SetDefault("locks.ttl", "5s")
	viper.SetDefault("security.cookie_name", "arcade_session")
	viper.SetDefault("maintenance.schedule", "@every 60m")
	viper.SetDefault("engagement.comment_delete_policy", "owner")
}

// LoadSettings reads .env, then settings.toml from the working directory or
// its parent. ARCADE_ prefixed variables override the file.
func LoadSettings() error {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	setDefaults()
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("ARCADE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var missing viper.ConfigFileNotFoundError
		if !errors.As(err, &missing) {
			return err
		}
		log.Warn().Msg("No settings.toml found, running on defaults and environment only.")
	}

	if viper.GetBool("debug.enabled") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return nil
}

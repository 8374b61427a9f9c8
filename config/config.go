package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
		Redis struct {
			Enabled  bool   `mapstructure:"enabled"`
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"repositories"`
	Gazetteer struct {
		BaseURL         string        `mapstructure:"baseURL"`
		ProgramID       string        `mapstructure:"programID"`
		Timeout         time.Duration `mapstructure:"timeout"`
		CacheTTL        time.Duration `mapstructure:"cacheTTL"`
		SearchPageLimit int           `mapstructure:"searchPageLimit"`
		SearchMinChars  int           `mapstructure:"searchMinChars"`
	} `mapstructure:"gazetteer"`
	Locations struct {
		PreciseEpsilon float64       `mapstructure:"preciseEpsilon"`
		WorkspaceTTL   time.Duration `mapstructure:"workspaceTTL"`
		AutoSave       bool          `mapstructure:"autoSave"`
	} `mapstructure:"locations"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// POSTGRES_HOST overrides repositories.postgres.host, and so on.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

func bindEnv(v *viper.Viper) {
	for key, env := range map[string]string{
		"repositories.postgres.host":     "POSTGRES_HOST",
		"repositories.postgres.port":     "POSTGRES_PORT",
		"repositories.postgres.username": "POSTGRES_USER",
		"repositories.postgres.password": "POSTGRES_PASSWORD",
		"repositories.postgres.db":       "POSTGRES_DB",
		"repositories.redis.addr":        "REDIS_ADDR",
		"repositories.redis.password":    "REDIS_PASSWORD",
		"gazetteer.baseURL":              "GAZETTEER_BASE_URL",
		"gazetteer.programID":            "GAZETTEER_PROGRAM_ID",
	} {
		_ = v.BindEnv(key, env)
	}
}

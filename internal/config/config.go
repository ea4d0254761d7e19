package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api"`
	Gin       *GinConfig       `mapstructure:"gin"`
	Postgres  *PostgresConfig  `mapstructure:"postgres"`
	Redis     *RedisConfig     `mapstructure:"redis"`
	Hackathon *HackathonConfig `mapstructure:"hackathon"`

	// Rules holds the live copy of Hackathon, refreshed when the config file changes.
	Rules *Rules `mapstructure:"-"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	JWTTTLHours        int      `mapstructure:"jwt_ttl_hours"`
	VotesPerSecond     float64  `mapstructure:"votes_per_second"`
	VoteBurst          int      `mapstructure:"vote_burst"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DB, c.Port, sslMode)
}

// RedisConfig is optional. An empty URL keeps live events in-process.
type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Channel string `mapstructure:"channel"`
}

type HackathonConfig struct {
	Name           string `mapstructure:"name"`
	MinTeamSize    int    `mapstructure:"min_team_size"`
	MaxTeamSize    int    `mapstructure:"max_team_size"`
	AllowSelfVote  bool   `mapstructure:"allow_self_vote"`
	LeaderboardTop int    `mapstructure:"leaderboard_top"`
}

func (c HackathonConfig) withDefaults() HackathonConfig {
	if c.MinTeamSize < 1 {
		c.MinTeamSize = 1
	}
	if c.MaxTeamSize < c.MinTeamSize {
		c.MaxTeamSize = c.MinTeamSize
	}
	if c.LeaderboardTop <= 0 {
		c.LeaderboardTop = 10
	}

	return c
}

// ClampTeamSize fits a requested team capacity into [MinTeamSize, MaxTeamSize].
// Zero means "use the maximum".
func (c HackathonConfig) ClampTeamSize(requested int) int {
	if requested <= 0 || requested > c.MaxTeamSize {
		return c.MaxTeamSize
	}
	if requested < c.MinTeamSize {
		return c.MinTeamSize
	}

	return requested
}

// Rules is a concurrency-safe holder of the hackathon limits.
type Rules struct {
	mu  sync.RWMutex
	cfg HackathonConfig
}

func NewRules(cfg HackathonConfig) *Rules {
	return &Rules{cfg: cfg.withDefaults()}
}

func (r *Rules) Current() HackathonConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.cfg
}

func (r *Rules) Set(cfg HackathonConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cfg = cfg.withDefaults()
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	if conf.Redis == nil {
		conf.Redis = &RedisConfig{}
	}
	if conf.Hackathon == nil {
		conf.Hackathon = &HackathonConfig{}
	}
	conf.Rules = NewRules(*conf.Hackathon)

	// Only the hackathon limits are hot-reloaded; everything else needs a restart.
	v.OnConfigChange(func(e fsnotify.Event) {
		var hc HackathonConfig
		if err := v.UnmarshalKey("hackathon", &hc); err != nil {
			zap.L().Warn("failed to reload hackathon config", zap.String("file", e.Name), zap.Error(err))
			return
		}
		conf.Rules.Set(hc)
		zap.L().Info("hackathon config reloaded", zap.String("file", e.Name), zap.Any("rules", conf.Rules.Current()))
	})
	v.WatchConfig()

	return conf, nil
}

func (c *AppConfig) validate() error {
	if c.API == nil {
		return fmt.Errorf("missing api config")
	}
	if c.API.JWTSigningKey == "" {
		return fmt.Errorf("api.jwt_signing_key is required")
	}
	if c.API.JWTTTLHours <= 0 {
		c.API.JWTTTLHours = 24
	}
	if c.API.VotesPerSecond <= 0 {
		c.API.VotesPerSecond = 2
	}
	if c.API.VoteBurst <= 0 {
		c.API.VoteBurst = 10
	}
	if c.Gin == nil {
		c.Gin = &GinConfig{Mode: "release"}
	}
	if c.Postgres == nil {
		c.Postgres = &PostgresConfig{}
	}

	return nil
}

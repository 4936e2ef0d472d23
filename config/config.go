package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Bot       BotConfig
	JWT       JWTConfig
	Booking   BookingConfig
	Lifecycle LifecycleConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type BotConfig struct {
	Token         string
	Username      string
	WebhookSecret string
	WebhookURL    string
}

type JWTConfig struct {
	Secret        string
	SessionExpiry time.Duration
}

// BookingConfig carries the fixed business rules. Per-master values
// (work window, buffer) stored in the masters table override these;
// config values are only seed/fallback defaults.
type BookingConfig struct {
	Timezone          string
	HorizonDays       int
	MinAheadHours     int
	DefaultBufferMin  int
	BufferOptions     []int
	WorkStart         string
	WorkEnd           string
	ServiceDuration   int
	DispatcherPeriod  time.Duration
	SweeperCronSpec   string
	FlowSessionExpiry time.Duration
}

type LifecycleConfig struct {
	SleepingThresholdDays    int
	ReactivationCooldownDays int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env is optional in containerized deployments; env vars win anyway.
	_ = viper.ReadInConfig()

	setDefaults()

	sessionExpiry, err := time.ParseDuration(viper.GetString("JWT_SESSION_EXPIRY"))
	if err != nil {
		sessionExpiry = 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Bot: BotConfig{
			Token:         viper.GetString("BOT_TOKEN"),
			Username:      viper.GetString("BOT_USERNAME"),
			WebhookSecret: viper.GetString("WEBHOOK_SECRET"),
			WebhookURL:    viper.GetString("WEBHOOK_URL"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			SessionExpiry: sessionExpiry,
		},
		Booking: BookingConfig{
			Timezone:          viper.GetString("TIMEZONE"),
			HorizonDays:       viper.GetInt("BOOKING_HORIZON_DAYS"),
			MinAheadHours:     viper.GetInt("MIN_BOOKING_AHEAD_HOURS"),
			DefaultBufferMin:  viper.GetInt("DEFAULT_BUFFER_MIN"),
			BufferOptions:     []int{5, 10, 15},
			WorkStart:         viper.GetString("WORK_START"),
			WorkEnd:           viper.GetString("WORK_END"),
			ServiceDuration:   viper.GetInt("SERVICE_DURATION_MIN"),
			DispatcherPeriod:  time.Minute,
			SweeperCronSpec:   "0 10 * * 1",
			FlowSessionExpiry: 30 * time.Minute,
		},
		Lifecycle: LifecycleConfig{
			SleepingThresholdDays:    viper.GetInt("SLEEPING_THRESHOLD_DAYS"),
			ReactivationCooldownDays: viper.GetInt("REACTIVATION_COOLDOWN_DAYS"),
		},
	}

	if config.Bot.Token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if config.Bot.WebhookSecret == "" {
		return nil, fmt.Errorf("WEBHOOK_SECRET is required")
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8000")
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("TIMEZONE", "Europe/Moscow")
	viper.SetDefault("BOOKING_HORIZON_DAYS", 7)
	viper.SetDefault("MIN_BOOKING_AHEAD_HOURS", 1)
	viper.SetDefault("DEFAULT_BUFFER_MIN", 10)
	viper.SetDefault("WORK_START", "09:00")
	viper.SetDefault("WORK_END", "20:00")
	viper.SetDefault("SERVICE_DURATION_MIN", 30)
	viper.SetDefault("SLEEPING_THRESHOLD_DAYS", 90)
	viper.SetDefault("REACTIVATION_COOLDOWN_DAYS", 90)
	viper.SetDefault("JWT_SESSION_EXPIRY", "24h")
	viper.SetDefault("BOT_USERNAME", "masterbook_bot")
}

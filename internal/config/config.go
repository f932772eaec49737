package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Data        Data
	HTTP        HTTP
	Log         Log
	TelegramBot TelegramBot
	Schedule    Schedule
}

type Data struct {
	Source         string `envconfig:"DATA_SOURCE" default:"data/final_dashboard_data.csv"`
	Sheet          string `envconfig:"XLSX_SHEET"`
	SyntheticCount int    `envconfig:"SYNTHETIC_COUNT" default:"30"`
}

type HTTP struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// TelegramBot is optional; an empty token disables the bot and the report job.
type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

func (t TelegramBot) Enabled() bool {
	return t.Token != ""
}

type Schedule struct {
	ReloadCron string `envconfig:"RELOAD_CRON" default:"0 6 * * *"`
	ReportCron string `envconfig:"REPORT_CRON" default:"30 7 * * 2"`
	Timezone   string `envconfig:"TIMEZONE" default:"America/Chicago"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Data.SyntheticCount <= 0 {
		return fmt.Errorf("SYNTHETIC_COUNT must be positive, got %d", c.Data.SyntheticCount)
	}
	if _, err := cron.ParseStandard(c.Schedule.ReloadCron); err != nil {
		return fmt.Errorf("invalid RELOAD_CRON %q: %w", c.Schedule.ReloadCron, err)
	}
	if _, err := cron.ParseStandard(c.Schedule.ReportCron); err != nil {
		return fmt.Errorf("invalid REPORT_CRON %q: %w", c.Schedule.ReportCron, err)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.Log.Format)
	}
	return nil
}

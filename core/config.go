package core

import (
	"fmt"
	"strings"
	"time"
)

type DispatchConfig struct {
	Timeout              time.Duration `koanf:"timeout" mapstructure:"timeout"`
	MaxResponseBodyBytes int64         `koanf:"max_response_body_bytes" mapstructure:"max_response_body_bytes"`
}

type SchedulerConfig struct {
	CronSpec        string `koanf:"cron_spec" mapstructure:"cron_spec"`
	SkipOverlapping bool   `koanf:"skip_overlapping" mapstructure:"skip_overlapping"`
}

type Config struct {
	ServiceName string          `koanf:"service_name" mapstructure:"service_name"`
	Dispatch    DispatchConfig  `koanf:"dispatch" mapstructure:"dispatch"`
	Scheduler   SchedulerConfig `koanf:"scheduler" mapstructure:"scheduler"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "testhooks",
		Dispatch: DispatchConfig{
			Timeout:              30 * time.Second,
			MaxResponseBodyBytes: 10 << 20,
		},
		Scheduler: SchedulerConfig{
			CronSpec:        "* * * * *",
			SkipOverlapping: false,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if c.Dispatch.Timeout < 0 {
		return fmt.Errorf("core: dispatch.timeout must not be negative")
	}
	if c.Dispatch.MaxResponseBodyBytes < 0 {
		return fmt.Errorf("core: dispatch.max_response_body_bytes must not be negative")
	}
	if strings.TrimSpace(c.Scheduler.CronSpec) == "" {
		return fmt.Errorf("core: scheduler.cron_spec is required")
	}
	return nil
}

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/swegeo/swesearch/pkg/sweref"
)

type AppConfig struct {
	k *koanf.Koanf
}

func NewAppConfig() *AppConfig {
	c := &AppConfig{k: koanf.New(".")}

	setDefaults(c.k)

	return c
}

func setDefaults(k *koanf.Koanf) {
	k.Set("http_addr", ":8088")
	k.Set("debounce_ms", 300)
	k.Set("load_timeout_sec", 5)
	k.Set("preference", string(sweref.PreferAuto))
	k.Set("map.srid", 3857)
	k.Set("map.center_lon", 16.3)
	k.Set("debug", false)
}

func (c *AppConfig) Load(filename ...string) bool {
	loaded := false

	for _, name := range filename {
		if err := c.k.Load(file.Provider(name), yaml.Parser()); err != nil {
			slog.Info(fmt.Sprintf("error loading config: %s", err.Error()))
		} else {
			loaded = true
		}
	}

	return loaded
}

func (c *AppConfig) LoadEnv(prefix string) error {
	return c.k.Load(env.Provider(prefix, ".", func(s string) string {
		s1 := strings.ToLower(strings.TrimPrefix(s, prefix))

		if strings.HasPrefix(s1, "map_") {
			return strings.Replace(s1, "_", ".", 1)
		}

		return s1
	}), nil)
}

func (c *AppConfig) Set(key string, v any) error {
	return c.k.Set(key, v)
}

func (c *AppConfig) Bool(key string) bool {
	return c.k.Bool(key)
}

func (c *AppConfig) String(key string) string {
	return c.k.String(key)
}

func (c *AppConfig) HTTPAddr() string {
	return c.k.String("http_addr")
}

func (c *AppConfig) Debug() bool {
	return c.k.Bool("debug")
}

func (c *AppConfig) Debounce() time.Duration {
	return time.Duration(c.k.Int("debounce_ms")) * time.Millisecond
}

func (c *AppConfig) LoadTimeout() time.Duration {
	return time.Duration(c.k.Int("load_timeout_sec")) * time.Second
}

func (c *AppConfig) MapSRID() int {
	return c.k.Int("map.srid")
}

func (c *AppConfig) MapCenterLon() (float64, bool) {
	if !c.k.Exists("map.center_lon") {
		return 0, false
	}

	return c.k.Float64("map.center_lon"), true
}

// Preference falls back to auto on unknown values.
func (c *AppConfig) Preference() sweref.Preference {
	switch sweref.Preference(strings.ToLower(c.k.String("preference"))) {
	case sweref.PreferTM:
		return sweref.PreferTM
	case sweref.PreferZone:
		return sweref.PreferZone
	}

	return sweref.PreferAuto
}

package behavior

import (
	"strconv"
	"strings"
)

// Config names a behavior by type tag and carries its tuning parameters.
// In YAML every key other than "type" lands in Params:
//
//	attack:
//	  type: spread_shot
//	  cooldown: 1.5
//	  bullet_count: 5
type Config struct {
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:",inline"`
}

// Tag returns the normalized type tag.
func (c Config) Tag() string {
	return strings.ToLower(strings.TrimSpace(c.Type))
}

// Float reads a numeric parameter. Missing or non-numeric values yield def.
func (c Config) Float(name string, def float64) float64 {
	v, ok := c.Params[name]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return def
}

// Int reads an integer parameter. Fractional values are truncated.
func (c Config) Int(name string, def int) int {
	f := c.Float(name, float64(def))
	return int(f)
}

func (c Config) String(name string, def string) string {
	v, ok := c.Params[name]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return strings.TrimSpace(s)
}

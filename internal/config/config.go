package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GPS    GPSConfig    `yaml:"gps"`
	Record RecordConfig `yaml:"record"`
	Replay ReplayConfig `yaml:"replay"`
	UDP    UDPConfig    `yaml:"udp"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
	Web    WebConfig    `yaml:"web"`
}

type GPSConfig struct {
	Enable bool `yaml:"enable"`
	// Source is nmea (serial), gpsd, tcp or replay.
	Source   string    `yaml:"source"`
	Device   string    `yaml:"device"`
	Baud     int       `yaml:"baud"`
	GPSDAddr string    `yaml:"gpsd_addr"`
	TCPAddr  string    `yaml:"tcp_addr"`
	PPS      PPSConfig `yaml:"pps"`
}

type PPSConfig struct {
	Enable bool   `yaml:"enable"`
	Chip   string `yaml:"chip"`
	Line   int    `yaml:"line"`
}

type RecordConfig struct {
	Enable bool   `yaml:"enable"`
	Path   string `yaml:"path"`
}

type ReplayConfig struct {
	Path  string  `yaml:"path"`
	Speed float64 `yaml:"speed"`
	Loop  bool    `yaml:"loop"`
}

type UDPConfig struct {
	Enable bool   `yaml:"enable"`
	Dest   string `yaml:"dest"`
}

type MQTTConfig struct {
	Enable      bool   `yaml:"enable"`
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
	QoS         int    `yaml:"qos"`
	Retain      bool   `yaml:"retain"`
}

type WebConfig struct {
	Listen   string `yaml:"listen"`
	LogLines int    `yaml:"log_lines"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) applyDefaults() error {
	g := &cfg.GPS
	g.Source = strings.ToLower(strings.TrimSpace(g.Source))
	if g.Source == "" {
		g.Source = "nmea"
	}
	if g.Baud == 0 {
		g.Baud = 9600
	}
	if g.GPSDAddr == "" {
		g.GPSDAddr = "127.0.0.1:2947"
	}
	if g.PPS.Chip == "" {
		g.PPS.Chip = "gpiochip0"
	}

	if g.Enable {
		switch g.Source {
		case "nmea":
			if g.Baud < 0 {
				return fmt.Errorf("gps.baud must be > 0")
			}
		case "gpsd":
		case "tcp":
			if g.TCPAddr == "" {
				return fmt.Errorf("gps.tcp_addr is required when gps.source=tcp")
			}
		case "replay":
			if cfg.Replay.Path == "" {
				return fmt.Errorf("replay.path is required when gps.source=replay")
			}
		default:
			return fmt.Errorf("gps.source must be one of nmea, gpsd, tcp, replay")
		}
	}
	if g.PPS.Enable && g.PPS.Line < 0 {
		return fmt.Errorf("gps.pps.line must be >= 0")
	}

	if cfg.Replay.Speed == 0 {
		cfg.Replay.Speed = 1
	}
	if cfg.Replay.Speed < 0 {
		return fmt.Errorf("replay.speed must be > 0")
	}

	if cfg.Record.Enable {
		if cfg.Record.Path == "" {
			return fmt.Errorf("record.path is required when record.enable is true")
		}
		if g.Source == "replay" {
			return fmt.Errorf("record cannot be used with gps.source=replay")
		}
	}

	if cfg.UDP.Enable && cfg.UDP.Dest == "" {
		return fmt.Errorf("udp.dest is required when udp.enable is true")
	}

	m := &cfg.MQTT
	if m.ClientID == "" {
		m.ClientID = "nmea-ng"
	}
	if m.TopicPrefix == "" {
		m.TopicPrefix = "nmea"
	}
	if m.Enable && m.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when mqtt.enable is true")
	}
	if m.QoS < 0 || m.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2")
	}

	if cfg.Web.Listen == "" {
		cfg.Web.Listen = ":8080"
	}
	if cfg.Web.LogLines <= 0 {
		cfg.Web.LogLines = 2000
	}
	return nil
}

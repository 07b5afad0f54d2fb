package util

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDSN keeps the leaderboard in a local SQLite file.
const DefaultDSN = "sqlite://cmmc-trail.db"

// Config holds runtime settings and flags.
type Config struct {
	SeedText       string `yaml:"seed"`
	DSN            string `yaml:"dsn"`
	Difficulty     string `yaml:"difficulty"` // easy|normal|hard|nightmare
	Theme          string `yaml:"theme"`
	MigrationsDir  string `yaml:"migrations_dir"`
	CertificateDir string `yaml:"certificate_dir"`
	NoStore        bool   `yaml:"no_store"`
	Debug          bool   `yaml:"debug"`
	LogFile        string `yaml:"log_file"`
	Version        string `yaml:"-"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		DSN:            DefaultDSN,
		Difficulty:     "normal",
		Theme:          "terminal",
		CertificateDir: ".",
		LogFile:        "cmmc-trail.log",
	}
}

// LoadFile reads a YAML config file. Unknown keys are rejected so typos surface early.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	var c Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Overlay returns base with every non-zero field of over applied on top.
func Overlay(base, over Config) Config {
	if s := strings.TrimSpace(over.SeedText); s != "" {
		base.SeedText = s
	}
	if over.DSN != "" {
		base.DSN = over.DSN
	}
	if over.Difficulty != "" {
		base.Difficulty = over.Difficulty
	}
	if over.Theme != "" {
		base.Theme = over.Theme
	}
	if over.MigrationsDir != "" {
		base.MigrationsDir = over.MigrationsDir
	}
	if over.CertificateDir != "" {
		base.CertificateDir = over.CertificateDir
	}
	if over.LogFile != "" {
		base.LogFile = over.LogFile
	}
	base.NoStore = base.NoStore || over.NoStore
	base.Debug = base.Debug || over.Debug
	if over.Version != "" {
		base.Version = over.Version
	}
	return base
}

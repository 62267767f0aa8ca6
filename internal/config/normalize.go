package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeIdentity()
	c.normalizePackaging()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
			return fmt.Errorf("paths.output_dir: %w", err)
		}
	} else {
		c.Paths.OutputDir = ""
	}
	return nil
}

func (c *Config) normalizeIdentity() {
	if c.Identity.Publisher == "" {
		if value, ok := os.LookupEnv("APPXIFY_PUBLISHER"); ok {
			c.Identity.Publisher = strings.TrimSpace(value)
		}
	}
	c.Identity.Name = strings.TrimSpace(c.Identity.Name)
	c.Identity.Publisher = strings.TrimSpace(c.Identity.Publisher)
	c.Identity.PublisherDisplayName = strings.TrimSpace(c.Identity.PublisherDisplayName)
}

func (c *Config) normalizePackaging() {
	c.Packaging.Tool = strings.TrimSpace(c.Packaging.Tool)
	if c.Packaging.Tool == "" {
		c.Packaging.Tool = defaultPackagingTool
	}
	if c.Packaging.TimeoutSeconds <= 0 {
		c.Packaging.TimeoutSeconds = defaultPackagingTimeoutSecond
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

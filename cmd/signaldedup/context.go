package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"signaldedup/internal/config"
	"signaldedup/internal/logging"
)

type commandContext struct {
	configFlag  *string
	logLevel    *string
	logFormat   *string
	inputFlag   *string
	outputFlag  *string
	extFlag     *[]string
	excludeFlag *[]string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext() *commandContext {
	return &commandContext{
		configFlag:  new(string),
		logLevel:    new(string),
		logFormat:   new(string),
		inputFlag:   new(string),
		outputFlag:  new(string),
		extFlag:     new([]string),
		excludeFlag: new([]string),
	}
}

// ensureConfig loads the configuration once, layers command-line values
// over it and validates the result. Failures are argument errors.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.configErr = usageError(fmt.Errorf("load config: %w", err))
			return
		}
		err = cfg.Apply(config.Overrides{
			InputDir:    *c.inputFlag,
			OutputDir:   *c.outputFlag,
			Extensions:  *c.extFlag,
			ExcludeDirs: *c.excludeFlag,
			LogLevel:    *c.logLevel,
			LogFormat:   *c.logFormat,
		})
		if err != nil {
			c.configErr = usageError(err)
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

// logger builds the per-invocation logger on the command's error stream.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	base, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, usageError(err)
	}
	logger, _ := logging.WithRunID(base)
	return logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if current.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

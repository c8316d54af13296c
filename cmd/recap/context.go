package main

import (
	"fmt"

	"recap/internal/apiclient"
	"recap/internal/config"
)

// commandContext lazily loads configuration shared by all subcommands.
type commandContext struct {
	configFlag *string

	cfg        *config.Config
	configPath string
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolvedPath, _, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg
	c.configPath = resolvedPath
	return cfg, nil
}

func (c *commandContext) client() (*apiclient.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	baseURL := apiclient.BaseURLForBind(cfg.Paths.APIBind)
	if baseURL == "" {
		return nil, fmt.Errorf("no api bind address configured")
	}
	return apiclient.New(baseURL, cfg.Paths.APIToken), nil
}

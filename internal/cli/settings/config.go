package settings

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/config"
	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/keyring"
	"github.com/julianstephens/habitrackr/internal/logger"
)

func configPath(ctx *cli.Context) string {
	if ctx.ConfigPath != "" {
		return config.ExpandHome(ctx.ConfigPath)
	}
	return config.DefaultPath()
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	ctx.Println("Effective configuration:")
	ctx.Printf("  store:          %s\n", keyring.MaskPassword(cfg.Store))
	ctx.Printf("  timezone:       %s\n", cfg.Timezone)
	ctx.Printf("  delete_policy:  %s\n", cfg.DeletePolicy)
	ctx.Printf("  auto_backup:    %v\n", cfg.AutoBackup)
	ctx.Printf("  debug:          %v\n", cfg.Debug)
	if cfg.LogLevel != "" {
		ctx.Printf("  log_level:      %s\n", cfg.LogLevel)
	}
	ctx.Println()
	ctx.Printf("Config file: %s\n", configPath(ctx))
	ctx.Printf("Log file:    %s\n", logger.LogPath(config.ExpandHome(constants.DefaultConfigDir)))
	ctx.Printf("Environment overrides use the %s prefix.\n", constants.EnvPrefix)
	return nil
}

type ConfigSaveCmd struct {
	Force bool `short:"f" help:"Overwrite an existing config file."`
}

func (c *ConfigSaveCmd) Run(ctx *cli.Context) error {
	path := configPath(ctx)
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}
	if err := ctx.Config.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	ctx.Printf("✓ Configuration written to %s\n", path)
	return nil
}

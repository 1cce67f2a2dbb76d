package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appConfig "github.com/yavemu/bookadmin/internal/config"
	"github.com/yavemu/bookadmin/internal/format"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
	Long:  "Show and modify the bookadmin configuration",
}

// showCmd prints the current configuration
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig.Get()

		// The token is redacted; whoami shows the session owner.
		display := *cfg
		if display.Auth.Token != "" {
			display.Auth.Token = "****"
		}
		return format.Print(display)
	},
}

// setCmd writes one configuration value
var setCmd = &cobra.Command{
	Use:   "set <clave> <valor>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value, e.g.: bookadmin config set api.url http://localhost:3000",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		viper.Set(args[0], args[1])
		if err := viper.WriteConfig(); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		format.PrintSuccess("✓ %s actualizado", args[0])
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(showCmd)
	ConfigCmd.AddCommand(setCmd)
}

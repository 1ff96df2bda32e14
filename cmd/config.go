package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arcanaland/shufflegrid/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the shufflegrid config file",
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with defaults if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %v", err)
		}
		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

// configPathCmd represents the config path command
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigFilePath())
	},
}

// configPinIntroCmd represents the config pin-intro command
var configPinIntroCmd = &cobra.Command{
	Use:   "pin-intro [true|false]",
	Short: "Choose whether shuffling keeps the intro card first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pin, err := strconv.ParseBool(args[0])
		if err != nil {
			return fmt.Errorf("invalid value %q, expected true or false", args[0])
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg.PinIntro = pin
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("error saving config: %v", err)
		}

		if pin {
			fmt.Println("Shuffle now keeps the intro card first.")
		} else {
			fmt.Println("Shuffle now permutes the whole grid, intro included.")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configPinIntroCmd)
}

package main

import (
	"nutriengine/config"
	"nutriengine/logger"
	"nutriengine/services"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <seed.yaml>",
	Short: "Load canonical foods, aliases and recipes into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		logger.Init()
		defer logger.Sync()
		config.InitDB()

		return services.SeedFromFile(config.DB, args[0])
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

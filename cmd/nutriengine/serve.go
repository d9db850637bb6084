package main

import (
	"nutriengine/config"
	"nutriengine/logger"
	"nutriengine/routes"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP analysis API",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		logger.Init()
		defer logger.Sync()
		config.InitDB()

		r := routes.SetupRouter()
		return r.Run(":" + config.GetEnv("PORT", "8080"))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

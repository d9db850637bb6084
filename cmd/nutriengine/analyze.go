package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"nutriengine/config"
	"nutriengine/logger"
	"nutriengine/services"

	"github.com/spf13/cobra"
)

// analyze runs one request through the engine without the HTTP layer:
// JSON request on stdin (or a file), JSON response on stdout.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [request.json]",
	Short: "Analyze a meal request from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		logger.Init()
		defer logger.Sync()
		config.InitDB()

		var raw []byte
		var err error
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
		} else {
			raw, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("read request: %w", err)
		}

		var req services.AnalyzeRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("parse request: %w", err)
		}

		svc := services.NewAnalysisService(
			services.NewGormStore(config.DB),
			services.DefaultFallbackTable(),
		)
		out, err := svc.Analyze(cmd.Context(), &req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

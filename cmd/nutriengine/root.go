package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nutriengine",
	Short: "nutriengine resolves food items to nutrient totals",
	Long: "nutriengine is the nutrient resolution & aggregation engine: it matches " +
		"free-text food items against a food-composition store, converts quantities " +
		"to effective edible mass, and aggregates scored nutrient totals.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

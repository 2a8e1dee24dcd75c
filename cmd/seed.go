/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/bootstrap"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/config"
	"github.com/spf13/cobra"
)

var seedCount int
var seedItems int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed sample carts through the command path",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			os.Exit(1)
		}
		if err := bootstrap.Seed(cmd.Context(), cfg, seedCount, seedItems); err != nil {
			fmt.Fprintln(os.Stderr, "seed error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 10, "number of carts to seed")
	seedCmd.Flags().IntVar(&seedItems, "items", 3, "items added to each cart")
	rootCmd.AddCommand(seedCmd)
}

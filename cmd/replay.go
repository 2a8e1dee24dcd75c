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

var replayCartID int64

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Rebuild the cart read model from the event store",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			os.Exit(1)
		}
		if err := bootstrap.Replay(cmd.Context(), cfg, replayCartID); err != nil {
			fmt.Fprintln(os.Stderr, "replay error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	replayCmd.Flags().Int64Var(&replayCartID, "cart", 0, "rebuild a single cart (default: all carts)")
	rootCmd.AddCommand(replayCmd)
}

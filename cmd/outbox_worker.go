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

var outboxOnce bool

var outboxCmd = &cobra.Command{
	Use:   "outbox-worker",
	Short: "Publish pending outbox messages to the configured broker",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			os.Exit(1)
		}
		if err := bootstrap.RunOutboxWorker(cmd.Context(), cfg, outboxOnce); err != nil {
			fmt.Fprintln(os.Stderr, "outbox-worker error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	outboxCmd.Flags().BoolVar(&outboxOnce, "once", false, "process a single batch and exit")
	rootCmd.AddCommand(outboxCmd)
}

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

var consumerCmd = &cobra.Command{
	Use:   "consumer",
	Short: "Record published cart messages in the audit log",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			os.Exit(1)
		}
		if err := bootstrap.Consume(cmd.Context(), cfg); err != nil {
			fmt.Fprintln(os.Stderr, "consumer error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(consumerCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "imaginify",
	Short: "Imaginify - AI image transformation service",
	Long: `Imaginify is an AI image transformation service with credit-based billing.

It provides a REST API for applying image transformations, managing saved
images, and purchasing credits through Stripe checkout.

Run 'imaginify serve' to start the server, or 'imaginify import' to import
user credit balances.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
}

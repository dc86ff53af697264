package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/verbdrill"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of verbdrill",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("verbdrill version %s\n", strings.TrimSpace(verbdrill.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

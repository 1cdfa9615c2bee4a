package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/spigell/job-matcher/internal/matching"
)

var dimensionsCmd = &cobra.Command{
	Use:   "dimensions",
	Short: "Print the active dimension table",
	Run: func(cmd *cobra.Command, _ []string) {
		config, err := getConfig()
		if err != nil {
			log.Fatalf("getting a config: %s", err)
		}
		if err := printDimensions(cmd.OutOrStdout(), config.Matching); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(dimensionsCmd)
}

func printDimensions(w io.Writer, cfg *matching.Config) error {
	dims, err := matching.Dimensions(cfg)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%-16s %-6s %s\n", "DIMENSION", "WEIGHT", "METHOD"); err != nil {
		return err
	}
	for _, status := range matching.Describe(dims) {
		if _, err := fmt.Fprintf(w, "%-16s %-6s %s\n", status.ID, status.Weight, status.Method); err != nil {
			return err
		}
	}
	return nil
}

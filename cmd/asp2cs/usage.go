package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/secretm224/asp-to-dotnet-converter/internal/dcache"
	"github.com/secretm224/asp-to-dotnet-converter/internal/groq"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show today's AI usage against the daily budget",
	RunE:  runUsage,
}

func init() {
	usageCmd.Flags().String("format", "text", "output format (text|json)")
}

func runUsage(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cache, err := dcache.Open("asp2cs")
	if err != nil {
		return err
	}
	u, err := cache.LoadUsage(time.Now())
	if err != nil {
		return err
	}

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch outputFormat {
	case "text":
		fmt.Fprintf(cmd.OutOrStdout(), "day:         %s\n", u.Day)
		fmt.Fprintf(cmd.OutOrStdout(), "conversions: %d\n", u.Conversions)
		fmt.Fprintf(cmd.OutOrStdout(), "tokens:      %d / %d\n", u.Tokens, uint64(groq.DailyTokenLimit))
		return nil
	case "json":
		payload := struct {
			Day         string `json:"day"`
			Conversions uint64 `json:"conversions"`
			Tokens      uint64 `json:"tokens"`
			TokenLimit  uint64 `json:"token_limit"`
		}{u.Day, u.Conversions, u.Tokens, groq.DailyTokenLimit}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	default:
		return fmt.Errorf("usage: unsupported output format %q", outputFormat)
	}
}

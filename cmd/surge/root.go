package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "surge",
	Short: "HTTP/2 header compression tool",
	Long: `Surge encodes and decodes HTTP/2 header blocks (HPACK, RFC 7541).

Examples:
  surge decode 828684418cf1e3c2e5f23a6ba0ab90f4ff   # Decode a header block
  surge decode -                                    # Read hex from stdin
  surge encode :method GET :path / :scheme http     # Encode header fields`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(encodeCmd)
}

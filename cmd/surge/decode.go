package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yourusername/surge/pkg/surge/http2"
)

var decodeTableSize uint32

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>...",
	Short: "Decode HPACK header blocks",
	Long: `Decode one or more hex-encoded HPACK header blocks and print the
header fields. Blocks share one dynamic table, so a sequence of blocks
from the same connection decodes the way a peer would see it.
Pass "-" to read hex from stdin.`,
	Example: `  surge decode 828684418cf1e3c2e5f23a6ba0ab90f4ff
  surge decode 828684 418cf1e3c2e5f23a6ba0ab90f4ff
  echo 8882 | surge decode -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().Uint32VarP(&decodeTableSize, "table-size", "t", http2.DefaultHeaderTableSize,
		"dynamic table size in bytes")
}

func runDecode(cmd *cobra.Command, args []string) error {
	blocks := args
	if len(args) == 1 && args[0] == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		blocks = strings.Fields(string(raw))
	}

	table := http2.NewDynamicTable(decodeTableSize)
	huffman := http2.NewHuffmanDecoder(http2.DefaultConfig())

	for i, block := range blocks {
		raw, err := hex.DecodeString(strings.TrimSpace(block))
		if err != nil {
			return fmt.Errorf("block %d is not valid hex: %w", i+1, err)
		}

		frame := http2.FrameData{
			Header: http2.FrameHeader{
				Length: uint32(len(raw)),
				Type:   http2.FrameTypeHeaders,
				Flags:  http2.FlagHeadersEndHeaders,
			},
			Data: http2.NewBufferData(raw),
		}
		headers, err := http2.ParseHeaders(nil, table, huffman, frame)
		if err != nil {
			return fmt.Errorf("block %d: %w", i+1, err)
		}

		if len(blocks) > 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "--- block %d ---\n", i+1)
		}
		fmt.Fprint(cmd.OutOrStdout(), headers.String())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "dynamic table: %d entries, %d/%d bytes\n",
		table.Len(), table.Size(), table.MaxTableSize())
	return nil
}

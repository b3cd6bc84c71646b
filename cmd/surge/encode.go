package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yourusername/surge/pkg/surge/http2"
)

var (
	encodeTableSize uint32
	encodeSplit     int
)

var encodeCmd = &cobra.Command{
	Use:   "encode <name> <value>...",
	Short: "Encode header fields as an HPACK block",
	Long: `Encode name/value pairs as an HPACK header block and print it as
hex. Pseudo-header names (starting with ':') are hoisted and written
first; a "host" field becomes :authority when none is given.`,
	Example: `  surge encode :method GET :path / :scheme http
  surge encode :status 200 content-type text/html
  surge encode -s 4 :method GET :path / :scheme http :status 200`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || len(args)%2 != 0 {
			return fmt.Errorf("arguments must be name value pairs")
		}
		return nil
	},
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().Uint32VarP(&encodeTableSize, "table-size", "t", http2.DefaultHeaderTableSize,
		"dynamic table size in bytes")
	encodeCmd.Flags().IntVarP(&encodeSplit, "split", "s", 0,
		"split the block into chunks of at most this many bytes")
}

func runEncode(cmd *cobra.Command, args []string) error {
	list := http2.NewHeaderList()
	for i := 0; i+1 < len(args); i += 2 {
		list.Add(args[i], args[i+1])
	}
	headers := http2.NewHeaders(list)

	table := http2.NewDynamicTable(encodeTableSize)
	huffman := http2.NewHuffmanEncoder(http2.DefaultConfig())

	buf := http2.AcquireBufferData()
	defer http2.ReleaseBufferData(buf)
	if err := headers.Write(table, huffman, buf); err != nil {
		return err
	}

	if encodeSplit > 0 {
		for i, chunk := range http2.Split(buf, encodeSplit) {
			kind := "CONTINUATION"
			if i == 0 {
				kind = "HEADERS"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", kind, hex.EncodeToString(chunk.Unread()))
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(buf.Unread()))
	return nil
}

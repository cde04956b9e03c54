package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a summary of a packet envelope file",
	Long: `Decode a packet envelope file and print its header and field values,
grouped by field class (required, allowed, extension).

Examples:
  aepctl inspect -c catalog.yaml -f envelope.json`,
	Run: func(cmd *cobra.Command, args []string) {
		runInspectCommand()
	},
}

var inspectEnvelopeFile string

func init() {
	inspectCmd.Flags().StringVarP(&inspectEnvelopeFile, "file", "f", "",
		"envelope file to inspect (required)")
	inspectCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(inspectCmd)
}

func runInspectCommand() {
	reg := loadRegistry()
	p := readPacket(reg, inspectEnvelopeFile)

	fmt.Printf("type:        %s\n", p.Type())
	fmt.Printf("packet_id:   %s\n", orUnset(p.PacketID()))
	fmt.Printf("date:        %s\n", p.Timestamp().Format("2006-01-02T15:04:05Z07:00"))
	fmt.Printf("in_reply_to: %s\n", orUnset(p.InReplyToID()))
	fmt.Printf("replies:     %s\n", orUnset(strings.Join(p.Schema().ExpectedReplies, ", ")))

	printStore("required", p.Schema().Required, p.RequiredFields())
	printStore("allowed", p.Schema().Allowed, p.AllowedFields())

	ext := p.ExtensionFields()
	if len(ext) > 0 {
		fmt.Println("extension fields:")
		for _, name := range p.FieldNames() {
			if v, ok := ext[name]; ok {
				fmt.Printf("  %-24s %v\n", name, v)
			}
		}
	}
}

func printStore(label string, order []string, fields map[string]any) {
	if len(order) == 0 {
		return
	}
	fmt.Printf("%s fields:\n", label)
	for _, name := range order {
		v, ok := fields[name]
		if !ok || v == nil {
			fmt.Printf("  %-24s (unset)\n", name)
			continue
		}
		fmt.Printf("  %-24s %v\n", name, v)
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"firestige.xyz/aep/pkg/packet"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a packet envelope file",
	Long: `Validate a packet envelope file against the catalog: the envelope must
decode to a registered packet type, and unless the packet is a reply every
required field must carry a value.

Examples:
  aepctl validate -c catalog.yaml -f envelope.json`,
	Run: func(cmd *cobra.Command, args []string) {
		runValidateCommand()
	},
}

var validateEnvelopeFile string

func init() {
	validateCmd.Flags().StringVarP(&validateEnvelopeFile, "file", "f", "",
		"envelope file to validate (required)")
	validateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(validateCmd)
}

func runValidateCommand() {
	reg := loadRegistry()
	p := readPacket(reg, validateEnvelopeFile)

	if err := p.Validate(); err != nil {
		if packet.IsInvalidData(err) {
			fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
			os.Exit(1)
		}
		exitWithError("validation failed", err)
	}

	fmt.Printf("VALID: %s packet %q — %d field(s) set\n",
		p.Type(), p.PacketID(), len(p.FieldNames()))
}

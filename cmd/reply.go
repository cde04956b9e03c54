package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"firestige.xyz/aep/pkg/packet"
)

var replyCmd = &cobra.Command{
	Use:   "reply",
	Short: "Build the reply envelope for a packet envelope file",
	Long: `Decode a packet envelope file, resolve its expected reply type and print
the reply envelope skeleton to stdout. When the source type expects more than
one reply type, --type picks one; --force together with --type skips the
expected-reply check entirely.

Examples:
  aepctl reply -c catalog.yaml -f envelope.json
  aepctl reply -c catalog.yaml -f envelope.json --type notify_account
  aepctl reply -c catalog.yaml -f envelope.json --type inform_usage --force`,
	Run: func(cmd *cobra.Command, args []string) {
		runReplyCommand()
	},
}

var (
	replyEnvelopeFile string
	replyType         string
	replyForce        bool
	replyAssignID     bool
)

func init() {
	replyCmd.Flags().StringVarP(&replyEnvelopeFile, "file", "f", "",
		"envelope file to reply to (required)")
	replyCmd.Flags().StringVarP(&replyType, "type", "t", "",
		"reply packet type (required when the source expects several)")
	replyCmd.Flags().BoolVar(&replyForce, "force", false,
		"skip the expected-reply check (requires --type)")
	replyCmd.Flags().BoolVar(&replyAssignID, "assign-id", false,
		"assign a fresh packet id to the reply")
	replyCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(replyCmd)
}

func runReplyCommand() {
	if replyForce && replyType == "" {
		exitWithError("--force requires --type", nil)
	}

	reg := loadRegistry()
	src := readPacket(reg, replyEnvelopeFile)

	reply, err := reg.Reply(src, packet.ReplyOptions{Type: replyType, Force: replyForce})
	if err != nil {
		exitWithError(fmt.Sprintf("cannot build reply for %s packet %q", src.Type(), src.PacketID()), err)
	}
	if replyAssignID {
		reply.EnsurePacketID()
	}

	data, err := reply.JSON()
	if err != nil {
		exitWithError("failed to encode reply envelope", err)
	}
	fmt.Println(string(data))
}

package packet

import (
	"fmt"
	"math"
	"strconv"
)

// ReplyRef identifies the packet a new packet answers. The zero value means
// "not a reply". Construction resolves the reference to a plain id once, so
// the packet itself never holds anything but the string.
type ReplyRef struct {
	refID  string
	refErr error
}

// NoReply is the unset reference.
func NoReply() ReplyRef { return ReplyRef{} }

// ReplyToID references a packet by its id. An empty id is the same as
// NoReply.
func ReplyToID(id string) ReplyRef { return ReplyRef{refID: id} }

// ReplyToPacket references another packet directly, using its current id.
func ReplyToPacket(other *Packet) ReplyRef {
	if other == nil {
		return NoReply()
	}
	return ReplyToID(other.PacketID())
}

func (r ReplyRef) id() (string, error) { return r.refID, r.refErr }

// NormalizeReplyRef converts the loosely typed reply references that arrive
// from the wire or from older call sites into a ReplyRef. Accepted shapes,
// checked in order: nil, a ReplyRef, a string, an integer (decimal text), a
// value exposing PacketID, and a header-shaped mapping carrying a nested
// packet_id. Anything else fails with InvalidDataError.
func NormalizeReplyRef(v any) (ReplyRef, error) {
	switch ref := v.(type) {
	case nil:
		return NoReply(), nil
	case ReplyRef:
		return ref, ref.refErr
	case string:
		return ReplyToID(ref), nil
	case int:
		return ReplyToID(strconv.Itoa(ref)), nil
	case int64:
		return ReplyToID(strconv.FormatInt(ref, 10)), nil
	case float64:
		// JSON decoding hands integers over as float64.
		if ref == math.Trunc(ref) {
			return ReplyToID(strconv.FormatInt(int64(ref), 10)), nil
		}
	case interface{ PacketID() string }:
		return ReplyToID(ref.PacketID()), nil
	case map[string]any:
		if header, ok := ref["header"].(map[string]any); ok {
			if id, ok := header["packet_id"].(string); ok && id != "" {
				return ReplyToID(id), nil
			}
		}
	}
	err := &InvalidDataError{
		Field:  "in_reply_to",
		Reason: fmt.Sprintf("unsupported reference %T", v),
	}
	return ReplyRef{refErr: err}, err
}

package packet

import "slices"

// ReplyOptions steer reply resolution. The zero value asks for the source
// type's sole expected reply.
type ReplyOptions struct {
	// PacketID for the new packet. Usually left empty and assigned later.
	PacketID string

	// Type requests a specific reply type, needed when the source type
	// declares more than one expected reply.
	Type string

	// Force skips the expected-reply compatibility checks. Requires Type.
	Force bool
}

// Reply resolves and constructs the reply to src. Resolution follows the
// protocol's rules: a forced type bypasses all checks; a type with no
// expected replies cannot be answered; more than one expected reply needs a
// disambiguating Type; a requested Type must be among the expected replies.
// The new packet carries in_reply_to = src's packet id.
func (r *Registry) Reply(src *Packet, opts ReplyOptions) (*Packet, error) {
	var schema *Schema
	var err error

	expected := src.Schema().ExpectedReplies
	switch {
	case opts.Force && opts.Type != "":
		schema, err = r.Get(opts.Type)
	case len(expected) == 0:
		err = &InvalidTypeError{Type: src.Type(), Reason: "packet type does not expect a reply"}
	case len(expected) > 1 && opts.Type == "":
		err = &InvalidTypeError{
			Type:   src.Type(),
			Reason: "packet type has more than one expected reply, specify a type",
		}
	case opts.Type != "" && !slices.Contains(expected, opts.Type):
		err = &InvalidTypeError{
			Type:   opts.Type,
			Reason: "not an expected reply for packet type " + src.Type(),
		}
	case opts.Type != "":
		schema, err = r.Get(opts.Type)
	default:
		schema, err = r.Get(expected[0])
	}
	if err != nil {
		return nil, err
	}
	return schema.New(Config{
		PacketID:  opts.PacketID,
		InReplyTo: ReplyToPacket(src),
	})
}

package packet

// Validate checks required-field presence. A reply packet (in_reply_to set)
// passes unconditionally: its missing required values are expected to be
// back-filled from the referenced packet by the recipient. Otherwise the
// first unset required field, in schema order, fails with InvalidDataError
// naming the field. Schemas with an ExtraValidate hook run it after the base
// rule.
func (p *Packet) Validate() error {
	if p.inReplyTo != "" {
		return nil
	}
	for _, name := range p.schema.Required {
		if p.required[name] == nil {
			return &InvalidDataError{Field: name, Reason: "missing required field"}
		}
	}
	if p.schema.ExtraValidate != nil {
		return p.schema.ExtraValidate(p)
	}
	return nil
}

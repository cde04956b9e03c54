package packet

import (
	"encoding/json"
	"fmt"
	"time"

	"firestige.xyz/aep/internal/log"
)

// DataType is the envelope discriminator for packet messages.
const DataType = "packet"

// Header carries a packet's identity on the wire.
type Header struct {
	PacketID          string   `json:"packet_id"`
	Date              string   `json:"date"`
	Type              string   `json:"type"`
	ExpectedReplyList []string `json:"expected_reply_list"`
	InReplyTo         string   `json:"in_reply_to,omitempty"`
}

// Envelope is the canonical header+body wire structure.
type Envelope struct {
	DataType string         `json:"DATA_TYPE"`
	Header   Header         `json:"header"`
	Body     map[string]any `json:"body"`
}

// Envelope serializes the packet. The body merges the required, allowed and
// extension stores in that precedence, dropping nil values and formatting
// timestamps as ISO-8601 text.
func (p *Packet) Envelope() *Envelope {
	body := make(map[string]any)
	for _, store := range []map[string]any{p.required, p.allowed, p.extensions} {
		for name, value := range store {
			if value == nil {
				continue
			}
			if ts, ok := value.(time.Time); ok {
				body[name] = ts.Format(time.RFC3339)
				continue
			}
			body[name] = value
		}
	}

	replies := p.schema.ExpectedReplies
	if replies == nil {
		replies = []string{}
	}
	return &Envelope{
		DataType: DataType,
		Header: Header{
			PacketID:          p.packetID,
			Date:              p.timestamp.Format(time.RFC3339),
			Type:              p.schema.Type,
			ExpectedReplyList: replies,
			InReplyTo:         p.inReplyTo,
		},
		Body: body,
	}
}

// JSON encodes the packet's envelope as JSON text.
func (p *Packet) JSON() ([]byte, error) {
	data, err := json.Marshal(p.Envelope())
	if err != nil {
		return nil, fmt.Errorf("packet: encode envelope: %w", err)
	}
	return data, nil
}

// FromEnvelope reconstructs a packet from its wire form. The header type is
// resolved through the registry and every body entry is routed through the
// same required/allowed/extension logic as direct construction.
func (r *Registry) FromEnvelope(env *Envelope) (*Packet, error) {
	schema, err := r.Get(env.Header.Type)
	if err != nil {
		return nil, err
	}
	p, err := schema.New(Config{
		PacketID:  env.Header.PacketID,
		InReplyTo: ReplyToID(env.Header.InReplyTo),
		Fields:    env.Body,
	})
	if err != nil {
		return nil, err
	}
	log.Get().WithFields(map[string]any{
		"type":      schema.Type,
		"packet_id": p.PacketID(),
	}).Debug("packet decoded from envelope")
	return p, nil
}

// FromJSON parses JSON text into an envelope and delegates to FromEnvelope.
func (r *Registry) FromJSON(data []byte) (*Packet, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("packet: decode envelope: %w", err)
	}
	return r.FromEnvelope(&env)
}

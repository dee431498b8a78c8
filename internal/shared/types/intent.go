package types

// Intent is the dispatcher's sole input: a UI element's declared action
// and payload, typically read from data-action / data-payload attributes.
type Intent struct {
	Type    string  `json:"type"`
	Payload *string `json:"payload"`
}

// PayloadOr returns the payload or def when it is absent or empty
func (i Intent) PayloadOr(def string) string {
	if i.Payload == nil || *i.Payload == "" {
		return def
	}
	return *i.Payload
}

// NewIntent builds an intent with an optional payload
func NewIntent(typ string, payload ...string) Intent {
	in := Intent{Type: typ}
	if len(payload) > 0 {
		in.Payload = StringPtr(payload[0])
	}
	return in
}

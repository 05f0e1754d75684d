package advisor

// Responder is the deterministic, credential-free reply path. It always
// produces a non-empty answer, so callers above it never need an error
// branch for "no reply".
type Responder struct{}

func NewResponder() *Responder { return &Responder{} }

// Respond classifies the message and returns the highest-priority canned
// reply. Same input, same output.
func (r *Responder) Respond(text string) string {
	hits := Classify(text)
	if len(hits) == 0 {
		return Lookup(TopicDefault, text)
	}
	return Lookup(hits[0], text)
}

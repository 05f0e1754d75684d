package chat

import (
	"context"
	"log"
	"strings"

	"github.com/edenzconsultants/portal-api/internal/advisor"
	"github.com/edenzconsultants/portal-api/internal/ai"
)

// personaPrompt anchors the remote model as the consultancy's advisor. It
// is static configuration, never computed.
const personaPrompt = `You are Dr. Sarah, an expert study abroad consultant at Edenz Consultant with 15+ years of experience.
You specialize in helping Pakistani students with:
- University selection and applications
- Visa guidance and requirements
- Test preparation (IELTS, TOEFL, GRE, GMAT)
- Scholarship opportunities
- Country-specific information
- Financial planning for studies

Always provide helpful, accurate, and encouraging responses. If you don't know something, suggest booking a consultation with Edenz Consultant.
Keep responses conversational but professional. Use Pakistani context when relevant.`

// Assistant produces a reply for every user turn. When a remote provider is
// configured and reachable it answers; otherwise the deterministic advisor
// responder does. Reply never fails: provider trouble is logged, not
// propagated.
type Assistant struct {
	registry      *ai.Registry
	providerName  string
	model         string
	historyWindow int
	fallback      *advisor.Responder
}

func NewAssistant(registry *ai.Registry, providerName, model string, historyWindow int) *Assistant {
	if historyWindow <= 0 || historyWindow > 50 {
		historyWindow = 10
	}
	return &Assistant{
		registry:      registry,
		providerName:  providerName,
		model:         model,
		historyWindow: historyWindow,
		fallback:      advisor.NewResponder(),
	}
}

// Reply answers the current message given prior turns (chronological).
func (a *Assistant) Reply(ctx context.Context, message string, history []ai.Message) string {
	if a.registry == nil || a.providerName == "" {
		return a.fallback.Respond(message)
	}

	// A misconfigured provider (e.g. missing API key) fails here, before
	// any network I/O.
	provider, err := a.registry.Get(ctx, a.providerName, a.model)
	if err != nil {
		return a.fallback.Respond(message)
	}

	if len(history) > a.historyWindow {
		history = history[len(history)-a.historyWindow:]
	}
	msgs := make([]ai.Message, 0, len(history)+2)
	msgs = append(msgs, ai.Message{Role: ai.RoleSystem, Content: personaPrompt})
	msgs = append(msgs, history...)
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: message})

	reply, err := provider.Chat(ctx, msgs)
	if err != nil || strings.TrimSpace(reply) == "" {
		log.Printf("assistant fallback provider=%s err=%v", a.providerName, err)
		return a.fallback.Respond(message)
	}
	return reply
}

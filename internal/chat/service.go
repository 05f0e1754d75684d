package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/edenzconsultants/portal-api/internal/advisor"
	"github.com/edenzconsultants/portal-api/internal/ai"
)

var ErrEmptyMessage = errors.New("chat: message must not be empty")

// Envelope is the reply contract the chat surface consumes.
type Envelope struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Action    string `json:"action,omitempty"`
}

type Service struct {
	repo          *Repo
	assistant     *Assistant
	historyWindow int
}

func NewService(repo *Repo, assistant *Assistant, historyWindow int) *Service {
	if historyWindow <= 0 || historyWindow > 50 {
		historyWindow = 10
	}
	return &Service{repo: repo, assistant: assistant, historyWindow: historyWindow}
}

// SendMessage runs one chat turn: persist the user message, produce a
// reply (remote provider or canned fallback), persist it, and stamp the
// booking-intent flag. Only persistence can fail; the reply itself is
// guaranteed.
func (s *Service) SendMessage(ctx context.Context, sessionID, message string) (Envelope, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Envelope{}, ErrEmptyMessage
	}

	if sessionID == "" {
		sessionID = NewSessionID()
	}
	if _, err := s.repo.EnsureSession(ctx, sessionID); err != nil {
		return Envelope{}, err
	}

	// History is read before the current turn is stored so the provider
	// context does not carry the message twice.
	history, err := s.repo.ListRecentMessagesAsc(ctx, sessionID, s.historyWindow)
	if err != nil {
		return Envelope{}, err
	}

	if err := s.repo.InsertMessage(ctx, &Message{
		SessionID: sessionID,
		Sender:    SenderUser,
		Content:   message,
	}); err != nil {
		return Envelope{}, err
	}

	reply := s.assistant.Reply(ctx, message, toProviderMessages(history))

	if err := s.repo.InsertMessage(ctx, &Message{
		SessionID: sessionID,
		Sender:    SenderBot,
		Content:   reply,
	}); err != nil {
		return Envelope{}, err
	}

	env := Envelope{Response: reply, SessionID: sessionID}
	userTurns := append(userContents(history), message)
	if advisor.DetectBookingIntent(userTurns) && !advisor.SuppressBookingNudge(reply) {
		env.Action = advisor.BookingIntentAction
	}
	return env, nil
}

func (s *Service) ListMessages(ctx context.Context, sessionID string, limit int, beforeID uint64) ([]Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListMessages(ctx, sessionID, limit, beforeID)
}

// GenerateReplyAndInsert answers the newest stored user turn of a session.
// Used by the worker: the user message was persisted when the job was
// enqueued.
func (s *Service) GenerateReplyAndInsert(ctx context.Context, sessionID string) (string, uint64, error) {
	recent, err := s.repo.ListRecentMessagesAsc(ctx, sessionID, s.historyWindow+1)
	if err != nil {
		return "", 0, err
	}
	if len(recent) == 0 || recent[len(recent)-1].Sender != SenderUser {
		return "", 0, errors.New("chat: no pending user message in session")
	}

	current := recent[len(recent)-1]
	history := recent[:len(recent)-1]

	reply := s.assistant.Reply(ctx, current.Content, toProviderMessages(history))

	botMsg := &Message{
		SessionID: sessionID,
		Sender:    SenderBot,
		Content:   reply,
	}
	if err := s.repo.InsertMessage(ctx, botMsg); err != nil {
		return "", 0, err
	}
	return reply, botMsg.ID, nil
}

func (s *Service) InsertUserMessage(ctx context.Context, sessionID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyMessage
	}
	if _, err := s.repo.EnsureSession(ctx, sessionID); err != nil {
		return err
	}
	return s.repo.InsertMessage(ctx, &Message{
		SessionID: sessionID,
		Sender:    SenderUser,
		Content:   content,
	})
}

func (s *Service) CreateJobOrGetExisting(ctx context.Context, job *Job) (*Job, bool, error) {
	return s.repo.CreateJobOrGetExisting(ctx, job)
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*Job, error) {
	return s.repo.GetJobByID(ctx, jobID)
}

func toProviderMessages(msgs []Message) []ai.Message {
	out := make([]ai.Message, 0, len(msgs))
	for _, m := range msgs {
		role := ai.RoleUser
		if m.Sender == SenderBot {
			role = ai.RoleAssistant
		}
		out = append(out, ai.Message{Role: role, Content: m.Content})
	}
	return out
}

func userContents(msgs []Message) []string {
	var out []string
	for _, m := range msgs {
		if m.Sender == SenderUser {
			out = append(out, m.Content)
		}
	}
	return out
}

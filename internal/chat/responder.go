package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rogersnm/salesfirst/internal/id"
	"github.com/rogersnm/salesfirst/internal/logger"
	"github.com/rogersnm/salesfirst/internal/model"
)

// DefaultReplyDelay is how long the simulated assistant "thinks".
const DefaultReplyDelay = 1500 * time.Millisecond

// Responder produces canned assistant replies after a delay. Every pending
// reply is tied to its session: cancelling the context, the session or the
// project, or deleting the session, stops the reply before it is written.
type Responder struct {
	chats *Store
	delay time.Duration
	log   logger.Logger

	mu       sync.Mutex
	seq      uint64
	inflight map[string]map[uint64]context.CancelFunc
	wg       sync.WaitGroup
}

func NewResponder(chats *Store, delay time.Duration, log logger.Logger) *Responder {
	r := &Responder{
		chats:    chats,
		delay:    delay,
		log:      log,
		inflight: make(map[string]map[uint64]context.CancelFunc),
	}
	chats.setOnDelete(r.CancelSession)
	return r
}

// Send appends the user's message and schedules the assistant reply. The
// returned channel yields the reply once written, or closes empty if the
// reply was cancelled.
func (r *Responder) Send(ctx context.Context, projectID, sessionID, content string) (model.ChatSession, <-chan model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return model.ChatSession{}, nil, fmt.Errorf("message content is required")
	}
	session, ok := r.chats.Append(projectID, sessionID, model.Message{
		Role:    model.RoleUser,
		Content: content,
	})
	if !ok {
		return model.ChatSession{}, nil, fmt.Errorf("session %s not found in project %s", sessionID, projectID)
	}
	return session, r.Reply(ctx, projectID, sessionID, content), nil
}

// Reply schedules one assistant reply to prompt.
func (r *Responder) Reply(ctx context.Context, projectID, sessionID, prompt string) <-chan model.Message {
	ctx, cancel := context.WithCancel(ctx)
	key := inflightKey(projectID, sessionID)
	seq := r.register(key, cancel)

	out := make(chan model.Message, 1)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(out)
		defer r.unregister(key, seq)
		defer cancel()

		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			r.log.Debug(logModule, "reply cancelled", map[string]interface{}{"session": sessionID})
			return
		case <-timer.C:
		}

		session, ok := r.chats.Get(projectID, sessionID)
		if !ok || ctx.Err() != nil {
			return
		}
		msg := model.Message{
			ID:      id.NewMessageID(),
			Role:    model.RoleAssistant,
			Content: CannedReply(session.TopicName(), prompt),
		}
		updated, ok := r.chats.Append(projectID, sessionID, msg)
		if !ok {
			return
		}
		if last, ok := updated.LastMessage(); ok {
			out <- last
		}
	}()
	return out
}

// CancelSession stops every pending reply for one session.
func (r *Responder) CancelSession(projectID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cancel := range r.inflight[inflightKey(projectID, sessionID)] {
		cancel()
	}
}

// CancelProject stops every pending reply for a project.
func (r *Responder) CancelProject(projectID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := projectID + "\x00"
	for key, pending := range r.inflight {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		for _, cancel := range pending {
			cancel()
		}
	}
}

// Pending reports how many replies are scheduled and not yet finished.
func (r *Responder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, pending := range r.inflight {
		n += len(pending)
	}
	return n
}

// Wait blocks until every scheduled reply has finished or been cancelled.
func (r *Responder) Wait() {
	r.wg.Wait()
}

func (r *Responder) register(key string, cancel context.CancelFunc) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if r.inflight[key] == nil {
		r.inflight[key] = make(map[uint64]context.CancelFunc)
	}
	r.inflight[key][r.seq] = cancel
	return r.seq
}

func (r *Responder) unregister(key string, seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight[key], seq)
	if len(r.inflight[key]) == 0 {
		delete(r.inflight, key)
	}
}

func inflightKey(projectID, sessionID string) string {
	return projectID + "\x00" + sessionID
}

// CannedReply picks the assistant's answer with simple keyword checks.
func CannedReply(topic, prompt string) string {
	p := strings.ToLower(prompt)
	switch {
	case containsAny(p, "estimate", "hours", "effort"):
		return "Based on the RFP scope, the effort is broken down by role in the Estimation Review stage. Would you like me to adjust the hours for any role?"
	case containsAny(p, "timeline", "deadline", "due date"):
		return "The submission deadline is the date to plan backwards from. I suggest closing the estimation review at least a week before it so the writeup has time for review."
	case containsAny(p, "requirement"):
		return "The key requirements are listed in the project summary. I can help you map each requirement to a section of the response."
	case containsAny(p, "payment", "price", "pricing", "cost"):
		return "The payment terms in the RFP determine how milestones should be priced. Consider aligning invoicing with the delivery phases in your response."
	case containsAny(p, "scope"):
		return "The scope section outlines what the client expects to be delivered. Let me know which part you would like to clarify or expand on."
	case topic != "":
		return fmt.Sprintf("Here is what I found about %s in your knowledge base. Could you tell me more about what you need for this proposal?", topic)
	default:
		return "I understand. Could you share a few more details so I can help with your proposal?"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

package chat

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/dmartins/dbchat/internal/api"
	apierrors "github.com/dmartins/dbchat/internal/errors"
	"github.com/dmartins/dbchat/internal/models"
)

// StoppedText is the message recorded when the user cancels an in-flight
// question.
const StoppedText = "Generation stopped by user."

// FallbackErrorText is shown for transport failures. The underlying
// cause is logged for diagnostics, never shown to the end user.
const FallbackErrorText = "Sorry, I encountered an error. Please try again."

// Phase is the session's lifecycle state.
type Phase int

const (
	// Idle means no question is in flight.
	Idle Phase = iota
	// InFlight means exactly one question is awaiting its outcome.
	InFlight
)

// AnalyticsCandidate is the most recent non-empty result set, offered to
// the analytics panel as its data source. AutoOpen is set when the
// backend asked for the panel to open immediately (chart_request).
type AnalyticsCandidate struct {
	Results   *models.ResultSet
	Question  string
	ChartType models.ChartType
	AutoOpen  bool
}

// Session owns the at-most-one in-flight question. Submit starts a
// question, Cancel aborts it, and every settled question appends exactly
// one assistant-side message to the store before the session returns to
// Idle. All state mutations go through the session's mutex so the store
// and phase stay consistent even though the network call settles on its
// own goroutine.
type Session struct {
	client   api.ClientInterface
	store    *Store
	notifier *Notifier
	engine   models.Engine
	verbose  bool
	diag     *log.Logger

	mu        sync.Mutex
	phase     Phase
	cancel    context.CancelFunc
	candidate *AnalyticsCandidate
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithEngine selects which question-answering endpoint the session uses.
func WithEngine(engine models.Engine) SessionOption {
	return func(s *Session) {
		s.engine = engine
	}
}

// WithSessionVerbose enables diagnostic logging of transport failures.
func WithSessionVerbose(enabled bool) SessionOption {
	return func(s *Session) {
		s.verbose = enabled
	}
}

// NewSession creates an idle session writing into store.
func NewSession(client api.ClientInterface, store *Store, notifier *Notifier, opts ...SessionOption) *Session {
	s := &Session{
		client:   client,
		store:    store,
		notifier: notifier,
		engine:   models.EngineSQL,
		diag:     log.New(os.Stderr, "dbchat: ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Engine returns the session's question-answering engine.
func (s *Session) Engine() models.Engine {
	return s.engine
}

// Store returns the session's message store.
func (s *Session) Store() *Store {
	return s.store
}

// AnalyticsCandidate returns the latest analytics source and clears its
// auto-open flag, so the panel opens at most once per answer.
func (s *Session) AnalyticsCandidate() *AnalyticsCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.candidate == nil {
		return nil
	}
	c := *s.candidate
	s.candidate.AutoOpen = false
	return &c
}

// Submit starts a new question. It reports false without any side
// effects when the question is blank or another question is already in
// flight; the UI disables input while loading, but this check is the
// last line of defense against duplicate in-flight requests.
//
// On accept it appends the User message synchronously, transitions to
// InFlight and issues the backend call on its own goroutine with a fresh
// cancellation handle bound to this call only.
func (s *Session) Submit(question string) bool {
	question = strings.TrimSpace(question)
	if question == "" {
		return false
	}

	s.mu.Lock()
	if s.phase == InFlight {
		s.mu.Unlock()
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.phase = InFlight
	s.cancel = cancel
	s.store.Append(newMessage(models.RoleUser, models.KindNormal, question))
	s.mu.Unlock()

	s.notifier.Broadcast()

	go s.run(ctx, question)
	return true
}

// Cancel aborts the in-flight question, if any. The Stopped message is
// not appended here: it is appended when the in-flight call observes the
// cancellation and settles. Calling Cancel while Idle is a no-op, as is
// cancelling a call that has already settled.
func (s *Session) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	inFlight := s.phase == InFlight
	s.mu.Unlock()

	if inFlight && cancel != nil {
		cancel()
	}
}

// run performs the backend call and classifies its outcome into exactly
// one appended message. Whatever branch is taken, the session returns to
// Idle and releases the cancellation handle.
func (s *Session) run(ctx context.Context, question string) {
	answer, err := s.client.Ask(ctx, question, s.engine)

	// The cancellation token is checked here, at the resume point: a
	// cancel that raced with a successful settle still counts as
	// stopped, and no success or error message may be appended for it.
	cancelled := ctx.Err() != nil

	var msg models.Message
	switch {
	case cancelled:
		msg = newMessage(models.RoleAssistant, models.KindStopped, StoppedText)

	case err == nil:
		msg = s.answerMessage(question, answer)

	case apierrors.IsQueryHelp(err):
		var qh *apierrors.QueryHelpError
		errors.As(err, &qh)
		msg = newMessage(models.RoleAssistant, models.KindQueryHelp, qh.Message)
		msg.Suggestions = qh.Suggestions
		msg.OriginalQuestion = qh.OriginalQuestion

	case apierrors.IsAppError(err):
		msg = newMessage(models.RoleAssistant, models.KindError, "Error: "+err.Error())

	default:
		if s.verbose {
			s.diag.Printf("submission failed: %v", err)
		}
		msg = newMessage(models.RoleAssistant, models.KindError, FallbackErrorText)
	}

	s.mu.Lock()
	s.store.Append(msg)
	s.phase = Idle
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	// Release the handle unconditionally. A cancel after settlement is
	// a safe no-op.
	if cancel != nil {
		cancel()
	}

	s.notifier.Broadcast()
}

// answerMessage builds the Normal assistant message and records the
// analytics candidate for non-empty result sets.
func (s *Session) answerMessage(question string, answer *models.Answer) models.Message {
	msg := newMessage(models.RoleAssistant, models.KindNormal, answer.Text)
	msg.Summary = answer.Summary
	msg.Suggestions = answer.Suggestions
	msg.Capabilities = answer.Capabilities
	msg.Results = answer.Results
	msg.ChartRequest = answer.ChartRequest

	if answer.HasResults() {
		candidate := &AnalyticsCandidate{
			Results:   answer.Results,
			Question:  question,
			ChartType: models.ChartAuto,
		}
		if answer.ChartRequest != nil && answer.ChartRequest.Requested {
			candidate.ChartType = models.ParseChartType(answer.ChartRequest.Type)
			candidate.AutoOpen = true
		}
		s.mu.Lock()
		s.candidate = candidate
		s.mu.Unlock()
	}

	return msg
}

// Package chat is the dialogue manager: it loads a sender's session,
// classifies the incoming message, applies pagination-state transitions
// and persists the updated session.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/healthplug/pharmabot/internal/intent"
	"github.com/healthplug/pharmabot/internal/observability/metrics"
	"github.com/healthplug/pharmabot/internal/session"
	"github.com/healthplug/pharmabot/pkg/logging"
)

// Service coordinates classification for one message at a time per
// sender. Concurrent messages from different senders proceed in
// parallel; messages from the same sender are serialized so session
// reads and writes cannot interleave.
type Service struct {
	engine  *intent.Engine
	store   *session.Store
	metrics *metrics.ClassifierMetrics
	logger  *logging.Logger

	mu      sync.Mutex
	senders map[string]*sync.Mutex
}

func NewService(engine *intent.Engine, store *session.Store, m *metrics.ClassifierMetrics, logger *logging.Logger) *Service {
	if engine == nil {
		panic("chat: engine cannot be nil")
	}
	if store == nil {
		panic("chat: session store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		engine:  engine,
		store:   store,
		metrics: m,
		logger:  logger,
		senders: make(map[string]*sync.Mutex),
	}
}

func (s *Service) senderLock(senderID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.senders[senderID]
	if !ok {
		lock = &sync.Mutex{}
		s.senders[senderID] = lock
	}
	return lock
}

// Process classifies text for senderID and returns the result. It
// always returns a usable result; session storage failures degrade to
// a fresh session rather than failing the message.
func (s *Service) Process(ctx context.Context, text, senderID string) intent.Result {
	lock := s.senderLock(senderID)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()

	sess, err := s.store.Load(ctx, senderID)
	if err != nil {
		s.logger.Warn("session load failed, using fresh session",
			"sender_id", senderID, "error", err)
		sess = session.New(senderID)
	}

	result := s.engine.Classify(text, senderID, sess.View())
	s.applyTransitions(sess, text, result)

	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Warn("session save failed",
			"sender_id", senderID, "error", err)
	}

	s.metrics.ObserveClassification(result.Intent, result.Source)
	s.metrics.ObserveClassifyLatency(time.Since(start).Seconds())
	return result
}

// applyTransitions updates pagination markers from the classification
// outcome: list-producing intents arm the matching marker, a numeric
// selection or a message containing a cancel word disarms all of them.
func (s *Service) applyTransitions(sess *session.Session, text string, result intent.Result) {
	if containsCancelWord(text) {
		sess.ClearPagination()
		return
	}

	switch result.Intent {
	case intent.IntentSearchProducts, intent.IntentHealthcareProducts:
		sess.ClearPagination()
		sess.Data.ProductPagination = true
	case intent.IntentSearchDoctors:
		sess.ClearPagination()
		if result.Parameters["specialty"] != "" {
			sess.Data.DoctorPagination = true
		} else {
			sess.Data.DoctorSpecialtyPagination = true
		}
	case intent.IntentViewCart:
		sess.ClearPagination()
		sess.Data.CartPagination = true
	case intent.IntentPaginationSelection:
		if result.Source == intent.SourceNumericContext {
			sess.ClearPagination()
		}
	}
}

var cancelWords = []string{"cancel", "exit", "stop"}

// containsCancelWord uses the same containment check as the pagination
// guard's navigation-keyword pass-through, so any message the guard hands
// back as navigation also releases the markers here.
func containsCancelWord(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range cancelWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

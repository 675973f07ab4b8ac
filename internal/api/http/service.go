package http

import (
	"sync"

	"github.com/AhmedHAlshaer/mathgrader/internal/answerkey"
	"github.com/AhmedHAlshaer/mathgrader/internal/eventlog"
	"github.com/AhmedHAlshaer/mathgrader/internal/gradestore"
	"github.com/AhmedHAlshaer/mathgrader/internal/grading"
	"github.com/AhmedHAlshaer/mathgrader/internal/submission"
)

// Service bundles the grading pipeline behind the HTTP handlers and keeps
// the registry of loaded answer keys. Keys are registered by name so a
// grading request can refer to one without re-parsing.
type Service struct {
	KeyParser *answerkey.Parser
	SubParser *submission.Parser
	Engine    *grading.Engine
	Store     gradestore.Store
	Events    *eventlog.EventRepo

	mu   sync.RWMutex
	keys map[string]answerkey.AnswerKey
}

func NewService(kp *answerkey.Parser, sp *submission.Parser, eng *grading.Engine, store gradestore.Store, events *eventlog.EventRepo) *Service {
	return &Service{
		KeyParser: kp,
		SubParser: sp,
		Engine:    eng,
		Store:     store,
		Events:    events,
		keys:      make(map[string]answerkey.AnswerKey),
	}
}

func (s *Service) registerKey(name string, key answerkey.AnswerKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[name] = key
}

func (s *Service) lookupKey(name string) (answerkey.AnswerKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.keys[name]
	return k, ok
}

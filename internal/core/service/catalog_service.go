package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

// CatalogService wraps the subject/question reads of the upstream API. The
// subject catalog is global data, so one process-wide cache is safe: fetches
// replace it wholesale, and the course/exam views are pure filters over it.
type CatalogService struct {
	api      ports.CatalogAPI
	notifier ports.Notifier
	logger   zerolog.Logger
	pending  pendingFlag

	mu       sync.RWMutex
	subjects []domain.Subject
	loaded   bool
}

func NewCatalogService(api ports.CatalogAPI, notifier ports.Notifier, logger zerolog.Logger) *CatalogService {
	return &CatalogService{api: api, notifier: notifier, logger: logger}
}

// Pending reports whether a catalog call is currently in flight.
func (s *CatalogService) Pending() bool { return s.pending.Pending() }

func (s *CatalogService) FetchAllSubjects(ctx context.Context, clientID, accessToken string) ([]domain.Subject, error) {
	defer s.pending.begin()()

	subjects, err := s.api.Subjects(ctx, accessToken)
	if err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return nil, err
	}

	s.mu.Lock()
	s.subjects = subjects
	s.loaded = true
	s.mu.Unlock()
	return subjects, nil
}

// FetchSubjectsByType serves the filtered view from the cached catalog once
// a full fetch has loaded it; before that it falls back to the upstream
// getByType endpoint so a cold cache never shows an empty catalog.
func (s *CatalogService) FetchSubjectsByType(ctx context.Context, clientID, accessToken string, t domain.SubjectType) ([]domain.Subject, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if loaded {
		if t == domain.SubjectCourse {
			return s.CourseSubjects(), nil
		}
		return s.ExamSubjects(), nil
	}

	defer s.pending.begin()()

	subjects, err := s.api.SubjectsByType(ctx, accessToken, t)
	if err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return nil, err
	}
	return subjects, nil
}

func (s *CatalogService) FetchQuestions(ctx context.Context, clientID, accessToken, subjectID string) ([]domain.Question, error) {
	defer s.pending.begin()()

	questions, err := s.api.Questions(ctx, accessToken, subjectID)
	if err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return nil, err
	}
	return questions, nil
}

// CourseSubjects filters the cached catalog down to course material.
func (s *CatalogService) CourseSubjects() []domain.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FilterSubjects(s.subjects, domain.SubjectCourse)
}

// ExamSubjects filters the cached catalog down to exam papers.
func (s *CatalogService) ExamSubjects() []domain.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FilterSubjects(s.subjects, domain.SubjectExam)
}

// CreateSubject publishes new material. Admin only; RBAC is enforced at the
// transport layer.
func (s *CatalogService) CreateSubject(ctx context.Context, clientID, accessToken string, input ports.CreateSubjectInput) (*domain.Subject, error) {
	defer s.pending.begin()()

	subject, err := s.api.CreateSubject(ctx, accessToken, input)
	if err != nil {
		s.notifier.Error(clientID, userMessage(err, msgGenericError))
		return nil, err
	}

	s.logger.Info().Str("subject_id", subject.ID).Str("type", string(subject.Type)).Msg("subject created")
	s.notifier.Success(clientID, "Sujet créé avec succès !")
	return subject, nil
}

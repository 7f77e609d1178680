// internal/services/notification_service.go
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketplace/internal/i18n"
)

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a toast shown to the session user.
type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Key       string            `json:"key"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

// NotificationService keeps the most recent toasts, newest last.
type NotificationService struct {
	mu       sync.RWMutex
	lang     string
	capacity int
	recent   []Notification
}

func NewNotificationService(lang string, capacity int) *NotificationService {
	if capacity <= 0 {
		capacity = 50
	}
	return &NotificationService{lang: lang, capacity: capacity}
}

func (s *NotificationService) Success(key string, args ...interface{}) {
	s.push(NotificationSuccess, key, args)
}

func (s *NotificationService) Error(key string, args ...interface{}) {
	s.push(NotificationError, key, args)
}

func (s *NotificationService) push(level NotificationLevel, key string, args []interface{}) {
	n := Notification{
		ID:        uuid.New().String(),
		Level:     level,
		Key:       key,
		Message:   i18n.T(s.lang, key, args...),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.recent = append(s.recent, n)
	if over := len(s.recent) - s.capacity; over > 0 {
		s.recent = append(s.recent[:0], s.recent[over:]...)
	}
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"level": level,
		"key":   key,
	}).Info(n.Message)
}

// Recent returns up to limit toasts, newest first. A limit of zero or below
// returns all of them.
func (s *NotificationService) Recent(limit int) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.recent)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Notification, 0, n)
	for i := len(s.recent) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.recent[i])
	}
	return out
}

func (s *NotificationService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prestigesms/sms-console/internal/console/domain"
	"github.com/prestigesms/sms-console/internal/console/registry"
)

// ContactView is a contact annotated with the line the console would send
// from when messaging it.
type ContactView struct {
	domain.Contact
	RecommendedLine       string `json:"recommended_line"`
	RecommendedLineNumber string `json:"recommended_line_number"`
}

// DirectoryService covers the contact directory, message history, and audit
// log reads used by the console surface.
type DirectoryService struct {
	registry *registry.Registry
	contacts domain.ContactRepository
	messages domain.MessageRepository
	audit    domain.ActionLogRepository
	logger   *slog.Logger
}

func NewDirectoryService(
	reg *registry.Registry,
	contacts domain.ContactRepository,
	messages domain.MessageRepository,
	audit domain.ActionLogRepository,
	logger *slog.Logger,
) *DirectoryService {
	return &DirectoryService{
		registry: reg,
		contacts: contacts,
		messages: messages,
		audit:    audit,
		logger:   logger.With("service", "directory"),
	}
}

// SaveContact upserts a contact with an explicit name. An empty name defaults
// to the phone number. Format validation happens at the transport layer; this
// always bumps lastActive.
func (s *DirectoryService) SaveContact(ctx context.Context, phone, name string) (*domain.Contact, error) {
	displayName := name
	if displayName == "" {
		displayName = phone
	}
	contact, err := s.contacts.Save(ctx, phone, displayName, time.Now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save contact", "error", err, "phone", phone)
		s.logAction(ctx, domain.ActionSaveContact, fmt.Sprintf("Error saving contact: %v", err), domain.LogStatusError)
		return nil, err
	}

	loggedName := name
	if loggedName == "" {
		loggedName = "No name"
	}
	s.logAction(ctx, domain.ActionSaveContact, fmt.Sprintf("Saved/Updated contact: %s (%s)", phone, loggedName), domain.LogStatusSuccess)
	return contact, nil
}

// DeleteContact removes a contact and cascades deletion of every message where
// it appears as sender or recipient. Returns domain.ErrContactNotFound when
// the contact does not exist; no messages are touched in that case.
func (s *DirectoryService) DeleteContact(ctx context.Context, phone string) error {
	if err := s.contacts.Delete(ctx, phone); err != nil {
		if !errors.Is(err, domain.ErrContactNotFound) {
			s.logger.ErrorContext(ctx, "Failed to delete contact", "error", err, "phone", phone)
			s.logAction(ctx, domain.ActionDeleteContact, fmt.Sprintf("Error deleting contact: %v", err), domain.LogStatusError)
		}
		return err
	}

	if _, err := s.messages.DeleteByPhone(ctx, phone); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete contact messages", "error", err, "phone", phone)
		s.logAction(ctx, domain.ActionDeleteContact, fmt.Sprintf("Error deleting contact: %v", err), domain.LogStatusError)
		return err
	}

	s.logAction(ctx, domain.ActionDeleteContact,
		fmt.Sprintf("Deleted contact: %s and all associated messages", phone), domain.LogStatusSuccess)
	return nil
}

// ListContacts returns the most recently active contacts, each annotated with
// its recommended sending line.
func (s *DirectoryService) ListContacts(ctx context.Context, limit int) ([]*ContactView, error) {
	contacts, err := s.contacts.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]*ContactView, 0, len(contacts))
	for _, c := range contacts {
		line := s.registry.RecommendedLine(c.Phone)
		views = append(views, &ContactView{
			Contact:               *c,
			RecommendedLine:       line.Name,
			RecommendedLineNumber: line.Number,
		})
	}
	return views, nil
}

// Messages returns the full conversation with a phone number in chronological order.
func (s *DirectoryService) Messages(ctx context.Context, phone string) ([]*domain.Message, error) {
	return s.messages.ListByPhone(ctx, phone)
}

// Logs returns the most recent audit entries, newest first.
func (s *DirectoryService) Logs(ctx context.Context, limit int) ([]*domain.ActionLogEntry, error) {
	return s.audit.List(ctx, limit)
}

// Lines returns the configured business lines.
func (s *DirectoryService) Lines() []domain.BusinessLine {
	return s.registry.Lines()
}

// RecordAction appends an audit entry on behalf of the transport layer
// (login/logout outcomes).
func (s *DirectoryService) RecordAction(ctx context.Context, action, details string, status domain.LogStatus) {
	s.logAction(ctx, action, details, status)
}

func (s *DirectoryService) logAction(ctx context.Context, action, details string, status domain.LogStatus) {
	if err := s.audit.Append(ctx, action, details, status); err != nil {
		s.logger.ErrorContext(ctx, "Failed to append action log entry", "error", err, "action", action)
	}
}

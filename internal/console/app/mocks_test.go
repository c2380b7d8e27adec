package app_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/prestigesms/sms-console/internal/console/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Touch(ctx context.Context, phone string, at time.Time) (*domain.Contact, error) {
	args := m.Called(ctx, phone, at)
	contact, _ := args.Get(0).(*domain.Contact)
	return contact, args.Error(1)
}

func (m *MockContactRepository) Save(ctx context.Context, phone, name string, at time.Time) (*domain.Contact, error) {
	args := m.Called(ctx, phone, name, at)
	contact, _ := args.Get(0).(*domain.Contact)
	return contact, args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *MockContactRepository) List(ctx context.Context, limit int) ([]*domain.Contact, error) {
	args := m.Called(ctx, limit)
	contacts, _ := args.Get(0).([]*domain.Contact)
	return contacts, args.Error(1)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByPhone(ctx context.Context, phone string) ([]*domain.Message, error) {
	args := m.Called(ctx, phone)
	messages, _ := args.Get(0).([]*domain.Message)
	return messages, args.Error(1)
}

func (m *MockMessageRepository) UpdateStatusByProviderID(ctx context.Context, providerMessageID string, status domain.MessageStatus, at time.Time) (bool, error) {
	args := m.Called(ctx, providerMessageID, status, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) DeleteByPhone(ctx context.Context, phone string) (int64, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(int64), args.Error(1)
}

type MockActionLogRepository struct {
	mock.Mock
}

func (m *MockActionLogRepository) Append(ctx context.Context, action, details string, status domain.LogStatus) error {
	args := m.Called(ctx, action, details, status)
	return args.Error(0)
}

func (m *MockActionLogRepository) List(ctx context.Context, limit int) ([]*domain.ActionLogEntry, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]*domain.ActionLogEntry)
	return entries, args.Error(1)
}

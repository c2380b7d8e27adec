package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/prestigesms/sms-console/internal/console/app"
	"github.com/prestigesms/sms-console/internal/console/domain"
	consolehttp "github.com/prestigesms/sms-console/internal/console/transport/http"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockSendPipeline struct {
	mock.Mock
}

func (m *MockSendPipeline) Send(ctx context.Context, from, to, text string) *domain.SendError {
	args := m.Called(ctx, from, to, text)
	sendErr, _ := args.Get(0).(*domain.SendError)
	return sendErr
}

type MockWebhookProcessor struct {
	mock.Mock
}

func (m *MockWebhookProcessor) Process(ctx context.Context, raw []byte) error {
	args := m.Called(ctx, raw)
	return args.Error(0)
}

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) SaveContact(ctx context.Context, phone, name string) (*domain.Contact, error) {
	args := m.Called(ctx, phone, name)
	contact, _ := args.Get(0).(*domain.Contact)
	return contact, args.Error(1)
}

func (m *MockDirectory) DeleteContact(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *MockDirectory) ListContacts(ctx context.Context, limit int) ([]*app.ContactView, error) {
	args := m.Called(ctx, limit)
	views, _ := args.Get(0).([]*app.ContactView)
	return views, args.Error(1)
}

func (m *MockDirectory) Messages(ctx context.Context, phone string) ([]*domain.Message, error) {
	args := m.Called(ctx, phone)
	messages, _ := args.Get(0).([]*domain.Message)
	return messages, args.Error(1)
}

func (m *MockDirectory) Logs(ctx context.Context, limit int) ([]*domain.ActionLogEntry, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]*domain.ActionLogEntry)
	return entries, args.Error(1)
}

func (m *MockDirectory) Lines() []domain.BusinessLine {
	args := m.Called()
	lines, _ := args.Get(0).([]domain.BusinessLine)
	return lines
}

func (m *MockDirectory) RecordAction(ctx context.Context, action, details string, status domain.LogStatus) {
	m.Called(ctx, action, details, status)
}

type routerFixture struct {
	sender    *MockSendPipeline
	processor *MockWebhookProcessor
	directory *MockDirectory
	sessions  *consolehttp.SessionManager
	handler   http.Handler
}

func newRouterFixture() *routerFixture {
	f := &routerFixture{
		sender:    new(MockSendPipeline),
		processor: new(MockWebhookProcessor),
		directory: new(MockDirectory),
		sessions:  consolehttp.NewSessionManager("test-secret", time.Hour),
	}
	f.handler = consolehttp.NewRouter(consolehttp.RouterConfig{
		Sender:    f.sender,
		Processor: f.processor,
		Directory: f.directory,
		Sessions:  f.sessions,
		PIN:       "1234",
		Logger:    testLogger(),
	})
	return f
}

// authCookie mints a valid session cookie directly through the SessionManager.
func (f *routerFixture) authCookie() *http.Cookie {
	rec := httptest.NewRecorder()
	if err := f.sessions.Issue(rec, time.Now().UTC()); err != nil {
		panic(err)
	}
	return rec.Result().Cookies()[0]
}

package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"autohaus-crm/internal/domain/task"
	"autohaus-crm/internal/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, t *task.Task) (*task.Task, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context, assignedTo *int64) ([]*task.Task, error) {
	args := m.Called(ctx, assignedTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) ListTasksForCustomer(ctx context.Context, customerID int64) ([]*task.Task, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTaskStatus(ctx context.Context, taskID int64, status string) error {
	return m.Called(ctx, taskID, status).Error(0)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, taskID int64) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *MockTaskService) ListOpenTasksDueOn(ctx context.Context, date string) ([]*task.Task, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerCreatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, evt event.CustomerUpdatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishImportCompleted(ctx context.Context, evt event.ImportCompletedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishTaskDue(ctx context.Context, evt event.TaskDueEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTaskReminderJobPublishesDueTasks(t *testing.T) {
	tasks := new(MockTaskService)
	pub := new(MockEventPublisher)
	job := NewTaskReminderJob(tasks, pub, testLogger())
	job.now = fixedClock(time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC))

	due := []*task.Task{
		{ID: 1, CustomerID: 10, CustomerName: "Max Mustermann", AssignedTo: 3, DatumKontakt: "2025-03-14", Status: task.StatusOffen},
		{ID: 2, CustomerID: 11, CustomerName: "Erika Beispiel", AssignedTo: 4, DatumKontakt: "2025-03-14", Status: task.StatusOffen},
	}
	tasks.On("ListOpenTasksDueOn", mock.Anything, "2025-03-14").Return(due, nil).Once()
	pub.On("PublishTaskDue", mock.Anything, mock.MatchedBy(func(evt event.TaskDueEvent) bool {
		return evt.Payload.TaskID == 1 && evt.Payload.AssignedTo == 3
	})).Return(nil).Once()
	pub.On("PublishTaskDue", mock.Anything, mock.MatchedBy(func(evt event.TaskDueEvent) bool {
		return evt.Payload.TaskID == 2 && evt.Payload.AssignedTo == 4
	})).Return(nil).Once()

	err := job.Run(context.Background())

	assert.NoError(t, err)
	tasks.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestTaskReminderJobNoDueTasks(t *testing.T) {
	tasks := new(MockTaskService)
	pub := new(MockEventPublisher)
	job := NewTaskReminderJob(tasks, pub, testLogger())

	tasks.On("ListOpenTasksDueOn", mock.Anything, mock.AnythingOfType("string")).Return([]*task.Task{}, nil).Once()

	err := job.Run(context.Background())

	assert.NoError(t, err)
	pub.AssertNotCalled(t, "PublishTaskDue", mock.Anything, mock.Anything)
}

func TestTaskReminderJobListFailureAborts(t *testing.T) {
	tasks := new(MockTaskService)
	job := NewTaskReminderJob(tasks, nil, testLogger())

	tasks.On("ListOpenTasksDueOn", mock.Anything, mock.AnythingOfType("string")).
		Return(nil, errors.New("db down")).Once()

	err := job.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list open tasks")
}

func TestTaskReminderJobPublishFailureDoesNotAbort(t *testing.T) {
	tasks := new(MockTaskService)
	pub := new(MockEventPublisher)
	job := NewTaskReminderJob(tasks, pub, testLogger())
	job.now = fixedClock(time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC))

	due := []*task.Task{
		{ID: 1, CustomerName: "Max Mustermann", AssignedTo: 3, DatumKontakt: "2025-03-14"},
		{ID: 2, CustomerName: "Erika Beispiel", AssignedTo: 4, DatumKontakt: "2025-03-14"},
	}
	tasks.On("ListOpenTasksDueOn", mock.Anything, "2025-03-14").Return(due, nil).Once()
	pub.On("PublishTaskDue", mock.Anything, mock.Anything).Return(errors.New("broker gone")).Twice()

	err := job.Run(context.Background())

	assert.NoError(t, err)
	pub.AssertExpectations(t)
}

// Package service defines the backend-agnostic interface for list and task operations.
package service

import "context"

// Service defines the interface for to-do backend operations.
// Every REST call goes through this interface; commands never build
// requests themselves.
//
// Operations return (value, error). Errors are *errors.StructuredError
// values whose code tells a transport failure apart from a response that
// carried no data or a server-side rejection.
type Service interface {
	// CreateList creates a list. An unset order is sent as 0.
	CreateList(ctx context.Context, list TaskList) (*TaskList, error)

	// Lists returns all lists in server order.
	Lists(ctx context.Context) ([]TaskList, error)

	// GetList returns a single list by ID.
	GetList(ctx context.Context, listID string) (*TaskList, error)

	// UpdateList replaces a list's name and order.
	UpdateList(ctx context.Context, list TaskList) (*TaskList, error)

	// UpdateListOrder changes only a list's order.
	UpdateListOrder(ctx context.Context, listID string, order int) (*TaskList, error)

	// UpdateAllListOrders sends one order update per list concurrently.
	// The report lists every failure; the error is non-nil if any failed.
	UpdateAllListOrders(ctx context.Context, lists []TaskList) (BatchReport, error)

	// TasksOfList returns the tasks belonging to a list.
	TasksOfList(ctx context.Context, listID string) ([]Task, error)

	// DeleteList deletes a list and reports the server's success flag.
	DeleteList(ctx context.Context, listID string) (bool, error)

	// CreateTask creates a task. Attachments and checklist are always sent empty.
	CreateTask(ctx context.Context, task Task) (*Task, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, taskID string) (*Task, error)

	// UpdateTask replaces a task.
	UpdateTask(ctx context.Context, task Task) (*Task, error)

	// UpdateTaskOrder changes only a task's order.
	UpdateTaskOrder(ctx context.Context, taskID string, order int) (*Task, error)

	// DeleteTask deletes a task and reports the server's success flag.
	DeleteTask(ctx context.Context, taskID string) (bool, error)
}

// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	apierr "todoctl/internal/errors"
	"todoctl/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	lists  []service.TaskList
	tasks  []service.Task
	nextID int
	calls  []string

	// Error injection for testing
	ListsErr           error
	GetListErr         error
	CreateListErr      error
	UpdateListErr      error
	UpdateListOrderErr error
	TasksOfListErr     map[string]error // listID -> error
	DeleteListErr      error
	CreateTaskErr      error
	GetTaskErr         error
	UpdateTaskErr      error
	UpdateTaskOrderErr error
	DeleteTaskErr      error

	// BatchFailures makes UpdateAllListOrders fail for these list IDs
	// with the given message.
	BatchFailures map[string]string

	// RefuseDeletes makes deletes report successful=false.
	RefuseDeletes bool
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		TasksOfListErr: make(map[string]error),
		BatchFailures:  make(map[string]string),
	}
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, name string, order int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Name: name, Order: order})
}

// AddTask adds an open task to a list.
func (f *FakeService) AddTask(listID, taskID, title string, order int) {
	f.addTask(service.Task{ID: taskID, Title: title, ListID: listID, Order: order})
}

// AddDoneTask adds a completed task to a list.
func (f *FakeService) AddDoneTask(listID, taskID, title string, order int) {
	f.addTask(service.Task{ID: taskID, Title: title, ListID: listID, Order: order, Done: true})
}

func (f *FakeService) addTask(t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.CreatedAt = "2024-01-01T00:00:00Z"
	f.tasks = append(f.tasks, t)
}

// Task returns the stored task with the given ID.
func (f *FakeService) Task(id string) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// List returns the stored list with the given ID.
func (f *FakeService) List(id string) (service.TaskList, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.ID == id {
			return l, true
		}
	}
	return service.TaskList{}, false
}

// Calls returns the names of the operations invoked so far.
func (f *FakeService) Calls() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeService) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *FakeService) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func notFound(kind, id string) error {
	return apierr.NewWithContext(apierr.ErrCodeNotFound, kind+" not found", map[string]any{"id": id})
}

func (f *FakeService) listIndex(id string) int {
	for i, l := range f.lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeService) taskIndex(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// CreateList implements service.Service.
func (f *FakeService) CreateList(ctx context.Context, list service.TaskList) (*service.TaskList, error) {
	f.record("CreateList")
	if f.CreateListErr != nil {
		return nil, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	list.ID = f.newID("list")
	f.lists = append(f.lists, list)
	return &list, nil
}

// Lists implements service.Service.
func (f *FakeService) Lists(ctx context.Context) ([]service.TaskList, error) {
	f.record("Lists")
	if f.ListsErr != nil {
		return nil, f.ListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// GetList implements service.Service.
func (f *FakeService) GetList(ctx context.Context, listID string) (*service.TaskList, error) {
	f.record("GetList")
	if f.GetListErr != nil {
		return nil, f.GetListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	i := f.listIndex(listID)
	if i < 0 {
		return nil, notFound("list", listID)
	}
	l := f.lists[i]
	return &l, nil
}

// UpdateList implements service.Service.
func (f *FakeService) UpdateList(ctx context.Context, list service.TaskList) (*service.TaskList, error) {
	f.record("UpdateList")
	if f.UpdateListErr != nil {
		return nil, f.UpdateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.listIndex(list.ID)
	if i < 0 {
		return nil, notFound("list", list.ID)
	}
	f.lists[i] = list
	return &list, nil
}

// UpdateListOrder implements service.Service.
func (f *FakeService) UpdateListOrder(ctx context.Context, listID string, order int) (*service.TaskList, error) {
	f.record("UpdateListOrder")
	if f.UpdateListOrderErr != nil {
		return nil, f.UpdateListOrderErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.listIndex(listID)
	if i < 0 {
		return nil, notFound("list", listID)
	}
	f.lists[i].Order = order
	l := f.lists[i]
	return &l, nil
}

// UpdateAllListOrders implements service.Service.
func (f *FakeService) UpdateAllListOrders(ctx context.Context, lists []service.TaskList) (service.BatchReport, error) {
	f.record("UpdateAllListOrders")
	f.mu.Lock()
	defer f.mu.Unlock()

	var report service.BatchReport
	for _, l := range lists {
		if msg, ok := f.BatchFailures[l.ID]; ok {
			report.Failed = append(report.Failed, service.OrderFailure{ListID: l.ID, Message: msg})
			continue
		}
		i := f.listIndex(l.ID)
		if i < 0 {
			report.Failed = append(report.Failed, service.OrderFailure{ListID: l.ID, Message: "list not found"})
			continue
		}
		f.lists[i].Order = l.Order
		report.Updated = append(report.Updated, f.lists[i])
	}
	if !report.OK() {
		first := report.Failed[0]
		return report, apierr.NewWithContext(apierr.ErrCodeRejected, "list "+first.ListID+": "+first.Message,
			map[string]any{"failed_ids": report.FailedIDs()})
	}
	return report, nil
}

// TasksOfList implements service.Service.
func (f *FakeService) TasksOfList(ctx context.Context, listID string) ([]service.Task, error) {
	f.record("TasksOfList")
	if err, ok := f.TasksOfListErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.listIndex(listID) < 0 {
		return nil, notFound("list", listID)
	}
	var tasks []service.Task
	for _, t := range f.tasks {
		if t.ListID == listID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// DeleteList implements service.Service.
func (f *FakeService) DeleteList(ctx context.Context, listID string) (bool, error) {
	f.record("DeleteList")
	if f.DeleteListErr != nil {
		return false, f.DeleteListErr
	}
	if f.RefuseDeletes {
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.listIndex(listID)
	if i < 0 {
		return false, nil
	}
	f.lists = append(f.lists[:i], f.lists[i+1:]...)
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ListID != listID {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return true, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.Task) (*service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return nil, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listIndex(task.ListID) < 0 {
		return nil, notFound("list", task.ListID)
	}
	task.ID = f.newID("task")
	task.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	task.Checklist = nil
	f.tasks = append(f.tasks, task)
	return &task, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, taskID string) (*service.Task, error) {
	f.record("GetTask")
	if f.GetTaskErr != nil {
		return nil, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	i := f.taskIndex(taskID)
	if i < 0 {
		return nil, notFound("task", taskID)
	}
	t := f.tasks[i]
	return &t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, task service.Task) (*service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return nil, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(task.ID)
	if i < 0 {
		return nil, notFound("task", task.ID)
	}
	task.CreatedAt = f.tasks[i].CreatedAt
	f.tasks[i] = task
	return &task, nil
}

// UpdateTaskOrder implements service.Service.
func (f *FakeService) UpdateTaskOrder(ctx context.Context, taskID string, order int) (*service.Task, error) {
	f.record("UpdateTaskOrder")
	if f.UpdateTaskOrderErr != nil {
		return nil, f.UpdateTaskOrderErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(taskID)
	if i < 0 {
		return nil, notFound("task", taskID)
	}
	f.tasks[i].Order = order
	t := f.tasks[i]
	return &t, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return false, f.DeleteTaskErr
	}
	if f.RefuseDeletes {
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.taskIndex(taskID)
	if i < 0 {
		return false, nil
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return true, nil
}

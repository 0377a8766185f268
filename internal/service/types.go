// Package service defines the backend-agnostic interface for list and task operations.
package service

import "sort"

// TaskList is a named, ordered container of tasks.
type TaskList struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required"`
	Order int    `json:"order" validate:"gte=0"`
}

// Task is a unit of work belonging to exactly one list.
// Field names follow the camelCase form produced by casing.SnakeToCamel.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required"`
	Done        bool     `json:"done"`
	ListID      string   `json:"listId" validate:"required"`
	Description *string  `json:"description,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	Checklist   []string `json:"checklist,omitempty"`
	Owner       *string  `json:"owner,omitempty"`
	DueDate     *string  `json:"dueDate"`
	Order       int      `json:"order" validate:"gte=0"`
}

// OrderFailure records one list whose order update was not accepted.
type OrderFailure struct {
	ListID  string
	Message string
}

// BatchReport is the outcome of a batch list order update.
type BatchReport struct {
	Updated []TaskList
	Failed  []OrderFailure
}

// OK reports whether every list in the batch was updated.
func (r BatchReport) OK() bool {
	return len(r.Failed) == 0
}

// FailedIDs returns the ids of the lists that failed, in report order.
func (r BatchReport) FailedIDs() []string {
	ids := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		ids[i] = f.ListID
	}
	return ids
}

// SortLists sorts lists by order, keeping server order for ties.
func SortLists(lists []TaskList) {
	sort.SliceStable(lists, func(i, j int) bool {
		return lists[i].Order < lists[j].Order
	})
}

// SortTasks sorts tasks by order, keeping server order for ties.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Order < tasks[j].Order
	})
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

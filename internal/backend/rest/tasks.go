package rest

import (
	"context"
	"net/http"

	"todoctl/internal/service"
)

// taskBody is the wire shape of create and update. Attachments and
// checklist are not editable from this client and always go out as null.
type taskBody struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Done        bool     `json:"done"`
	ListID      string   `json:"list_id"`
	Description *string  `json:"description,omitempty"`
	Owner       *string  `json:"owner,omitempty"`
	DueDate     *string  `json:"due_date"`
	Attachments any      `json:"attachments"`
	Checklist   []string `json:"checklist"`
	Order       int      `json:"order"`
}

func newTaskBody(t service.Task) taskBody {
	return taskBody{
		Title:       t.Title,
		Done:        t.Done,
		ListID:      t.ListID,
		Description: t.Description,
		Owner:       t.Owner,
		DueDate:     t.DueDate,
		Order:       t.Order,
	}
}

// CreateTask posts a new task.
func (c *Client) CreateTask(ctx context.Context, task service.Task) (*service.Task, error) {
	const op = "create task"
	if err := c.check(op, task); err != nil {
		return nil, err
	}

	r, err := c.do(ctx, op, http.MethodPost, "/task", newTaskBody(task))
	if err != nil {
		return nil, err
	}
	var created service.Task
	if err := c.decodeData(r, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetTask returns one task.
func (c *Client) GetTask(ctx context.Context, taskID string) (*service.Task, error) {
	const op = "get task"
	if err := requireID(op, taskID); err != nil {
		return nil, err
	}
	r, err := c.do(ctx, op, http.MethodGet, taskPath(taskID), nil)
	if err != nil {
		return nil, err
	}
	var task service.Task
	if err := c.decodeData(r, &task, false); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask replaces a task. The id is sent in both path and body.
// A response without data is reported as NO_DATA.
func (c *Client) UpdateTask(ctx context.Context, task service.Task) (*service.Task, error) {
	const op = "update task"
	if err := requireID(op, task.ID); err != nil {
		return nil, err
	}
	if err := c.check(op, task); err != nil {
		return nil, err
	}

	body := newTaskBody(task)
	body.ID = task.ID
	r, err := c.do(ctx, op, http.MethodPut, taskPath(task.ID), body)
	if err != nil {
		return nil, err
	}
	var updated service.Task
	if err := c.decodeData(r, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateTaskOrder sends only the order of a task.
func (c *Client) UpdateTaskOrder(ctx context.Context, taskID string, order int) (*service.Task, error) {
	const op = "update task order"
	if err := requireID(op, taskID); err != nil {
		return nil, err
	}
	if err := requireOrder(op, order); err != nil {
		return nil, err
	}

	r, err := c.do(ctx, op, http.MethodPut, taskPath(taskID), orderBody{Order: order})
	if err != nil {
		return nil, err
	}
	var updated service.Task
	if err := c.decodeData(r, &updated, false); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask deletes a task and returns the server's successful flag.
func (c *Client) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	const op = "delete task"
	if err := requireID(op, taskID); err != nil {
		return false, err
	}
	r, err := c.do(ctx, op, http.MethodDelete, taskPath(taskID), nil)
	if err != nil {
		return false, err
	}
	return c.successFlag(r), nil
}

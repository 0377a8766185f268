package rest

import (
	"context"
	"net/http"

	"todoctl/internal/service"
)

type listBody struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type orderBody struct {
	Order int `json:"order"`
}

// CreateList posts a new list. An unset order is sent as 0.
func (c *Client) CreateList(ctx context.Context, list service.TaskList) (*service.TaskList, error) {
	const op = "create list"
	if err := c.check(op, list); err != nil {
		return nil, err
	}

	r, err := c.do(ctx, op, http.MethodPost, "/lists", listBody{Name: list.Name, Order: list.Order})
	if err != nil {
		return nil, err
	}
	var created service.TaskList
	if err := c.decodeData(r, &created, false); err != nil {
		return nil, err
	}
	return &created, nil
}

// Lists returns every list in the order the server sent them.
func (c *Client) Lists(ctx context.Context) ([]service.TaskList, error) {
	const op = "get lists"
	r, err := c.do(ctx, op, http.MethodGet, "/lists", nil)
	if err != nil {
		return nil, err
	}
	var lists []service.TaskList
	if err := c.decodeData(r, &lists, false); err != nil {
		return nil, err
	}
	return lists, nil
}

// GetList returns one list.
func (c *Client) GetList(ctx context.Context, listID string) (*service.TaskList, error) {
	const op = "get list"
	if err := requireID(op, listID); err != nil {
		return nil, err
	}
	r, err := c.do(ctx, op, http.MethodGet, listPath(listID), nil)
	if err != nil {
		return nil, err
	}
	var list service.TaskList
	if err := c.decodeData(r, &list, false); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateList replaces name and order of an existing list.
func (c *Client) UpdateList(ctx context.Context, list service.TaskList) (*service.TaskList, error) {
	const op = "update list"
	if err := requireID(op, list.ID); err != nil {
		return nil, err
	}
	if err := c.check(op, list); err != nil {
		return nil, err
	}

	r, err := c.do(ctx, op, http.MethodPut, listPath(list.ID), listBody{Name: list.Name, Order: list.Order})
	if err != nil {
		return nil, err
	}
	var updated service.TaskList
	if err := c.decodeData(r, &updated, false); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateListOrder sends only the order of a list.
func (c *Client) UpdateListOrder(ctx context.Context, listID string, order int) (*service.TaskList, error) {
	const op = "update list order"
	if err := requireID(op, listID); err != nil {
		return nil, err
	}
	if err := requireOrder(op, order); err != nil {
		return nil, err
	}

	r, err := c.do(ctx, op, http.MethodPut, listPath(listID), orderBody{Order: order})
	if err != nil {
		return nil, err
	}
	var updated service.TaskList
	if err := c.decodeData(r, &updated, false); err != nil {
		return nil, err
	}
	return &updated, nil
}

// TasksOfList returns the tasks of a list. Raw and converted payloads are
// logged at debug level.
func (c *Client) TasksOfList(ctx context.Context, listID string) ([]service.Task, error) {
	const op = "get tasks of list"
	if err := requireID(op, listID); err != nil {
		return nil, err
	}
	r, err := c.do(ctx, op, http.MethodGet, listPath(listID)+"/tasks", nil)
	if err != nil {
		return nil, err
	}
	var tasks []service.Task
	if err := c.decodeData(r, &tasks, true); err != nil {
		return nil, err
	}
	return tasks, nil
}

// DeleteList deletes a list and returns the server's successful flag.
func (c *Client) DeleteList(ctx context.Context, listID string) (bool, error) {
	const op = "delete list"
	if err := requireID(op, listID); err != nil {
		return false, err
	}
	r, err := c.do(ctx, op, http.MethodDelete, listPath(listID), nil)
	if err != nil {
		return false, err
	}
	return c.successFlag(r), nil
}

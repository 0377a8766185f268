package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RecordedRequest is one request seen by a FakeBackend.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type wireList struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type wireTask struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Done        bool     `json:"done"`
	ListID      string   `json:"list_id"`
	Description *string  `json:"description"`
	Owner       *string  `json:"owner"`
	DueDate     *string  `json:"due_date"`
	CreatedAt   string   `json:"created_at"`
	Checklist   []string `json:"checklist"`
	Attachments any      `json:"attachments"`
	Order       int      `json:"order"`
}

// FakeBackend is an in-memory to-do REST backend served by echo.
// It answers with the same snake_case {successful, data, error} envelopes
// as the real backend.
type FakeBackend struct {
	mu       sync.Mutex
	lists    []wireList
	tasks    []wireTask
	requests []RecordedRequest

	failOrder map[string]string

	dropTaskData bool

	echo *echo.Echo
}

// NewFakeBackend creates an empty backend.
func NewFakeBackend() *FakeBackend {
	fb := &FakeBackend{failOrder: make(map[string]string)}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(fb.record)

	e.POST("/lists", fb.createList)
	e.GET("/lists", fb.getLists)
	e.GET("/lists/:id", fb.getList)
	e.PUT("/lists/:id", fb.updateList)
	e.DELETE("/lists/:id", fb.deleteList)
	e.GET("/lists/:id/tasks", fb.tasksOfList)
	e.POST("/task", fb.createTask)
	e.GET("/task/:id", fb.getTask)
	e.PUT("/task/:id", fb.updateTask)
	e.DELETE("/task/:id", fb.deleteTask)

	fb.echo = e
	return fb
}

// Start serves the backend on a local test server closed at test cleanup.
func (fb *FakeBackend) Start(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(fb.echo)
	t.Cleanup(srv.Close)
	return srv
}

// ServeHTTP implements http.Handler.
func (fb *FakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fb.echo.ServeHTTP(w, r)
}

// SeedList stores a list and returns its id.
func (fb *FakeBackend) SeedList(name string, order int) string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := uuid.NewString()
	fb.lists = append(fb.lists, wireList{ID: id, Name: name, Order: order})
	return id
}

// SeedTask stores a task in a list and returns its id.
func (fb *FakeBackend) SeedTask(listID, title string, order int, done bool) string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := uuid.NewString()
	fb.tasks = append(fb.tasks, wireTask{
		ID:        id,
		Title:     title,
		Done:      done,
		ListID:    listID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Order:     order,
	})
	return id
}

// FailListOrder makes every PUT to the list answer {successful:false}
// with msg as error. An empty msg leaves the error field out.
func (fb *FakeBackend) FailListOrder(listID, msg string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failOrder[listID] = msg
}

// DropTaskData makes task updates answer {successful:true} without data.
func (fb *FakeBackend) DropTaskData() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.dropTaskData = true
}

// Requests returns the requests seen so far.
func (fb *FakeBackend) Requests() []RecordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]RecordedRequest, len(fb.requests))
	copy(out, fb.requests)
	return out
}

// ListOrder returns the stored order of a list, or -1 if it is unknown.
func (fb *FakeBackend) ListOrder(listID string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if i := fb.listIndex(listID); i >= 0 {
		return fb.lists[i].Order
	}
	return -1
}

// TaskCount returns how many tasks are stored.
func (fb *FakeBackend) TaskCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.tasks)
}

func (fb *FakeBackend) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}
		fb.mu.Lock()
		fb.requests = append(fb.requests, RecordedRequest{
			Method: req.Method,
			Path:   req.URL.Path,
			Header: req.Header.Clone(),
			Body:   body,
		})
		fb.mu.Unlock()
		return next(c)
	}
}

func reply(c echo.Context, status int, data any) error {
	return c.JSON(status, map[string]any{"successful": true, "data": data})
}

func replyError(c echo.Context, status int, msg string) error {
	body := map[string]any{"successful": false}
	if msg != "" {
		body["error"] = msg
	}
	return c.JSON(status, body)
}

func bindFields(c echo.Context) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (fb *FakeBackend) listIndex(id string) int {
	for i, l := range fb.lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (fb *FakeBackend) taskIndex(id string) int {
	for i, t := range fb.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (fb *FakeBackend) createList(c echo.Context) error {
	var in wireList
	if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil {
		return replyError(c, http.StatusBadRequest, "invalid body")
	}
	if in.Name == "" {
		return replyError(c, http.StatusBadRequest, "name is required")
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	in.ID = uuid.NewString()
	fb.lists = append(fb.lists, in)
	return reply(c, http.StatusCreated, in)
}

func (fb *FakeBackend) getLists(c echo.Context) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]wireList, len(fb.lists))
	copy(out, fb.lists)
	return reply(c, http.StatusOK, out)
}

func (fb *FakeBackend) getList(c echo.Context) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := fb.listIndex(c.Param("id"))
	if i < 0 {
		return replyError(c, http.StatusNotFound, "list not found")
	}
	return reply(c, http.StatusOK, fb.lists[i])
}

func (fb *FakeBackend) updateList(c echo.Context) error {
	id := c.Param("id")
	fields, err := bindFields(c)
	if err != nil {
		return replyError(c, http.StatusBadRequest, "invalid body")
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	if msg, ok := fb.failOrder[id]; ok {
		return replyError(c, http.StatusOK, msg)
	}
	i := fb.listIndex(id)
	if i < 0 {
		return replyError(c, http.StatusNotFound, "list not found")
	}

	l := fb.lists[i]
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &l.Name); err != nil || l.Name == "" {
			return replyError(c, http.StatusBadRequest, "name is required")
		}
	}
	if raw, ok := fields["order"]; ok {
		if err := json.Unmarshal(raw, &l.Order); err != nil {
			return replyError(c, http.StatusBadRequest, "invalid order")
		}
	}
	fb.lists[i] = l
	return reply(c, http.StatusOK, l)
}

func (fb *FakeBackend) deleteList(c echo.Context) error {
	id := c.Param("id")
	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := fb.listIndex(id)
	if i < 0 {
		return replyError(c, http.StatusNotFound, "list not found")
	}
	fb.lists = append(fb.lists[:i], fb.lists[i+1:]...)

	kept := fb.tasks[:0]
	for _, t := range fb.tasks {
		if t.ListID != id {
			kept = append(kept, t)
		}
	}
	fb.tasks = kept
	return c.JSON(http.StatusOK, map[string]any{"successful": true})
}

func (fb *FakeBackend) tasksOfList(c echo.Context) error {
	id := c.Param("id")
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.listIndex(id) < 0 {
		return replyError(c, http.StatusNotFound, "list not found")
	}
	out := []wireTask{}
	for _, t := range fb.tasks {
		if t.ListID == id {
			out = append(out, t)
		}
	}
	return reply(c, http.StatusOK, out)
}

func (fb *FakeBackend) createTask(c echo.Context) error {
	var in wireTask
	if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil {
		return replyError(c, http.StatusBadRequest, "invalid body")
	}
	if in.Title == "" {
		return replyError(c, http.StatusBadRequest, "title is required")
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.listIndex(in.ListID) < 0 {
		return replyError(c, http.StatusNotFound, "list not found")
	}
	in.ID = uuid.NewString()
	in.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	fb.tasks = append(fb.tasks, in)
	return reply(c, http.StatusCreated, in)
}

func (fb *FakeBackend) getTask(c echo.Context) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := fb.taskIndex(c.Param("id"))
	if i < 0 {
		return replyError(c, http.StatusNotFound, "task not found")
	}
	return reply(c, http.StatusOK, fb.tasks[i])
}

func (fb *FakeBackend) updateTask(c echo.Context) error {
	id := c.Param("id")
	fields, err := bindFields(c)
	if err != nil {
		return replyError(c, http.StatusBadRequest, "invalid body")
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := fb.taskIndex(id)
	if i < 0 {
		return replyError(c, http.StatusNotFound, "task not found")
	}

	t := fb.tasks[i]
	createdAt := t.CreatedAt
	if _, full := fields["title"]; full {
		raw, _ := json.Marshal(fields)
		t = wireTask{}
		if err := json.Unmarshal(raw, &t); err != nil {
			return replyError(c, http.StatusBadRequest, "invalid body")
		}
		t.ID = id
		t.CreatedAt = createdAt
	} else if raw, ok := fields["order"]; ok {
		if err := json.Unmarshal(raw, &t.Order); err != nil {
			return replyError(c, http.StatusBadRequest, "invalid order")
		}
	}
	fb.tasks[i] = t

	if fb.dropTaskData {
		return c.JSON(http.StatusOK, map[string]any{"successful": true})
	}
	return reply(c, http.StatusOK, t)
}

func (fb *FakeBackend) deleteTask(c echo.Context) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := fb.taskIndex(c.Param("id"))
	if i < 0 {
		return replyError(c, http.StatusNotFound, "task not found")
	}
	fb.tasks = append(fb.tasks[:i], fb.tasks[i+1:]...)
	return c.JSON(http.StatusOK, map[string]any{"successful": true})
}

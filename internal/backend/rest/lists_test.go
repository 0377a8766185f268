package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apierr "todoctl/internal/errors"
	"todoctl/internal/service"
)

func serviceList(id, name string, order int) service.TaskList {
	return service.TaskList{ID: id, Name: name, Order: order}
}

func TestCreateList_Groceries(t *testing.T) {
	client, c := newStubClient(t, http.StatusCreated, `{"data":{"name":"Groceries","order":0,"id":"abc"}}`)

	got, err := client.CreateList(context.Background(), service.TaskList{Name: "Groceries"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, c.method)
	assert.Equal(t, "/lists", c.path)
	assert.Equal(t, `{"name":"Groceries","order":0}`, c.body)
	assert.Equal(t, &service.TaskList{ID: "abc", Name: "Groceries", Order: 0}, got)
}

func TestCreateList_Validation(t *testing.T) {
	client, fb := newFakeClient(t)

	_, err := client.CreateList(context.Background(), service.TaskList{})
	assert.Equal(t, apierr.ErrCodeInvalidRequest, apierr.CodeOf(err))

	_, err = client.CreateList(context.Background(), service.TaskList{Name: "Work", Order: -1})
	assert.Equal(t, apierr.ErrCodeInvalidRequest, apierr.CodeOf(err))

	assert.Empty(t, fb.Requests())
}

func TestLists_RoundTrip(t *testing.T) {
	client, fb := newFakeClient(t)
	work := fb.SeedList("Work", 1)
	home := fb.SeedList("Home", 0)

	lists, err := client.Lists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, serviceList(work, "Work", 1), lists[0])
	assert.Equal(t, serviceList(home, "Home", 0), lists[1])

	one, err := client.GetList(context.Background(), home)
	require.NoError(t, err)
	assert.Equal(t, "Home", one.Name)
}

func TestGetList_NotFound(t *testing.T) {
	client, _ := newFakeClient(t)

	_, err := client.GetList(context.Background(), "missing")
	assert.Equal(t, apierr.ErrCodeNotFound, apierr.CodeOf(err))
	assert.Contains(t, err.Error(), "list not found")
}

func TestUpdateList(t *testing.T) {
	client, c := newStubClient(t, http.StatusOK, `{"data":{"id":"L1","name":"Errands","order":3}}`)

	got, err := client.UpdateList(context.Background(), serviceList("L1", "Errands", 3))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, c.method)
	assert.Equal(t, "/lists/L1", c.path)
	assert.Equal(t, `{"name":"Errands","order":3}`, c.body)
	assert.Equal(t, "Errands", got.Name)

	_, err = client.UpdateList(context.Background(), serviceList("", "Errands", 3))
	assert.Equal(t, apierr.ErrCodeInvalidRequest, apierr.CodeOf(err))
}

func TestUpdateListOrder(t *testing.T) {
	client, c := newStubClient(t, http.StatusOK, `{"data":{"id":"L 1","name":"Work","order":2}}`)

	got, err := client.UpdateListOrder(context.Background(), "L 1", 2)
	require.NoError(t, err)

	assert.Equal(t, "/lists/L 1", c.path)
	assert.Equal(t, `{"order":2}`, c.body)
	assert.Equal(t, 2, got.Order)

	_, err = client.UpdateListOrder(context.Background(), "L1", -1)
	assert.Equal(t, apierr.ErrCodeInvalidRequest, apierr.CodeOf(err))
}

func TestTasksOfList_LogsPayloads(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	client, fb := newFakeClient(t, WithLogger(zap.New(core)))
	list := fb.SeedList("Work", 0)
	taskID := fb.SeedTask(list, "Ship it", 0, false)

	tasks, err := client.TasksOfList(context.Background(), list)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, taskID, tasks[0].ID)
	assert.Equal(t, list, tasks[0].ListID)
	assert.NotEmpty(t, tasks[0].CreatedAt)
	assert.Nil(t, tasks[0].DueDate)

	assert.Equal(t, 1, logs.FilterMessage("original response data").Len())
	assert.Equal(t, 1, logs.FilterMessage("converted response data").Len())
}

func TestTasksOfList_Empty(t *testing.T) {
	client, fb := newFakeClient(t)
	list := fb.SeedList("Empty", 0)

	tasks, err := client.TasksOfList(context.Background(), list)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDeleteList(t *testing.T) {
	client, _ := newStubClient(t, http.StatusOK, `{"successful":true}`)

	ok, err := client.DeleteList(context.Background(), "L1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteList_ServerFalse(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	client, _ := newStubClient(t, http.StatusOK, `{"successful":false,"error":"list is locked"}`,
		WithLogger(zap.New(core)))

	ok, err := client.DeleteList(context.Background(), "L1")
	require.NoError(t, err)
	assert.False(t, ok)

	entries := logs.FilterMessage("backend reported failure").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "list is locked", entries[0].ContextMap()["error"])
}

func TestDeleteList_RemovesTasks(t *testing.T) {
	client, fb := newFakeClient(t)
	list := fb.SeedList("Work", 0)
	fb.SeedTask(list, "a", 0, false)
	fb.SeedTask(list, "b", 1, true)

	ok, err := client.DeleteList(context.Background(), list)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, fb.TaskCount())

	ok, err = client.DeleteList(context.Background(), list)
	require.NoError(t, err)
	assert.False(t, ok)
}

package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierr "todoctl/internal/errors"
	"todoctl/internal/service"
)

func TestUpdateAllListOrders(t *testing.T) {
	client, fb := newFakeClient(t)
	a := fb.SeedList("A", 0)
	b := fb.SeedList("B", 1)
	c := fb.SeedList("C", 2)

	report, err := client.UpdateAllListOrders(context.Background(), []service.TaskList{
		serviceList(a, "A", 2),
		serviceList(b, "B", 0),
		serviceList(c, "C", 1),
	})
	require.NoError(t, err)
	assert.True(t, report.OK())
	require.Len(t, report.Updated, 3)
	assert.Equal(t, a, report.Updated[0].ID)
	assert.Equal(t, 2, report.Updated[0].Order)

	assert.Equal(t, 2, fb.ListOrder(a))
	assert.Equal(t, 0, fb.ListOrder(b))
	assert.Equal(t, 1, fb.ListOrder(c))
}

func TestUpdateAllListOrders_OneFails(t *testing.T) {
	client, fb := newFakeClient(t)
	a := fb.SeedList("A", 0)
	b := fb.SeedList("B", 1)
	c := fb.SeedList("C", 2)
	fb.FailListOrder(b, "list is locked")

	report, err := client.UpdateAllListOrders(context.Background(), []service.TaskList{
		serviceList(a, "A", 1),
		serviceList(b, "B", 2),
		serviceList(c, "C", 0),
	})
	require.Error(t, err)
	assert.Equal(t, apierr.ErrCodeRejected, apierr.CodeOf(err))
	assert.Contains(t, err.Error(), b)

	assert.False(t, report.OK())
	assert.Equal(t, []service.OrderFailure{{ListID: b, Message: "list is locked"}}, report.Failed)
	assert.Len(t, report.Updated, 2)

	puts := 0
	for _, r := range fb.Requests() {
		if r.Method == http.MethodPut {
			puts++
		}
	}
	assert.Equal(t, 3, puts)
	assert.Equal(t, 1, fb.ListOrder(a))
	assert.Equal(t, 0, fb.ListOrder(c))
}

func TestUpdateAllListOrders_UnknownError(t *testing.T) {
	client, fb := newFakeClient(t)
	a := fb.SeedList("A", 0)
	fb.FailListOrder(a, "")

	report, err := client.UpdateAllListOrders(context.Background(), []service.TaskList{serviceList(a, "A", 3)})
	require.Error(t, err)
	assert.Equal(t, []string{a}, report.FailedIDs())
	assert.Equal(t, unknownBatchError, report.Failed[0].Message)
}

func TestUpdateAllListOrders_MissingList(t *testing.T) {
	client, fb := newFakeClient(t)
	a := fb.SeedList("A", 0)

	report, err := client.UpdateAllListOrders(context.Background(), []service.TaskList{
		serviceList(a, "A", 1),
		serviceList("gone", "Gone", 0),
	})
	assert.Equal(t, apierr.ErrCodeRejected, apierr.CodeOf(err))
	assert.Equal(t, []string{"gone"}, report.FailedIDs())
	assert.Equal(t, "list not found", report.Failed[0].Message)
}

func TestUpdateAllListOrders_Limited(t *testing.T) {
	client, fb := newFakeClient(t, WithBatchConcurrency(1))
	var lists []service.TaskList
	for i := 0; i < 5; i++ {
		id := fb.SeedList(string(rune('A'+i)), i)
		lists = append(lists, serviceList(id, string(rune('A'+i)), 4-i))
	}

	report, err := client.UpdateAllListOrders(context.Background(), lists)
	require.NoError(t, err)
	assert.Len(t, report.Updated, 5)
	for _, l := range lists {
		assert.Equal(t, l.Order, fb.ListOrder(l.ID))
	}
}

func TestUpdateAllListOrders_Empty(t *testing.T) {
	client, fb := newFakeClient(t)

	report, err := client.UpdateAllListOrders(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Empty(t, fb.Requests())
}

func TestUpdateAllListOrders_Validation(t *testing.T) {
	client, fb := newFakeClient(t)

	_, err := client.UpdateAllListOrders(context.Background(), []service.TaskList{serviceList("", "A", 0)})
	assert.Equal(t, apierr.ErrCodeInvalidRequest, apierr.CodeOf(err))

	_, err = client.UpdateAllListOrders(context.Background(), []service.TaskList{serviceList("L1", "A", -2)})
	assert.Equal(t, apierr.ErrCodeInvalidRequest, apierr.CodeOf(err))

	assert.Empty(t, fb.Requests())
}

func TestUpdateAllListOrders_ReplyWithoutOrder(t *testing.T) {
	client, c := newStubClient(t, http.StatusOK, `{"successful":true,"data":{"id":"L1","name":"Home"}}`)

	report, err := client.UpdateAllListOrders(context.Background(), []service.TaskList{
		serviceList("L1", "Home", 3),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"order":3}`, c.body)
	require.Len(t, report.Updated, 1)
	assert.Equal(t, service.TaskList{ID: "L1", Name: "Home", Order: 3}, report.Updated[0])
}

func TestUpdateAllListOrders_ReplyOrderWins(t *testing.T) {
	client, _ := newStubClient(t, http.StatusOK, `{"successful":true,"data":{"id":"L1","name":"Home","order":5}}`)

	report, err := client.UpdateAllListOrders(context.Background(), []service.TaskList{
		serviceList("L1", "Home", 3),
	})
	require.NoError(t, err)
	require.Len(t, report.Updated, 1)
	assert.Equal(t, 5, report.Updated[0].Order)
}

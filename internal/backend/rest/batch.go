package rest

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apierr "todoctl/internal/errors"
	"todoctl/internal/service"
)

const unknownBatchError = "unknown error"

// UpdateAllListOrders sends one order update per list, all in flight at
// once unless a batch concurrency limit is configured. Every issued request
// runs to completion; a failing list never cancels its siblings.
//
// The report holds every updated list and every failure in input order.
// When anything failed the error is REJECTED and names the first failed id.
func (c *Client) UpdateAllListOrders(ctx context.Context, lists []service.TaskList) (service.BatchReport, error) {
	const op = "update all list orders"
	for _, l := range lists {
		if err := requireID(op, l.ID); err != nil {
			return service.BatchReport{}, err
		}
		if err := requireOrder(op, l.Order); err != nil {
			return service.BatchReport{}, err
		}
	}

	updated := make([]*service.TaskList, len(lists))
	failures := make([]*service.OrderFailure, len(lists))

	var g errgroup.Group
	if c.batchLimit > 0 {
		g.SetLimit(c.batchLimit)
	}
	for i, l := range lists {
		i, l := i, l
		g.Go(func() error {
			list, msg := c.updateOrderItem(ctx, l)
			if msg != "" {
				failures[i] = &service.OrderFailure{ListID: l.ID, Message: msg}
				return nil
			}
			updated[i] = list
			return nil
		})
	}
	_ = g.Wait()

	var report service.BatchReport
	for i := range lists {
		if failures[i] != nil {
			report.Failed = append(report.Failed, *failures[i])
			continue
		}
		report.Updated = append(report.Updated, *updated[i])
	}

	if report.OK() {
		return report, nil
	}
	first := report.Failed[0]
	c.logger.Warn("list order update failed",
		zap.Int("failed", len(report.Failed)),
		zap.Int("total", len(lists)),
		zap.Strings("failed_ids", report.FailedIDs()))
	return report, apierr.NewWithContext(apierr.ErrCodeRejected,
		"list "+first.ListID+": "+first.Message,
		map[string]any{"operation": op, "failed_ids": report.FailedIDs()})
}

// updateOrderItem runs one batch request. A non-empty message means the
// list failed.
func (c *Client) updateOrderItem(ctx context.Context, l service.TaskList) (*service.TaskList, string) {
	const op = "update list order"
	r, err := c.do(ctx, op, http.MethodPut, listPath(l.ID), orderBody{Order: l.Order})
	if err != nil {
		return nil, err.Error()
	}
	if !r.ok() || r.env.failed() {
		return nil, r.serverMessage(unknownBatchError)
	}

	sent := l
	if !r.env.hasData() {
		return &sent, ""
	}
	var reply orderReply
	if err := c.decodeData(r, &reply, false); err != nil {
		return nil, err.Error()
	}
	return reply.merge(sent), ""
}

// orderReply is a list as returned by an order update. Backends may answer
// with only {id, name}, so missing fields fall back to what was sent.
type orderReply struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order *int   `json:"order"`
}

func (o orderReply) merge(sent service.TaskList) *service.TaskList {
	out := sent
	if o.ID != "" {
		out.ID = o.ID
	}
	if o.Name != "" {
		out.Name = o.Name
	}
	if o.Order != nil {
		out.Order = *o.Order
	}
	return &out
}

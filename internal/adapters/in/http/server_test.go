package http_test

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/notifications"
	"dispatch/internal/pkg/errs"
	syncpkg "dispatch/internal/sync"
)

var now = time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)

// fakeBackend is a canned ports.DeliveryClient for the HTTP facade tests.
type fakeBackend struct {
	assignErr    error
	assignmentID kernel.UUID
	refreshErr   error
	agentOrders  []*order.Order
}

func (f *fakeBackend) FetchOrdersByStatus(context.Context, order.Status) ([]*order.Order, error) {
	return nil, nil
}

func (f *fakeBackend) FetchOrdersForAgent(context.Context, kernel.UUID) ([]*order.Order, error) {
	return f.agentOrders, nil
}

func (f *fakeBackend) FetchAssignment(ctx context.Context, orderID kernel.UUID) (*delivery.Assignment, error) {
	return nil, errs.NewObjectNotFoundError("orderID", orderID.String())
}

func (f *fakeBackend) UpdateOrderStatus(context.Context, kernel.UUID, order.Status) error {
	return nil
}

func (f *fakeBackend) UpdateDeliveryStatus(context.Context, kernel.UUID, delivery.Status, *ports.ProofOfDelivery) error {
	return nil
}

func (f *fakeBackend) Assign(context.Context, kernel.UUID, kernel.UUID, ports.OrderContext) (kernel.UUID, error) {
	if f.assignErr != nil {
		return kernel.UUID{}, f.assignErr
	}
	return f.assignmentID, nil
}

func (f *fakeBackend) BulkAssign(_ context.Context, orderIDs []kernel.UUID, _ kernel.UUID, _ order.Priority) (ports.BulkAssignReport, error) {
	return ports.BulkAssignReport{Assigned: orderIDs}, nil
}

func (f *fakeBackend) Reassign(context.Context, kernel.UUID, kernel.UUID, string) error {
	return nil
}

func (f *fakeBackend) FetchAssignmentHistory(context.Context, kernel.UUID) ([]delivery.HistoryEntry, error) {
	return nil, nil
}

func (f *fakeBackend) FetchWorkload(context.Context) ([]agent.Workload, error) {
	return nil, nil
}

func (f *fakeBackend) FetchAvailableAgents(context.Context) ([]agent.Agent, error) {
	return nil, nil
}

type fakeRefresher struct {
	err   error
	calls int
}

func (f *fakeRefresher) RefreshNow(context.Context) error {
	f.calls++
	return f.err
}

type fixture struct {
	echo      *echo.Echo
	snapshot  *syncpkg.Snapshot
	journal   *notifications.InMemoryJournal
	backend   *fakeBackend
	refresher *fakeRefresher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend := &fakeBackend{assignmentID: kernel.NewUUID()}
	snapshot := syncpkg.NewSnapshot()
	journal := notifications.NewInMemoryJournal(0)
	dedup := notifications.NewDeduplicator()
	refresher := &fakeRefresher{}

	server := dispatchhttp.NewServer(
		commands.NewUpdateDeliveryStatusCommandHandler(backend, snapshot, dedup),
		commands.NewSetOrderStatusCommandHandler(backend, dedup),
		commands.NewAssignOrderCommandHandler(backend, snapshot, dedup),
		commands.NewBulkAssignCommandHandler(backend, dedup),
		commands.NewReassignOrderCommandHandler(backend, snapshot, dedup),
		queries.NewGetRankedOrdersQueryHandler(snapshot, func() time.Time { return now }),
		queries.NewGetAgentOrdersQueryHandler(backend, snapshot, func() time.Time { return now }),
		queries.NewGetWorkloadQueryHandler(backend, snapshot),
		queries.NewGetAssignmentHistoryQueryHandler(backend),
		queries.NewGetNotificationsQueryHandler(journal),
		queries.NewGetAvailableAgentsQueryHandler(backend),
		journal,
		refresher,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	return &fixture{
		echo:      e,
		snapshot:  snapshot,
		journal:   journal,
		backend:   backend,
		refresher: refresher,
	}
}

func (f *fixture) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) seedOrder(t *testing.T, o *order.Order, asg *delivery.Assignment) {
	t.Helper()
	assignments := map[kernel.UUID]delivery.Assignment{}
	if asg != nil {
		assignments[o.ID] = *asg
	}
	require.True(t, f.snapshot.Replace(1, []*order.Order{o}, assignments, now))
}

func dispatchOrder(number string) *order.Order {
	return &order.Order{
		ID:        kernel.NewUUID(),
		Number:    number,
		Status:    order.StatusReady,
		Priority:  order.PriorityHigh,
		CreatedAt: now.Add(-2 * time.Hour),
	}
}

func TestServer_GetOrders(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(t, dispatchOrder("ORD-1001"), nil)

	rec := f.request(t, stdhttp.MethodGet, "/api/v1/orders", "")

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var resp struct {
		Orders []struct {
			Number         string `json:"number"`
			DeliveryStatus string `json:"delivery_status"`
			Urgency        string `json:"urgency"`
			Score          int    `json:"score"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "ORD-1001", resp.Orders[0].Number)
	assert.Equal(t, "assigned", resp.Orders[0].DeliveryStatus)
	// Two hours unassigned: critical urgency, high priority.
	assert.Equal(t, "critical", resp.Orders[0].Urgency)
	assert.Equal(t, 33, resp.Orders[0].Score)
}

func TestServer_GetAgentOrders(t *testing.T) {
	t.Run("lists_the_agent_orders_most_urgent_first", func(t *testing.T) {
		f := newFixture(t)
		high := dispatchOrder("ORD-1001")
		low := dispatchOrder("ORD-1002")
		low.Priority = order.PriorityLow
		f.backend.agentOrders = []*order.Order{low, high}

		rec := f.request(t, stdhttp.MethodGet, "/api/v1/agents/"+kernel.NewUUID().String()+"/orders", "")

		require.Equal(t, stdhttp.StatusOK, rec.Code)
		var resp struct {
			Orders []struct {
				Number string `json:"number"`
			} `json:"orders"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Orders, 2)
		assert.Equal(t, "ORD-1001", resp.Orders[0].Number)
		assert.Equal(t, "ORD-1002", resp.Orders[1].Number)
	})

	t.Run("rejects_a_malformed_agent_id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.request(t, stdhttp.MethodGet, "/api/v1/agents/not-a-uuid/orders", "")

		assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	})
}

func TestServer_UpdateDeliveryStatus(t *testing.T) {
	t.Run("illegal_agent_jump_conflicts", func(t *testing.T) {
		f := newFixture(t)
		o := dispatchOrder("ORD-1001")
		asg, err := delivery.NewAssignment(o.ID, kernel.NewUUID(), "Dana", delivery.StatusAssigned, now)
		require.NoError(t, err)
		f.seedOrder(t, o, &asg)

		body := `{"status":"in_transit","actor_id":"` + kernel.NewUUID().String() + `","actor_role":"agent"}`
		rec := f.request(t, stdhttp.MethodPost, "/api/v1/orders/"+o.ID.String()+"/delivery-status", body)

		assert.Equal(t, stdhttp.StatusConflict, rec.Code)
	})

	t.Run("delivered_without_proof_is_a_bad_request", func(t *testing.T) {
		f := newFixture(t)
		o := dispatchOrder("ORD-1001")
		asg, err := delivery.NewAssignment(o.ID, kernel.NewUUID(), "Dana", delivery.StatusInTransit, now)
		require.NoError(t, err)
		f.seedOrder(t, o, &asg)

		body := `{"status":"delivered","actor_id":"` + kernel.NewUUID().String() + `","actor_role":"agent"}`
		rec := f.request(t, stdhttp.MethodPost, "/api/v1/orders/"+o.ID.String()+"/delivery-status", body)

		assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	})

	t.Run("legal_step_succeeds", func(t *testing.T) {
		f := newFixture(t)
		o := dispatchOrder("ORD-1001")
		asg, err := delivery.NewAssignment(o.ID, kernel.NewUUID(), "Dana", delivery.StatusAssigned, now)
		require.NoError(t, err)
		f.seedOrder(t, o, &asg)

		body := `{"status":"picked_up","actor_id":"` + kernel.NewUUID().String() + `","actor_role":"agent"}`
		rec := f.request(t, stdhttp.MethodPost, "/api/v1/orders/"+o.ID.String()+"/delivery-status", body)

		assert.Equal(t, stdhttp.StatusNoContent, rec.Code)
	})
}

func TestServer_AssignOrder(t *testing.T) {
	t.Run("assigns_an_unassigned_order", func(t *testing.T) {
		f := newFixture(t)
		o := dispatchOrder("ORD-1001")
		f.seedOrder(t, o, nil)

		body := `{"order_id":"` + o.ID.String() + `","agent_id":"` + kernel.NewUUID().String() + `"}`
		rec := f.request(t, stdhttp.MethodPost, "/api/v1/assignments", body)

		require.Equal(t, stdhttp.StatusCreated, rec.Code)
		var resp struct {
			AssignmentID string `json:"assignment_id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, f.backend.assignmentID.String(), resp.AssignmentID)
	})

	t.Run("already_assigned_conflicts", func(t *testing.T) {
		f := newFixture(t)
		o := dispatchOrder("ORD-1001")
		asg, err := delivery.NewAssignment(o.ID, kernel.NewUUID(), "Dana", delivery.StatusAssigned, now)
		require.NoError(t, err)
		f.seedOrder(t, o, &asg)

		body := `{"order_id":"` + o.ID.String() + `","agent_id":"` + kernel.NewUUID().String() + `"}`
		rec := f.request(t, stdhttp.MethodPost, "/api/v1/assignments", body)

		assert.Equal(t, stdhttp.StatusConflict, rec.Code)
	})
}

func TestServer_Refresh(t *testing.T) {
	t.Run("rate_limited_refresh_maps_to_429", func(t *testing.T) {
		f := newFixture(t)
		f.refresher.err = errs.NewRateLimitError(30 * time.Second)

		rec := f.request(t, stdhttp.MethodPost, "/api/v1/refresh", "")

		assert.Equal(t, stdhttp.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	})

	t.Run("silent_drop_is_a_success", func(t *testing.T) {
		f := newFixture(t)

		rec := f.request(t, stdhttp.MethodPost, "/api/v1/refresh", "")

		assert.Equal(t, stdhttp.StatusNoContent, rec.Code)
		assert.Equal(t, 1, f.refresher.calls)
	})
}

func TestServer_Notifications(t *testing.T) {
	f := newFixture(t)
	n := notification.NewOrderNotification(kernel.NewUUID(), "ORD-1001", delivery.StatusAssigned, now)
	require.NoError(t, f.journal.Append(t.Context(), n))

	rec := f.request(t, stdhttp.MethodGet, "/api/v1/notifications", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)

	rec = f.request(t, stdhttp.MethodPost, "/api/v1/notifications/"+n.ID.String()+"/read", "")
	require.Equal(t, stdhttp.StatusNoContent, rec.Code)

	rec = f.request(t, stdhttp.MethodPost, "/api/v1/notifications/read-all", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var resp struct {
		Updated int64 `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Updated)
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, stdhttp.MethodGet, "/health", "")

	assert.Equal(t, stdhttp.StatusOK, rec.Code)
}

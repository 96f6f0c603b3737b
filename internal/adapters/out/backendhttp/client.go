// Package backendhttp implements the remote delivery service port over its
// JSON HTTP API. The client is stateless; throttling and backoff live in the
// sync controller, this layer only translates transport failures into the
// core error taxonomy.
package backendhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const defaultTimeout = 15 * time.Second

// Config carries the connection settings of the remote service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the remote delivery/order service. It implements
// ports.DeliveryClient.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a configured client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errs.NewValueIsRequiredError("backend base URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}, nil
}

// FetchOrdersByStatus lists the backend orders in one status.
func (c *Client) FetchOrdersByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var dtos []orderDTO
	path := "/api/orders?status=" + url.QueryEscape(string(status))
	if err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	return ordersToDomain(dtos)
}

// FetchOrdersForAgent lists the orders currently bound to one agent.
func (c *Client) FetchOrdersForAgent(ctx context.Context, agentID kernel.UUID) ([]*order.Order, error) {
	var dtos []orderDTO
	path := "/api/agents/" + agentID.String() + "/orders"
	if err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	return ordersToDomain(dtos)
}

// FetchAssignment reads the active binding of one order; ErrObjectNotFound
// when the order is unassigned.
func (c *Client) FetchAssignment(ctx context.Context, orderID kernel.UUID) (*delivery.Assignment, error) {
	var dto assignmentDTO
	path := "/api/orders/" + orderID.String() + "/assignment"
	if err := c.do(ctx, http.MethodGet, path, nil, &dto); err != nil {
		return nil, err
	}
	asg, err := dto.toDomain()
	if err != nil {
		return nil, err
	}
	return &asg, nil
}

// UpdateOrderStatus writes a backend order status directly.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID kernel.UUID, status order.Status) error {
	body := map[string]string{"status": string(status)}
	path := "/api/orders/" + orderID.String() + "/status"
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

// UpdateDeliveryStatus submits a delivery-lifecycle transition, with proof
// when the target is delivered.
func (c *Client) UpdateDeliveryStatus(ctx context.Context, orderID kernel.UUID, status delivery.Status, proof *ports.ProofOfDelivery) error {
	body := updateDeliveryStatusRequest{Status: string(status)}
	if proof != nil {
		body.Proof = &proofDTO{
			PhotoURL:    proof.PhotoURL,
			Code:        proof.Code,
			Coordinates: proof.Coordinates,
		}
	}
	path := "/api/orders/" + orderID.String() + "/delivery-status"
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

// Assign creates a binding and returns its identifier.
func (c *Client) Assign(ctx context.Context, orderID, agentID kernel.UUID, orderCtx ports.OrderContext) (kernel.UUID, error) {
	body := assignRequest{
		OrderID:   orderID.String(),
		AgentID:   agentID.String(),
		ItemCount: orderCtx.ItemCount,
		Total:     orderCtx.Total,
	}
	var resp assignResponse
	if err := c.do(ctx, http.MethodPost, "/api/assignments", body, &resp); err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(resp.AssignmentID)
}

// BulkAssign submits a batch and returns the backend's split.
func (c *Client) BulkAssign(ctx context.Context, orderIDs []kernel.UUID, agentID kernel.UUID, priority order.Priority) (ports.BulkAssignReport, error) {
	ids := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, id.String())
	}
	body := bulkAssignRequest{
		OrderIDs: ids,
		AgentID:  agentID.String(),
		Priority: string(priority),
	}
	var resp bulkAssignResponse
	if err := c.do(ctx, http.MethodPost, "/api/assignments/bulk", body, &resp); err != nil {
		return ports.BulkAssignReport{}, err
	}
	return resp.toDomain()
}

// Reassign moves a binding to another agent.
func (c *Client) Reassign(ctx context.Context, orderID, agentID kernel.UUID, reason string) error {
	body := reassignRequest{AgentID: agentID.String(), Reason: reason}
	path := "/api/orders/" + orderID.String() + "/reassign"
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// FetchAssignmentHistory reads the handover trail of one order.
func (c *Client) FetchAssignmentHistory(ctx context.Context, orderID kernel.UUID) ([]delivery.HistoryEntry, error) {
	var dtos []historyEntryDTO
	path := "/api/orders/" + orderID.String() + "/assignment-history"
	if err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}

	entries := make([]delivery.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FetchWorkload reads the per-agent active delivery counts.
func (c *Client) FetchWorkload(ctx context.Context) ([]agent.Workload, error) {
	var dtos []workloadDTO
	if err := c.do(ctx, http.MethodGet, "/api/agents/workload", nil, &dtos); err != nil {
		return nil, err
	}

	workloads := make([]agent.Workload, 0, len(dtos))
	for _, dto := range dtos {
		w, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		workloads = append(workloads, w)
	}
	return workloads, nil
}

// FetchAvailableAgents reads the assignable agent roster.
func (c *Client) FetchAvailableAgents(ctx context.Context) ([]agent.Agent, error) {
	var dtos []agentDTO
	if err := c.do(ctx, http.MethodGet, "/api/agents/available", nil, &dtos); err != nil {
		return nil, err
	}

	agents := make([]agent.Agent, 0, len(dtos))
	for _, dto := range dtos {
		a, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

// do runs one JSON round trip. Failures translate to the core taxonomy:
// 429 becomes a RateLimitError carrying Retry-After, 404 an
// ObjectNotFoundError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return errs.NewRateLimitError(retryAfter(resp))
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundError("path", path)
	case resp.StatusCode >= 400:
		return remoteError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// retryAfter parses the Retry-After header in seconds; zero when absent or
// malformed.
func retryAfter(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// remoteError extracts the backend's error message when it sends one.
func remoteError(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Error != "" {
			return fmt.Errorf("backend responded %d: %s", resp.StatusCode, payload.Error)
		}
		if payload.Message != "" {
			return fmt.Errorf("backend responded %d: %s", resp.StatusCode, payload.Message)
		}
	}
	return fmt.Errorf("backend responded %d", resp.StatusCode)
}

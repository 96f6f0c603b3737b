package queries

import (
	"context"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// WorkloadFetcher is the slice of the remote client this query needs.
type WorkloadFetcher interface {
	FetchWorkload(ctx context.Context) ([]agent.Workload, error)
}

// GetWorkloadQueryHandler fetches the per-agent workload from the remote
// service. When the remote call fails it degrades to an approximation built
// from the local snapshot, so the workload board stays usable during outages.
type GetWorkloadQueryHandler struct {
	client   WorkloadFetcher
	snapshot SnapshotView
}

// NewGetWorkloadQueryHandler creates the handler.
func NewGetWorkloadQueryHandler(client WorkloadFetcher, snapshot SnapshotView) GetWorkloadQueryHandler {
	return GetWorkloadQueryHandler{client: client, snapshot: snapshot}
}

// Handle returns the authoritative remote workload when available, otherwise
// the local approximation. Stale reports whether the fallback was used.
func (h GetWorkloadQueryHandler) Handle(ctx context.Context, query GetWorkloadQuery) (workloads []agent.Workload, stale bool, err error) {
	if err := query.Validate(); err != nil {
		return nil, false, err
	}

	workloads, err = h.client.FetchWorkload(ctx)
	if err == nil {
		return workloads, false, nil
	}

	return h.localWorkloads(), true, nil
}

// localWorkloads groups the snapshot's active assignments by agent.
func (h GetWorkloadQueryHandler) localWorkloads() []agent.Workload {
	byAgent := make(map[kernel.UUID]*agent.Workload)
	var ordered []kernel.UUID

	for _, asg := range h.snapshot.Assignments() {
		w, ok := byAgent[asg.AgentID()]
		if !ok {
			w = &agent.Workload{
				AgentID:   asg.AgentID(),
				AgentName: asg.AgentName(),
				ByStatus:  make(map[delivery.Status]int),
			}
			byAgent[asg.AgentID()] = w
			ordered = append(ordered, asg.AgentID())
		}
		w.ByStatus[asg.Status()]++
	}

	out := make([]agent.Workload, 0, len(ordered))
	for _, id := range ordered {
		out = append(out, *byAgent[id])
	}
	return out
}

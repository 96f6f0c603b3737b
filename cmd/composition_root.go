package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/backendhttp"
	"dispatch/internal/adapters/out/storage/notificationrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/notifications"
	syncpkg "dispatch/internal/sync"
)

// CompositionRoot builds and owns the object graph of the service.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	client     *backendhttp.Client
	snapshot   *syncpkg.Snapshot
	dedup      *notifications.Deduplicator
	journal    ports.NotificationJournal
	controller *syncpkg.Controller
}

// NewCompositionRoot creates the object graph from the configuration.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	client, err := backendhttp.NewClient(backendhttp.Config{
		BaseURL: config.BackendBaseURL,
		APIKey:  config.BackendAPIKey,
		Timeout: config.BackendTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	journal, err := createJournal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification journal: %w", err)
	}

	snapshot := syncpkg.NewSnapshot()
	dedup := notifications.NewDeduplicator()

	controller, err := syncpkg.NewController(client, snapshot, dedup, journal, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync controller: %w", err)
	}

	return &CompositionRoot{
		config:     config,
		logger:     logger,
		client:     client,
		snapshot:   snapshot,
		dedup:      dedup,
		journal:    journal,
		controller: controller,
	}, nil
}

func createJournal(config Config) (ports.NotificationJournal, error) {
	switch strings.ToLower(config.StorageDriver) {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(config.StorageDSN), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return notificationrepo.NewRepository(db, config.JournalCapacity)
	case "postgres":
		db, err := gorm.Open(postgres.Open(config.StorageDSN), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return notificationrepo.NewRepository(db, config.JournalCapacity)
	case "memory":
		return notifications.NewInMemoryJournal(config.JournalCapacity), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.StorageDriver)
	}
}

// Controller returns the sync controller.
func (cr *CompositionRoot) Controller() *syncpkg.Controller {
	return cr.controller
}

func (cr *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(cr.client, cr.snapshot, cr.dedup)
}

func (cr *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(cr.client, cr.dedup)
}

func (cr *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(cr.client, cr.snapshot, cr.dedup)
}

func (cr *CompositionRoot) CreateBulkAssignCommandHandler() commands.BulkAssignCommandHandler {
	return commands.NewBulkAssignCommandHandler(cr.client, cr.dedup)
}

func (cr *CompositionRoot) CreateReassignOrderCommandHandler() commands.ReassignOrderCommandHandler {
	return commands.NewReassignOrderCommandHandler(cr.client, cr.snapshot, cr.dedup)
}

func (cr *CompositionRoot) CreateGetRankedOrdersQueryHandler() queries.GetRankedOrdersQueryHandler {
	return queries.NewGetRankedOrdersQueryHandler(cr.snapshot, nil)
}

func (cr *CompositionRoot) CreateGetAgentOrdersQueryHandler() queries.GetAgentOrdersQueryHandler {
	return queries.NewGetAgentOrdersQueryHandler(cr.client, cr.snapshot, nil)
}

func (cr *CompositionRoot) CreateGetWorkloadQueryHandler() queries.GetWorkloadQueryHandler {
	return queries.NewGetWorkloadQueryHandler(cr.client, cr.snapshot)
}

func (cr *CompositionRoot) CreateGetAssignmentHistoryQueryHandler() queries.GetAssignmentHistoryQueryHandler {
	return queries.NewGetAssignmentHistoryQueryHandler(cr.client)
}

func (cr *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(cr.journal)
}

func (cr *CompositionRoot) CreateGetAvailableAgentsQueryHandler() queries.GetAvailableAgentsQueryHandler {
	return queries.NewGetAvailableAgentsQueryHandler(cr.client)
}

// CreateHTTPServer creates the HTTP server facade.
func (cr *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		cr.CreateUpdateDeliveryStatusCommandHandler(),
		cr.CreateSetOrderStatusCommandHandler(),
		cr.CreateAssignOrderCommandHandler(),
		cr.CreateBulkAssignCommandHandler(),
		cr.CreateReassignOrderCommandHandler(),
		cr.CreateGetRankedOrdersQueryHandler(),
		cr.CreateGetAgentOrdersQueryHandler(),
		cr.CreateGetWorkloadQueryHandler(),
		cr.CreateGetAssignmentHistoryQueryHandler(),
		cr.CreateGetNotificationsQueryHandler(),
		cr.CreateGetAvailableAgentsQueryHandler(),
		cr.journal,
		cr.controller,
	)
}

// CreateJobManager creates the background job manager.
func (cr *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(cr.controller, cr.logger)
}

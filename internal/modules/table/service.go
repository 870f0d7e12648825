package table

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/platform/notify"
)

// Service defines the table registry.
type Service interface {
	CreateFloor(ctx context.Context, req CreateFloorRequest) (*Floor, error)
	ListFloors(ctx context.Context, branchID string) ([]*Floor, error)
	CreateTable(ctx context.Context, req CreateTableRequest) (*Table, error)

	GetTable(ctx context.Context, id string) (*Table, error)
	ListTables(ctx context.Context, floorID string) ([]*Table, error)

	// ClaimTable moves a FREE table to OCCUPIED atomically.
	ClaimTable(ctx context.Context, id string) (*Table, error)
	// ReleaseTable sets a table FREE. It fails with ErrInUse while a
	// non-completed dine-in order still references the table.
	ReleaseTable(ctx context.Context, id string) (*Table, error)
	ReserveTable(ctx context.Context, id string) (*Table, error)
	CancelReservation(ctx context.Context, id string) (*Table, error)

	// CheckOccupancy reports tables whose status disagrees with their orders.
	CheckOccupancy(ctx context.Context) ([]*Mismatch, error)
}

type service struct {
	repo     Repository
	notifier *notify.Notifier
	log      *slog.Logger
}

func NewService(repo Repository, notifier *notify.Notifier, log *slog.Logger) Service {
	return &service{repo: repo, notifier: notifier, log: log}
}

func (s *service) CreateFloor(ctx context.Context, req CreateFloorRequest) (*Floor, error) {
	branchID, err := apperr.ParseID("branch_id", req.BranchID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Invalid("name is required")
	}
	f := &Floor{ID: uuid.New(), BranchID: branchID, Name: name}
	if err := s.repo.CreateFloor(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) ListFloors(ctx context.Context, branchID string) ([]*Floor, error) {
	bid, err := apperr.ParseID("branch_id", branchID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListFloors(ctx, bid)
}

func (s *service) CreateTable(ctx context.Context, req CreateTableRequest) (*Table, error) {
	floorID, err := apperr.ParseID("floor_id", req.FloorID)
	if err != nil {
		return nil, err
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, apperr.Invalid("label is required")
	}
	if req.Seats < 0 {
		return nil, apperr.Invalid("seats must not be negative")
	}
	t := &Table{ID: uuid.New(), FloorID: floorID, Label: label, Seats: req.Seats, Status: StatusFree}
	if err := s.repo.CreateTable(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetTable(ctx context.Context, id string) (*Table, error) {
	uid, err := apperr.ParseID("table_id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetTable(ctx, uid)
}

func (s *service) ListTables(ctx context.Context, floorID string) ([]*Table, error) {
	fid, err := apperr.ParseOptionalID("floor_id", floorID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTables(ctx, fid)
}

func (s *service) ClaimTable(ctx context.Context, id string) (*Table, error) {
	return s.move(ctx, id, StatusFree, StatusOccupied)
}

func (s *service) ReserveTable(ctx context.Context, id string) (*Table, error) {
	return s.move(ctx, id, StatusFree, StatusReserved)
}

func (s *service) CancelReservation(ctx context.Context, id string) (*Table, error) {
	return s.move(ctx, id, StatusReserved, StatusFree)
}

func (s *service) ReleaseTable(ctx context.Context, id string) (*Table, error) {
	uid, err := apperr.ParseID("table_id", id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReleaseIdle(ctx, uid); err != nil {
		return nil, err
	}
	return s.changed(ctx, uid, StatusFree)
}

func (s *service) CheckOccupancy(ctx context.Context) ([]*Mismatch, error) {
	return s.repo.Mismatches(ctx)
}

func (s *service) move(ctx context.Context, id string, from, to Status) (*Table, error) {
	uid, err := apperr.ParseID("table_id", id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Transition(ctx, uid, from, to); err != nil {
		return nil, err
	}
	return s.changed(ctx, uid, to)
}

func (s *service) changed(ctx context.Context, id uuid.UUID, status Status) (*Table, error) {
	s.log.InfoContext(ctx, "table status changed", "action", "table_status", "table_id", id, "status", status)
	s.notifier.Notify(ctx, notify.TableStatusChanged, notify.TableStatusPayload{TableID: id, Status: string(status)})
	return s.repo.GetTable(ctx, id)
}

package tool

import (
	"context"
	"fmt"

	"github.com/buildbench/inven-backend/pkg/db"
	"github.com/buildbench/inven-backend/pkg/db/models"
	"github.com/buildbench/inven-backend/pkg/enums"
	pkgerrors "github.com/buildbench/inven-backend/pkg/errors"
	"github.com/buildbench/inven-backend/pkg/pagination"
	"gorm.io/gorm"
)

const (
	defaultTotalOwned = 1
	defaultTotalAvail = 0
)

// Service exposes tool inventory operations.
type Service interface {
	Create(ctx context.Context, input CreateToolInput) (*ToolDTO, error)
	GetByID(ctx context.Context, id int64) (*ToolDTO, error)
	List(ctx context.Context, filters ListFilters, page pagination.Params) ([]ToolDTO, error)
	Delete(ctx context.Context, id int64) (*ToolDTO, error)
	SetCounts(ctx context.Context, id int64, input SetToolCountsInput) (*ToolDTO, error)
	AdjustCounterPostImage(ctx context.Context, id int64, counter enums.ToolCounter, op enums.AtomicOp, value int64) (*ToolPostUpdateDTO, error)
	AdjustCounterPreImage(ctx context.Context, id int64, counter enums.ToolCounter, op enums.AtomicOp, value int64) (*ToolPreUpdateDTO, error)
}

// CreateToolInput holds the validated payload to create a tool. Unset
// counters fall back to one owned, zero available.
type CreateToolInput struct {
	Name       string
	Vendor     string
	TotalOwned *int64
	TotalAvail *int64
}

// SetToolCountsInput carries the subset of counters to replace.
type SetToolCountsInput struct {
	TotalOwned *int64
	TotalAvail *int64
}

// service implements the tool service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a tool service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tool repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// Create inserts a new tool. Counter bounds are enforced by the store check
// constraints, not pre-checked here.
func (s *service) Create(ctx context.Context, input CreateToolInput) (*ToolDTO, error) {
	row := &models.Tool{
		Name:       input.Name,
		Vendor:     input.Vendor,
		TotalOwned: defaultTotalOwned,
		TotalAvail: defaultTotalAvail,
	}
	if input.TotalOwned != nil {
		row.TotalOwned = *input.TotalOwned
	}
	if input.TotalAvail != nil {
		row.TotalAvail = *input.TotalAvail
	}

	if err := s.repo.Create(ctx, row); err != nil {
		if db.Classify(err) == db.KindCheck {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "tool counts violate inventory constraints")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating tool")
	}
	return NewToolDTO(row), nil
}

// GetByID returns the tool or a not-found error.
func (s *service) GetByID(ctx context.Context, id int64) (*ToolDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.Classify(err) == db.KindNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Tool not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading tool")
	}
	return NewToolDTO(row), nil
}

// List returns matching tools; an empty page is a valid result.
func (s *service) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]ToolDTO, error) {
	rows, err := s.repo.List(ctx, filters, pagination.Normalize(page))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing tools")
	}
	out := make([]ToolDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewToolDTO(&rows[i]))
	}
	return out, nil
}

// Delete removes the tool and returns its prior state. A tool still required
// by a build cannot be deleted.
func (s *service) Delete(ctx context.Context, id int64) (*ToolDTO, error) {
	var prior *models.Tool
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		row, err := repo.FindByIDLocked(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		prior = row
		return nil
	})
	if err != nil {
		switch db.Classify(err) {
		case db.KindNotFound:
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Tool not found")
		case db.KindForeignKey:
			return nil, pkgerrors.Wrap(pkgerrors.CodeInUse, err, "Tool is still needed for builds")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting tool")
	}
	return NewToolDTO(prior), nil
}

// SetCounts replaces the provided subset of counters. Providing neither
// counter leaves the row untouched and returns its current state.
func (s *service) SetCounts(ctx context.Context, id int64, input SetToolCountsInput) (*ToolDTO, error) {
	values := map[string]any{}
	if input.TotalOwned != nil {
		values[enums.ToolCounterOwned.Column()] = *input.TotalOwned
	}
	if input.TotalAvail != nil {
		values[enums.ToolCounterAvailable.Column()] = *input.TotalAvail
	}

	var updated *models.Tool
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByIDLocked(ctx, id); err != nil {
			return err
		}
		if err := repo.UpdateCounts(ctx, id, values); err != nil {
			return err
		}
		row, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, s.classifyCounterErr(err)
	}
	return NewToolDTO(updated), nil
}

// AdjustCounterPostImage applies a delta to one counter and reports both
// counters re-read inside the same transaction.
func (s *service) AdjustCounterPostImage(ctx context.Context, id int64, counter enums.ToolCounter, op enums.AtomicOp, value int64) (*ToolPostUpdateDTO, error) {
	column, delta, err := counterDelta(counter, op, value)
	if err != nil {
		return nil, err
	}

	var after *models.Tool
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByIDLocked(ctx, id); err != nil {
			return err
		}
		if err := repo.AdjustCounter(ctx, id, column, delta); err != nil {
			return err
		}
		row, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		after = row
		return nil
	})
	if err != nil {
		return nil, s.classifyCounterErr(err)
	}
	return &ToolPostUpdateDTO{
		ToolID:         after.ID,
		PostTotalOwned: after.TotalOwned,
		PostTotalAvail: after.TotalAvail,
	}, nil
}

// AdjustCounterPreImage applies a delta to one counter and reports both
// counters snapshotted before the update statement ran.
func (s *service) AdjustCounterPreImage(ctx context.Context, id int64, counter enums.ToolCounter, op enums.AtomicOp, value int64) (*ToolPreUpdateDTO, error) {
	column, delta, err := counterDelta(counter, op, value)
	if err != nil {
		return nil, err
	}

	var snapshot models.Tool
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		row, err := repo.FindByIDLocked(ctx, id)
		if err != nil {
			return err
		}
		snapshot = *row
		return repo.AdjustCounter(ctx, id, column, delta)
	})
	if err != nil {
		return nil, s.classifyCounterErr(err)
	}
	return &ToolPreUpdateDTO{
		ToolID:        snapshot.ID,
		PreTotalOwned: snapshot.TotalOwned,
		PreTotalAvail: snapshot.TotalAvail,
	}, nil
}

func (s *service) classifyCounterErr(err error) error {
	switch db.Classify(err) {
	case db.KindNotFound:
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Tool not found")
	case db.KindCheck:
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "tool counts violate inventory constraints")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating tool counters")
}

// counterDelta resolves the counter column and the signed delta.
func counterDelta(counter enums.ToolCounter, op enums.AtomicOp, value int64) (string, int64, error) {
	if !counter.IsValid() {
		return "", 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid tool counter %q", counter))
	}
	if !op.IsValid() {
		return "", 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid atomic operation %q", op))
	}
	if value <= 0 {
		return "", 0, pkgerrors.New(pkgerrors.CodeValidation, "value must be greater than zero")
	}
	delta := value
	if op == enums.AtomicOpDecrement {
		delta = -value
	}
	return counter.Column(), delta, nil
}

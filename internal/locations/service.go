package locations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lien-travel/planner-backend/pkg/db/models"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
	"github.com/lien-travel/planner-backend/pkg/metrics"
	"github.com/lien-travel/planner-backend/pkg/visibility"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the location registry.
type Service interface {
	Create(ctx context.Context, userID uint, input LocationInput) (*LocationDTO, error)
	List(ctx context.Context, userID uint, filter ListFilter) ([]LocationDTO, error)
	Get(ctx context.Context, userID, id uint) (*LocationDTO, error)
	Update(ctx context.Context, userID, id uint, input LocationInput) (*LocationDTO, error)
	Delete(ctx context.Context, userID, id uint) error
}

// ServiceParams wires the registry dependencies.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	Metrics *metrics.OperationMetrics
}

type service struct {
	repo    Repository
	tx      txRunner
	metrics *metrics.OperationMetrics
}

// NewService builds the location registry.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		metrics: params.Metrics,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uint, input LocationInput) (dto *LocationDTO, err error) {
	defer s.observe("location.create", time.Now(), &err)
	if userID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	owner := userID
	location := &models.Location{OwnerID: &owner}
	input.applyTo(location)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := s.repo.WithTx(tx).Create(ctx, location)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create location")
		}
		dto = FromModel(created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) List(ctx context.Context, userID uint, filter ListFilter) ([]LocationDTO, error) {
	if userID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if filter.Category != nil && !filter.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid location category")
	}

	var out []LocationDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.repo.WithTx(tx).ListVisible(ctx, userID, filter)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list locations")
		}
		out = make([]LocationDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *FromModel(&rows[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, userID, id uint) (*LocationDTO, error) {
	var dto *LocationDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		location, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := visibility.EnsureLocationReadable(location, userID); err != nil {
			return err
		}
		dto = FromModel(location)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) Update(ctx context.Context, userID, id uint, input LocationInput) (dto *LocationDTO, err error) {
	defer s.observe("location.update", time.Now(), &err)
	if err := input.validate(); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		location, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := visibility.EnsureLocationOwned(location, userID); err != nil {
			return err
		}
		input.applyTo(location)
		if err := repo.Update(ctx, location); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update location")
		}
		dto = FromModel(location)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Delete removes the location. Activities referencing it are left as they are.
func (s *service) Delete(ctx context.Context, userID, id uint) (err error) {
	defer s.observe("location.delete", time.Now(), &err)
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		location, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := visibility.EnsureLocationOwned(location, userID); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).Delete(ctx, location.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete location")
		}
		return nil
	})
}

func (s *service) load(ctx context.Context, tx *gorm.DB, id uint) (*models.Location, error) {
	if id == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
	}
	location, err := s.repo.WithTx(tx).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location")
	}
	return location, nil
}

func (s *service) observe(operation string, started time.Time, err *error) {
	s.metrics.Observe(operation, started, *err)
}

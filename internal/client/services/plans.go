package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/client/repositories/kv"
	"github.com/dmitrijs2005/timeflow/internal/logging"
	"github.com/dmitrijs2005/timeflow/internal/timex"
)

const plansKey = "plans"

type PlanService interface {
	Add(ctx context.Context, t models.PlanType, p models.Plan) (models.Plan, error)
	Delete(ctx context.Context, t models.PlanType, id string) error
	GetAllPlans(ctx context.Context) (models.Plans, error)
	GetPlansByType(ctx context.Context, t models.PlanType) ([]models.Plan, error)
	// FindPlan returns nil when no plan has id.
	FindPlan(ctx context.Context, id string) (*models.Plan, error)
	ImportPlans(ctx context.Context, raw []byte, merge bool) error
	Export(ctx context.Context) ([]byte, error)
}

type planService struct {
	db  *sql.DB
	kv  kv.Repository
	ids *models.IDSource
	log logging.Logger
}

func NewPlanService(db *sql.DB, log logging.Logger) PlanService {
	return &planService{
		db:  db,
		kv:  kv.NewSQLiteRepository(db),
		ids: models.NewIDSource(),
		log: log,
	}
}

func emptyPlans() models.Plans {
	p := make(models.Plans, len(models.PlanTypes))
	for _, t := range models.PlanTypes {
		p[t] = []models.Plan{}
	}
	return p
}

func loadPlans(ctx context.Context, repo kv.Repository) (models.Plans, error) {
	plans := emptyPlans()
	found, err := loadJSON(ctx, repo, plansKey, &plans)
	if err != nil {
		return nil, err
	}
	if !found {
		return emptyPlans(), nil
	}
	if plans == nil {
		plans = emptyPlans()
	}
	return plans, nil
}

func (s *planService) update(ctx context.Context, fn func(models.Plans) (models.Plans, error)) error {
	return inTx(ctx, s.db, func(ctx context.Context, repo kv.Repository) error {
		plans, err := loadPlans(ctx, repo)
		if err != nil {
			return err
		}
		plans, err = fn(plans)
		if err != nil {
			return err
		}
		return saveJSON(ctx, repo, plansKey, plans)
	})
}

func (s *planService) Add(ctx context.Context, t models.PlanType, p models.Plan) (models.Plan, error) {
	if _, ok := models.ParsePlanType(string(t)); !ok {
		return models.Plan{}, fmt.Errorf("%w: %q", ErrUnknownPlanType, t)
	}
	if err := models.Validate(p); err != nil {
		return models.Plan{}, err
	}
	p.ID = s.ids.Next()
	p.CreatedAt = timex.NewISOTime(timex.Now())

	err := s.update(ctx, func(plans models.Plans) (models.Plans, error) {
		plans[t] = append(plans[t], p)
		return plans, nil
	})
	if err != nil {
		return models.Plan{}, err
	}
	s.log.Debug(ctx, "plan added", "type", t, "id", p.ID)
	return p, nil
}

func (s *planService) Delete(ctx context.Context, t models.PlanType, id string) error {
	return s.update(ctx, func(plans models.Plans) (models.Plans, error) {
		list := plans[t]
		for i, p := range list {
			if p.ID == id {
				plans[t] = append(list[:i:i], list[i+1:]...)
				return plans, nil
			}
		}
		return nil, ErrPlanNotFound
	})
}

func (s *planService) GetAllPlans(ctx context.Context) (models.Plans, error) {
	plans, err := loadPlans(ctx, s.kv)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		for _, plan := range p {
			s.ids.Observe(plan.ID)
		}
	}
	return plans, nil
}

func (s *planService) GetPlansByType(ctx context.Context, t models.PlanType) ([]models.Plan, error) {
	plans, err := s.GetAllPlans(ctx)
	if err != nil {
		return nil, err
	}
	if list := plans[t]; list != nil {
		return list, nil
	}
	return []models.Plan{}, nil
}

func (s *planService) FindPlan(ctx context.Context, id string) (*models.Plan, error) {
	plans, err := s.GetAllPlans(ctx)
	if err != nil {
		return nil, err
	}
	for _, list := range plans {
		for _, p := range list {
			if p.ID == id {
				return &p, nil
			}
		}
	}
	return nil, nil
}

// ImportPlans loads an exported plans document. In merge mode plans with a
// known id replace the local copy and the rest are appended; otherwise the
// document replaces everything.
func (s *planService) ImportPlans(ctx context.Context, raw []byte, merge bool) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: plans must be a JSON object", ErrInvalidImport)
	}
	var incoming models.Plans
	if err := json.Unmarshal(trimmed, &incoming); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	for _, t := range models.PlanTypes {
		if incoming[t] == nil {
			incoming[t] = []models.Plan{}
		}
	}

	err := s.update(ctx, func(current models.Plans) (models.Plans, error) {
		if !merge {
			return incoming, nil
		}
		for _, t := range models.PlanTypes {
			current[t] = mergeByID(current[t], incoming[t], func(p models.Plan) string { return p.ID },
				func(_, imported models.Plan) models.Plan { return imported })
		}
		return current, nil
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "plans imported", "merge", merge)
	return nil
}

func (s *planService) Export(ctx context.Context) ([]byte, error) {
	plans, err := s.GetAllPlans(ctx)
	if err != nil {
		return nil, err
	}
	return indentJSON(plans)
}

// mergeByID folds incoming into current. Items whose id is already present
// are combined with replace; the rest are appended in order.
func mergeByID[T any](current, incoming []T, id func(T) string, replace func(existing, imported T) T) []T {
	out := append([]T{}, current...)
	for _, item := range incoming {
		found := false
		for i := range out {
			if id(out[i]) == id(item) {
				out[i] = replace(out[i], item)
				found = true
				break
			}
		}
		if !found {
			out = append(out, item)
		}
	}
	return out
}

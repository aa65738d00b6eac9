package shopping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"mealweek/internal/metrics"
	"mealweek/internal/plan"
	"mealweek/internal/recipe"
)

var (
	// ErrPlanNotFound is returned when an operation needs a persisted plan
	// and none exists for the user+week.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrItemNotFound is returned for unknown plan or list item ids.
	ErrItemNotFound = errors.New("item not found")
)

// Service orchestrates the read-reconcile-write cycle. Every mutation runs
// inside a single transaction per user+week so that two concurrent syncs
// against the same stale snapshot cannot overwrite each other's result.
type Service struct {
	db      *sql.DB
	lists   *Repository
	plans   *plan.Repository
	recipes *recipe.Repository
	runs    *metrics.Store
}

// NewService creates a Service. runs may be nil to disable metrics.
func NewService(db *sql.DB, lists *Repository, plans *plan.Repository, recipes *recipe.Repository, runs *metrics.Store) *Service {
	return &Service{
		db:      db,
		lists:   lists,
		plans:   plans,
		recipes: recipes,
		runs:    runs,
	}
}

// List returns the persisted shopping list for a user and week.
func (s *Service) List(ctx context.Context, userID, weekID string) ([]Item, error) {
	return s.lists.Load(ctx, userID, weekID)
}

// Plan returns the persisted plan with recipes hydrated, or nil.
func (s *Service) Plan(ctx context.Context, userID, weekID string) (*plan.WeeklyPlan, error) {
	p, err := s.plans.Load(ctx, userID, weekID)
	if err != nil || p == nil {
		return p, err
	}
	if err := s.hydrate(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SavePlan persists a plan and reconciles the week's shopping list against
// it in one transaction, returning the resulting list.
func (s *Service) SavePlan(ctx context.Context, userID, weekID string, p *plan.WeeklyPlan) ([]Item, error) {
	start := time.Now()
	if err := s.hydrate(ctx, p); err != nil {
		return nil, err
	}

	var next []Item
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.plans.WithTx(tx).Save(ctx, userID, weekID, stripRecipes(p)); err != nil {
			return err
		}
		current, err := s.lists.WithTx(tx).Load(ctx, userID, weekID)
		if err != nil {
			return err
		}
		next = Reconcile(current, p, userID)
		return s.lists.WithTx(tx).Replace(ctx, userID, weekID, next)
	})
	if err != nil {
		return nil, err
	}

	s.record(userID, weekID, "plan_save", next, start)
	return next, nil
}

// RemovePlannedItem deletes one planned slot item by id and re-syncs the
// list incrementally. Returns the mutated plan and the new list.
func (s *Service) RemovePlannedItem(ctx context.Context, userID, weekID, planItemID string) (*plan.WeeklyPlan, []Item, error) {
	start := time.Now()

	var (
		p    *plan.WeeklyPlan
		next []Item
	)
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		p, err = s.plans.WithTx(tx).Load(ctx, userID, weekID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrPlanNotFound
		}
		if err := s.hydrate(ctx, p); err != nil {
			return err
		}
		current, err := s.lists.WithTx(tx).Load(ctx, userID, weekID)
		if err != nil {
			return err
		}
		var removed bool
		next, removed = RemovePlannedItem(current, p, planItemID, userID)
		if !removed {
			return ErrItemNotFound
		}
		if err := s.plans.WithTx(tx).Save(ctx, userID, weekID, stripRecipes(p)); err != nil {
			return err
		}
		return s.lists.WithTx(tx).Replace(ctx, userID, weekID, next)
	})
	if err != nil {
		return nil, nil, err
	}

	s.record(userID, weekID, "item_removed", next, start)
	return p, next, nil
}

// SetChecked flips the checked flag on one source of one item.
func (s *Service) SetChecked(ctx context.Context, userID, itemID string, sourceIndex int, checked bool, from CheckedFrom) (*Item, error) {
	var item *Item
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		lists := s.lists.WithTx(tx)
		var err error
		item, err = lists.Get(ctx, userID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrItemNotFound
		}
		if sourceIndex < 0 || sourceIndex >= len(item.Sources) {
			return fmt.Errorf("source index %d out of range: %w", sourceIndex, ErrItemNotFound)
		}
		item.Sources[sourceIndex].IsChecked = checked
		if checked {
			if from == "" {
				from = CheckedByUser
			}
			item.Sources[sourceIndex].CheckedFrom = from
		} else {
			item.Sources[sourceIndex].CheckedFrom = ""
		}
		return lists.UpdateSources(ctx, userID, itemID, item.Sources)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AddManualSource appends a manual source to an existing item, or creates a
// new item for the ingredient if none exists for the week.
func (s *Service) AddManualSource(ctx context.Context, userID, weekID, name string, src Source) (*Item, error) {
	src.RecipeID = ""
	src.Day = ""
	src.MealType = ""
	key := recipe.NormalizeName(name)
	if key == "" {
		return nil, fmt.Errorf("ingredient name is empty")
	}

	var out *Item
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		lists := s.lists.WithTx(tx)
		items, err := lists.Load(ctx, userID, weekID)
		if err != nil {
			return err
		}
		for i := range items {
			if items[i].IngredientName == key {
				items[i].Sources = append(items[i].Sources, src)
				out = &items[i]
				return lists.UpdateSources(ctx, userID, items[i].ID, items[i].Sources)
			}
		}
		now := time.Now().UTC()
		item := Item{
			ID:             uuid.NewString(),
			IngredientName: key,
			Sources:        []Source{src},
			UserID:         userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		out = &item
		return lists.Replace(ctx, userID, weekID, append(items, item))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// hydrate fills slot items' Recipe pointers from the catalog; slots whose
// recipe no longer exists keep a nil Recipe and simply contribute nothing.
func (s *Service) hydrate(ctx context.Context, p *plan.WeeklyPlan) error {
	if p == nil || s.recipes == nil {
		return nil
	}
	idSet := map[string]struct{}{}
	for _, day := range p.Days {
		for _, mt := range plan.MealTypes {
			for _, slot := range day.Meals[mt] {
				if slot.Kind == plan.SlotRecipe && slot.RecipeID != "" {
					idSet[slot.RecipeID] = struct{}{}
				}
			}
		}
	}
	if len(idSet) == 0 {
		return nil
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	recipes, err := s.recipes.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to hydrate plan recipes: %w", err)
	}
	byID := map[string]*recipe.Recipe{}
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}
	for di := range p.Days {
		for _, mt := range plan.MealTypes {
			slots := p.Days[di].Meals[mt]
			for si := range slots {
				if slots[si].Kind == plan.SlotRecipe {
					slots[si].Recipe = byID[slots[si].RecipeID]
				}
			}
		}
	}
	return nil
}

// stripRecipes returns a copy of the plan with embedded recipes cleared;
// the catalog stays the single source of truth for recipe contents.
func stripRecipes(p *plan.WeeklyPlan) *plan.WeeklyPlan {
	out := &plan.WeeklyPlan{Days: make([]plan.DayPlan, len(p.Days))}
	for di, day := range p.Days {
		cp := day
		cp.Meals = map[plan.MealType][]plan.SlotItem{}
		for _, mt := range plan.MealTypes {
			slots := make([]plan.SlotItem, len(day.Meals[mt]))
			copy(slots, day.Meals[mt])
			for si := range slots {
				slots[si].Recipe = nil
			}
			cp.Meals[mt] = slots
		}
		out.Days[di] = cp
	}
	return out
}

func (s *Service) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("Warning: rollback failed: %v", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (s *Service) record(userID, weekID, trigger string, items []Item, start time.Time) {
	if s.runs == nil {
		return
	}
	sources := 0
	for _, it := range items {
		sources += len(it.Sources)
	}
	if err := s.runs.Record(metrics.SyncRun{
		UserID:      userID,
		WeekID:      weekID,
		TriggeredBy: trigger,
		ItemCount:   len(items),
		SourceCount: sources,
		LatencyMS:   time.Since(start).Milliseconds(),
	}); err != nil {
		log.Printf("Warning: failed to record sync metrics: %v", err)
	}
}

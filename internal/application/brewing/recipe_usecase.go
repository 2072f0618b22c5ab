package brewing

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/brewery-tracker-api/internal/application/dto"
	"github.com/jhoicas/brewery-tracker-api/internal/application/inventory"
	"github.com/jhoicas/brewery-tracker-api/internal/domain"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/entity"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/repository"
	"github.com/jhoicas/brewery-tracker-api/internal/domain/scheduling"
)

// RecipeUseCase CRUD de recetas y vista de agenda por receta.
type RecipeUseCase struct {
	txRunner inventory.TxRunner
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(txRunner inventory.TxRunner) *RecipeUseCase {
	return &RecipeUseCase{txRunner: txRunner}
}

// Create crea la receta con sus líneas. Nombre duplicado → domain.ErrDuplicate.
func (uc *RecipeUseCase) Create(ctx context.Context, in dto.CreateRecipeRequest) (*dto.RecipeDetailResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !in.Volume.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	recipe := &entity.Recipe{
		ID:           uuid.New().String(),
		Name:         name,
		Version:      in.Version,
		StyleID:      in.StyleID,
		Volume:       in.Volume,
		Brewer:       in.Brewer,
		EstimatedABV: in.EstimatedABV,
		EstimatedIBU: in.EstimatedIBU,
		RowVersion:   1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	lines, err := buildLines(recipe.ID, in.Ingredients)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = lines

	var out *entity.Recipe
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := ensureIngredients(ctx, repos, lines); err != nil {
			return err
		}
		if err := repos.Recipes.Create(ctx, recipe); err != nil {
			return err
		}
		out, err = repos.Recipes.GetByID(ctx, recipe.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toRecipeDetail(out), nil
}

// Update aplica los campos presentes. Si in.Ingredients no es nil reemplaza todas las líneas.
func (uc *RecipeUseCase) Update(ctx context.Context, id string, in dto.UpdateRecipeRequest) (*dto.RecipeDetailResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Volume != nil && !in.Volume.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Recipe
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		recipe, err := repos.Recipes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		if in.RowVersion != nil && *in.RowVersion != recipe.RowVersion {
			return domain.ErrConcurrencyConflict
		}
		if in.Name != nil {
			recipe.Name = strings.TrimSpace(*in.Name)
		}
		if in.Version != nil {
			recipe.Version = *in.Version
		}
		if in.Volume != nil {
			recipe.Volume = *in.Volume
		}
		if in.Brewer != nil {
			recipe.Brewer = *in.Brewer
		}
		if in.EstimatedABV != nil {
			recipe.EstimatedABV = in.EstimatedABV
		}
		if in.Ingredients != nil {
			lines, err := buildLines(recipe.ID, in.Ingredients)
			if err != nil {
				return err
			}
			if err := ensureIngredients(ctx, repos, lines); err != nil {
				return err
			}
			recipe.Ingredients = lines
		}
		recipe.UpdatedAt = time.Now()
		if err := repos.Recipes.Update(ctx, recipe); err != nil {
			return err
		}
		out, err = repos.Recipes.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toRecipeDetail(out), nil
}

// Delete elimina la receta y sus líneas. Con batches asociados → domain.ErrReferentialConflict.
func (uc *RecipeUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		recipe, err := repos.Recipes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		n, err := repos.Batches.CountByRecipe(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrReferentialConflict
		}
		return repos.Recipes.Delete(ctx, id)
	})
}

// GetByID detalle con ingredientes (nombre y unidad).
func (uc *RecipeUseCase) GetByID(ctx context.Context, id string) (*dto.RecipeDetailResponse, error) {
	var recipe *entity.Recipe
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		recipe, err = repos.Recipes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRecipeDetail(recipe), nil
}

// LastBrewed último StartDate <= asOf de la receta; nil si nunca se elaboró.
func (uc *RecipeUseCase) LastBrewed(ctx context.Context, recipeID string, asOf time.Time) (*time.Time, error) {
	batches, err := uc.recipeBatches(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return scheduling.LastBrewed(recipeID, batches, asOf), nil
}

// UpcomingSchedule fechas programadas >= asOf de batches no iniciados, ascendente.
func (uc *RecipeUseCase) UpcomingSchedule(ctx context.Context, recipeID string, asOf time.Time) ([]time.Time, error) {
	batches, err := uc.recipeBatches(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return scheduling.UpcomingSchedule(recipeID, batches, asOf), nil
}

// LastBrewPerRecipe receta → último brew a la fecha asOf.
func (uc *RecipeUseCase) LastBrewPerRecipe(ctx context.Context, asOf time.Time) (map[string]time.Time, error) {
	var batches []*entity.Batch
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		batches, err = repos.Batches.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return scheduling.LastBrewPerRecipe(batches, asOf), nil
}

// ListWithLastBrewed todas las recetas con último brew y fechas programadas, por nombre.
func (uc *RecipeUseCase) ListWithLastBrewed(ctx context.Context, asOf time.Time) ([]dto.RecipeScheduleDTO, error) {
	var (
		recipes []*entity.Recipe
		batches []*entity.Batch
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		if recipes, err = repos.Recipes.List(ctx); err != nil {
			return err
		}
		batches, err = repos.Batches.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	last := scheduling.LastBrewPerRecipe(batches, asOf)
	out := make([]dto.RecipeScheduleDTO, 0, len(recipes))
	for _, r := range recipes {
		row := dto.RecipeScheduleDTO{
			RecipeID:       r.ID,
			RecipeName:     r.Name,
			Version:        r.Version,
			Style:          r.StyleName,
			EstimatedABV:   r.EstimatedABV,
			ScheduledDates: scheduling.UpcomingSchedule(r.ID, batches, asOf),
		}
		if d, ok := last[r.ID]; ok {
			row.LastBrewed = &d
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecipeName < out[j].RecipeName })
	return out, nil
}

func (uc *RecipeUseCase) recipeBatches(ctx context.Context, recipeID string) ([]*entity.Batch, error) {
	var batches []*entity.Batch
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		recipe, err := repos.Recipes.GetByID(ctx, recipeID)
		if err != nil {
			return err
		}
		if recipe == nil {
			return domain.ErrNotFound
		}
		batches, err = repos.Batches.ListByRecipe(ctx, recipeID)
		return err
	})
	return batches, err
}

func buildLines(recipeID string, in []dto.RecipeIngredientInput) ([]entity.RecipeIngredient, error) {
	lines := make([]entity.RecipeIngredient, 0, len(in))
	for i, l := range in {
		if l.IngredientID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, entity.RecipeIngredient{
			ID:           uuid.New().String(),
			RecipeID:     recipeID,
			IngredientID: l.IngredientID,
			Quantity:     l.Quantity,
			UseDuring:    l.UseDuring,
			Position:     i + 1,
		})
	}
	return lines, nil
}

func ensureIngredients(ctx context.Context, repos repository.Repositories, lines []entity.RecipeIngredient) error {
	for _, l := range lines {
		ing, err := repos.Ingredients.GetByID(ctx, l.IngredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func toRecipeDetail(r *entity.Recipe) *dto.RecipeDetailResponse {
	res := &dto.RecipeDetailResponse{
		ID:           r.ID,
		Name:         r.Name,
		Version:      r.Version,
		Style:        r.StyleName,
		Volume:       r.Volume,
		Brewer:       r.Brewer,
		EstimatedABV: r.EstimatedABV,
		EstimatedIBU: r.EstimatedIBU,
		Ingredients:  make([]dto.RecipeIngredientDTO, 0, len(r.Ingredients)),
		RowVersion:   r.RowVersion,
	}
	for _, l := range r.Ingredients {
		res.Ingredients = append(res.Ingredients, dto.RecipeIngredientDTO{
			IngredientID: l.IngredientID,
			Name:         l.IngredientName,
			Quantity:     l.Quantity,
			Unit:         l.UnitName,
			UseDuring:    l.UseDuring,
		})
	}
	return res
}

package usecase

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/nordlane/catalog-service/internal/cache"
	"github.com/nordlane/catalog-service/internal/category"
	"github.com/nordlane/catalog-service/internal/category/dto"
	"github.com/nordlane/catalog-service/internal/category/tree"
	"github.com/nordlane/catalog-service/internal/events"
	"github.com/nordlane/catalog-service/internal/model"
)

// Nested MAIN-CATEGORY nodes are tolerated; only SUB-CATEGORY and CONTAINER
// strictly require a parent.
const allowNestedMain = true

type categoryUseCase struct {
	repo     category.Repository
	navCache *cache.NavigationCache
	producer *events.Producer
	logger   *zap.Logger
}

func NewCategoryUseCase(repo category.Repository, navCache *cache.NavigationCache, producer *events.Producer, logger *zap.Logger) category.UseCase {
	return &categoryUseCase{
		repo:     repo,
		navCache: navCache,
		producer: producer,
		logger:   logger,
	}
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, category.ErrNotFound
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *categoryUseCase) ListTree(ctx context.Context) ([]*model.CategoryNode, error) {
	rows, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return tree.Build(rows), nil
}

func (uc *categoryUseCase) Navigation(ctx context.Context) ([]model.NavLink, error) {
	if uc.navCache != nil {
		if links, ok := uc.navCache.Get(ctx); ok {
			return links, nil
		}
	}

	rows, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		if row.IsActive {
			active = append(active, row)
		}
	}

	links := tree.NavLinks(tree.Build(active))
	if links == nil {
		links = []model.NavLink{}
	}
	if uc.navCache != nil {
		uc.navCache.Set(ctx, links)
	}
	return links, nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if input.Type == model.TypeCollection {
		return nil, category.ErrImmutable
	}
	if err := uc.validateParent(ctx, input.Type, input.ParentID); err != nil {
		return nil, err
	}
	if err := uc.validateSiblingUniqueness(ctx, input.ParentID, input.Name, input.Slug, 0); err != nil {
		return nil, err
	}

	now := time.Now()
	cat := &model.Category{
		Name:         input.Name,
		Slug:         input.Slug,
		Type:         input.Type,
		ParentID:     input.ParentID,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
		ImageDesktop: optional(input.ImageDesktop),
		ImageMobile:  optional(input.ImageMobile),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	uc.afterMutation(events.CategoryCreated, cat)
	return cat, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, category.ErrNotFound
	}
	if cat.Type == model.TypeCollection {
		return nil, category.ErrImmutable
	}

	if parentChanged(cat.ParentID, input.ParentID) {
		if err := uc.validateParent(ctx, cat.Type, input.ParentID); err != nil {
			return nil, err
		}
		// The cycle check walks a pre-fetched flat set and must pass before
		// any write: making a descendant the parent would loop tree builds.
		rows, err := uc.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		if !tree.CanReparent(rows, cat.ID, input.ParentID) {
			return nil, category.ErrCycle
		}
	}

	if err := uc.validateSiblingUniqueness(ctx, input.ParentID, input.Name, input.Slug, cat.ID); err != nil {
		return nil, err
	}

	cat.Name = input.Name
	cat.Slug = input.Slug
	cat.ParentID = input.ParentID
	cat.DisplayOrder = input.DisplayOrder
	cat.IsActive = input.IsActive
	cat.ImageDesktop = optional(input.ImageDesktop)
	cat.ImageMobile = optional(input.ImageMobile)
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}

	uc.afterMutation(events.CategoryUpdated, cat)
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return category.ErrNotFound
	}
	if cat.Type == model.TypeCollection {
		return category.ErrImmutable
	}

	hasChildren, err := uc.repo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return category.ErrHasChildren
	}

	inUse, err := uc.repo.CountProducts(ctx, cat.Slug)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return category.ErrInUse
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.afterMutation(events.CategoryDeleted, cat)
	return nil
}

func (uc *categoryUseCase) validateParent(ctx context.Context, catType model.CategoryType, parentID *int64) error {
	if parentID == nil {
		if catType == model.TypeSubCategory || catType == model.TypeContainer {
			return category.ErrParentRequired
		}
		return nil
	}
	if catType == model.TypeMainCategory && !allowNestedMain {
		return category.ErrRootOnly
	}

	parent, err := uc.repo.FindByID(ctx, *parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return category.ErrParentNotFound
	}
	return nil
}

func (uc *categoryUseCase) validateSiblingUniqueness(ctx context.Context, parentID *int64, name, slug string, excludeID int64) error {
	unique, err := uc.repo.IsSlugUnique(ctx, parentID, slug, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return category.ErrSlugTaken
	}

	unique, err = uc.repo.IsNameUnique(ctx, parentID, name, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return category.ErrNameTaken
	}
	return nil
}

func (uc *categoryUseCase) afterMutation(eventType string, cat *model.Category) {
	if uc.navCache != nil {
		go uc.navCache.Invalidate(context.Background())
	}
	if uc.producer != nil {
		go func() {
			key := strconv.FormatInt(cat.ID, 10)
			if err := uc.producer.Publish(context.Background(), key, events.New(eventType, cat)); err != nil {
				uc.logger.Error("failed to publish category event", zap.String("event_type", eventType), zap.Error(err))
			}
		}()
	}
}

func parentChanged(current, proposed *int64) bool {
	if current == nil || proposed == nil {
		return current != proposed
	}
	return *current != *proposed
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

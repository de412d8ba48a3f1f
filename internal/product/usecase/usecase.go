package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordlane/catalog-service/internal/events"
	"github.com/nordlane/catalog-service/internal/model"
	"github.com/nordlane/catalog-service/internal/product"
	"github.com/nordlane/catalog-service/internal/product/dto"
)

type productUseCase struct {
	repo     product.Repository
	producer *events.Producer
	logger   *zap.Logger
}

func NewProductUseCase(repo product.Repository, producer *events.Producer, logger *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	now := time.Now()
	publishedAt := now
	if input.PublishedAt != nil {
		publishedAt = *input.PublishedAt
	}

	p := &model.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Brand:       input.Brand,
		Gender:      input.Gender,
		Category:    input.Category,
		Color:       input.Color,
		Price:       input.Price,
		Sizes:       input.Sizes,
		Images:      input.Images,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.publish(events.ProductCreated, p)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	p.Name = input.Name
	p.Brand = input.Brand
	p.Gender = input.Gender
	p.Category = input.Category
	p.Color = input.Color
	p.Price = input.Price
	p.Sizes = input.Sizes
	p.Images = input.Images
	if input.PublishedAt != nil {
		p.PublishedAt = *input.PublishedAt
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.publish(events.ProductUpdated, p)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return product.ErrNotFound
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.publish(events.ProductDeleted, p)
	return nil
}

func (uc *productUseCase) publish(eventType string, p *model.Product) {
	if uc.producer == nil {
		return
	}
	go func() {
		if err := uc.producer.Publish(context.Background(), p.ID, events.New(eventType, p)); err != nil {
			uc.logger.Error("failed to publish product event", zap.String("event_type", eventType), zap.Error(err))
		}
	}()
}

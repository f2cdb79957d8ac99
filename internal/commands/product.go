package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voltstack/commerce-backend/internal/data/repos"
	"github.com/voltstack/commerce-backend/internal/data/uow"
	"github.com/voltstack/commerce-backend/internal/domain"
	"github.com/voltstack/commerce-backend/internal/platform/dbctx"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
	"github.com/voltstack/commerce-backend/internal/platform/rediscache"
)

const productListCachePrefix = "products:page:"

// ListingCache is the cache port for paged listings. Every command that
// mutates product rows, including the order commands reserving or restoring
// stock, must invalidate the listing prefix after commit.
type ListingCache interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration)
	InvalidatePrefix(ctx context.Context, prefix string)
}

// cacheOrDisabled guards against a nil interface; a typed nil *Cache is safe
// to call and does nothing.
func cacheOrDisabled(cache ListingCache) ListingCache {
	if cache == nil {
		return (*rediscache.Cache)(nil)
	}
	return cache
}

// ProductCommands serves the product side of the write model plus its paged
// listing. Every command runs inside one unit of work.
type ProductCommands struct {
	log      *logger.Logger
	deps     uow.Deps
	products repos.ProductRepo
	cache    ListingCache
	cacheTTL time.Duration
}

func NewProductCommands(deps uow.Deps, products repos.ProductRepo, cache ListingCache, baseLog *logger.Logger) *ProductCommands {
	return &ProductCommands{
		log:      baseLog.With("service", "ProductCommands"),
		deps:     deps.WithDefaults(),
		products: products,
		cache:    cacheOrDisabled(cache),
		cacheTTL: 30 * time.Second,
	}
}

func (s *ProductCommands) Create(ctx context.Context, cmd CreateProduct) (Result[ProductDTO], error) {
	price, err := domain.MoneyFromString(cmd.PriceAmount, cmd.Currency)
	if err != nil {
		return resultFromError[ProductDTO](err)
	}
	row, err := domain.NewProduct(cmd.Name, cmd.Description, price, cmd.Stock, cmd.Category)
	if err != nil {
		return resultFromError[ProductDTO](err)
	}

	err = uow.Execute(ctx, s.deps, "product.create", func(dbc dbctx.Context) error {
		return s.products.Create(dbc, row)
	})
	if err != nil {
		return resultFromError[ProductDTO](err)
	}
	s.cache.InvalidatePrefix(ctx, productListCachePrefix)
	s.log.Info("product created", "productId", row.ID, "name", row.Name)
	return Success(productDTO(row)), nil
}

func (s *ProductCommands) Activate(ctx context.Context, cmd ActivateProduct) (Result[bool], error) {
	return s.setActive(ctx, "product.activate", cmd.ID, true)
}

func (s *ProductCommands) Deactivate(ctx context.Context, cmd DeactivateProduct) (Result[bool], error) {
	return s.setActive(ctx, "product.deactivate", cmd.ID, false)
}

func (s *ProductCommands) setActive(ctx context.Context, op string, id uuid.UUID, active bool) (Result[bool], error) {
	err := uow.Execute(ctx, s.deps, op, func(dbc dbctx.Context) error {
		row, err := s.products.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if row == nil {
			return productNotFound(op, id)
		}
		if active {
			row.Activate()
		} else {
			row.Deactivate()
		}
		return s.products.Update(dbc, row)
	})
	if err != nil {
		return resultFromError[bool](err)
	}
	s.cache.InvalidatePrefix(ctx, productListCachePrefix)
	return Success(true), nil
}

// UpdateStock applies a signed quantity delta; over-decrements fail inside
// the transaction and leave the stored quantity untouched.
func (s *ProductCommands) UpdateStock(ctx context.Context, cmd UpdateProductStock) (Result[int], error) {
	const op = "product.update_stock"
	var remaining int
	err := uow.Execute(ctx, s.deps, op, func(dbc dbctx.Context) error {
		row, err := s.products.GetByID(dbc, cmd.ID)
		if err != nil {
			return err
		}
		if row == nil {
			return productNotFound(op, cmd.ID)
		}
		next, err := row.AdjustStock(cmd.Quantity)
		if err != nil {
			return err
		}
		if err := s.products.Update(dbc, row); err != nil {
			return err
		}
		remaining = next
		return nil
	})
	if err != nil {
		return resultFromError[int](err)
	}
	s.cache.InvalidatePrefix(ctx, productListCachePrefix)
	return Success(remaining), nil
}

func (s *ProductCommands) Delete(ctx context.Context, cmd DeleteProduct) (Result[bool], error) {
	const op = "product.delete"
	err := uow.Execute(ctx, s.deps, op, func(dbc dbctx.Context) error {
		row, err := s.products.GetByID(dbc, cmd.ID)
		if err != nil {
			return err
		}
		if row == nil {
			return productNotFound(op, cmd.ID)
		}
		return s.products.Delete(dbc, row)
	})
	if err != nil {
		return resultFromError[bool](err)
	}
	s.cache.InvalidatePrefix(ctx, productListCachePrefix)
	s.log.Info("product deleted", "productId", cmd.ID)
	return Success(true), nil
}

// GetProducts is a read-through cached listing; page and pageSize are
// normalized to sane minimums before hitting either cache or store.
func (s *ProductCommands) GetProducts(ctx context.Context, query GetProducts) (Result[PagedResponse[ProductDTO]], error) {
	page, pageSize := query.Page, query.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	key := fmt.Sprintf("%s%d:%d", productListCachePrefix, page, pageSize)
	var cached PagedResponse[ProductDTO]
	if s.cache.GetJSON(ctx, key, &cached) {
		return Success(cached), nil
	}

	rows, total, err := s.products.GetPaged(dbctx.Context{Ctx: ctx}, page, pageSize)
	if err != nil {
		return resultFromError[PagedResponse[ProductDTO]](uow.MapError("product.list", err))
	}
	items := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, productDTO(row))
	}
	resp := PagedResponse[ProductDTO]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}
	s.cache.SetJSON(ctx, key, resp, s.cacheTTL)
	return Success(resp), nil
}

func productNotFound(op string, id uuid.UUID) error {
	return domain.NewError(domain.CodeNotFound, op,
		fmt.Sprintf("Product with ID %s was not found", id), nil)
}

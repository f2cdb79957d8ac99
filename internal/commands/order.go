package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/voltstack/commerce-backend/internal/data/repos"
	"github.com/voltstack/commerce-backend/internal/data/uow"
	"github.com/voltstack/commerce-backend/internal/domain"
	"github.com/voltstack/commerce-backend/internal/platform/dbctx"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

// OrderCommands coordinates the order and product aggregates. Stock
// reservation and order mutation always commit in the same transaction, so a
// failing line discards the whole attempt.
type OrderCommands struct {
	log       *logger.Logger
	deps      uow.Deps
	orders    repos.OrderRepo
	products  repos.ProductRepo
	customers repos.CustomerRepo
	cache     ListingCache
}

func NewOrderCommands(deps uow.Deps, orders repos.OrderRepo, products repos.ProductRepo, customers repos.CustomerRepo, cache ListingCache, baseLog *logger.Logger) *OrderCommands {
	return &OrderCommands{
		log:       baseLog.With("service", "OrderCommands"),
		deps:      deps.WithDefaults(),
		orders:    orders,
		products:  products,
		customers: customers,
		cache:     cacheOrDisabled(cache),
	}
}

func (s *OrderCommands) Place(ctx context.Context, cmd PlaceOrder) (Result[OrderDTO], error) {
	const op = "order.place"
	payment, err := domain.ParsePaymentMethod(cmd.PaymentMethod)
	if err != nil {
		return resultFromError[OrderDTO](err)
	}
	shipping, err := domain.NewAddress(cmd.Street, cmd.City, cmd.Region, cmd.PostalCode, cmd.Country)
	if err != nil {
		return resultFromError[OrderDTO](err)
	}
	if len(cmd.Lines) == 0 {
		return Failure[OrderDTO](domain.CodeValidation, "order must have at least one line"), nil
	}

	var dto OrderDTO
	err = uow.Execute(ctx, s.deps, op, func(dbc dbctx.Context) error {
		customer, err := s.customers.GetByID(dbc, cmd.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return customerNotFound(op, cmd.CustomerID)
		}
		order, err := domain.NewOrder(customer.ID, payment, shipping)
		if err != nil {
			return err
		}
		for _, line := range cmd.Lines {
			if err := s.addLine(dbc, op, order, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		if err := s.orders.Create(dbc, order); err != nil {
			return err
		}
		dto, err = orderDTO(order)
		return err
	})
	if err != nil {
		return resultFromError[OrderDTO](err)
	}
	s.cache.InvalidatePrefix(ctx, productListCachePrefix)
	s.log.Info("order placed", "orderId", dto.ID, "customerId", dto.CustomerID, "items", len(dto.Items))
	return Success(dto), nil
}

// AddItem appends a line to a pending order and reserves the product stock in
// the same transaction.
func (s *OrderCommands) AddItem(ctx context.Context, cmd AddOrderItem) (Result[OrderDTO], error) {
	const op = "order.add_item"
	var dto OrderDTO
	err := uow.Execute(ctx, s.deps, op, func(dbc dbctx.Context) error {
		order, err := s.orders.GetByID(dbc, cmd.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return orderNotFound(op, cmd.OrderID)
		}
		if err := s.addLine(dbc, op, order, cmd.ProductID, cmd.Quantity); err != nil {
			return err
		}
		if err := s.orders.SaveItems(dbc, order.Items); err != nil {
			return err
		}
		if err := s.orders.Update(dbc, order); err != nil {
			return err
		}
		dto, err = orderDTO(order)
		return err
	})
	if err != nil {
		return resultFromError[OrderDTO](err)
	}
	s.cache.InvalidatePrefix(ctx, productListCachePrefix)
	return Success(dto), nil
}

// addLine loads the product, lets the order validate and record the line,
// then reserves stock and persists the decrement. Both aggregates ride the
// caller's transaction.
func (s *OrderCommands) addLine(dbc dbctx.Context, op string, order *domain.Order, productID uuid.UUID, quantity int) error {
	product, err := s.products.GetByID(dbc, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return productNotFound(op, productID)
	}
	if err := order.AddItem(product, quantity); err != nil {
		return err
	}
	if err := product.ReserveStock(quantity); err != nil {
		return err
	}
	return s.products.Update(dbc, product)
}

func (s *OrderCommands) Confirm(ctx context.Context, cmd ConfirmOrder) (Result[OrderDTO], error) {
	return s.transition(ctx, "order.confirm", cmd.ID, func(o *domain.Order) error { return o.Confirm() })
}

func (s *OrderCommands) Ship(ctx context.Context, cmd ShipOrder) (Result[OrderDTO], error) {
	return s.transition(ctx, "order.ship", cmd.ID, func(o *domain.Order) error { return o.Ship() })
}

// Cancel releases the reserved stock of every line when the cancellation is
// accepted by the status machine.
func (s *OrderCommands) Cancel(ctx context.Context, cmd CancelOrder) (Result[OrderDTO], error) {
	const op = "order.cancel"
	var dto OrderDTO
	err := uow.Execute(ctx, s.deps, op, func(dbc dbctx.Context) error {
		order, err := s.orders.GetByID(dbc, cmd.ID)
		if err != nil {
			return err
		}
		if order == nil {
			return orderNotFound(op, cmd.ID)
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		for _, item := range order.Items {
			product, err := s.products.GetByID(dbc, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				continue
			}
			if _, err := product.AdjustStock(item.Quantity); err != nil {
				return err
			}
			if err := s.products.Update(dbc, product); err != nil {
				return err
			}
		}
		if err := s.orders.Update(dbc, order); err != nil {
			return err
		}
		dto, err = orderDTO(order)
		return err
	})
	if err != nil {
		return resultFromError[OrderDTO](err)
	}
	s.cache.InvalidatePrefix(ctx, productListCachePrefix)
	s.log.Info("order cancelled", "orderId", cmd.ID)
	return Success(dto), nil
}

func (s *OrderCommands) transition(ctx context.Context, op string, id uuid.UUID, apply func(*domain.Order) error) (Result[OrderDTO], error) {
	var dto OrderDTO
	err := uow.Execute(ctx, s.deps, op, func(dbc dbctx.Context) error {
		order, err := s.orders.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if order == nil {
			return orderNotFound(op, id)
		}
		if err := apply(order); err != nil {
			return err
		}
		if err := s.orders.Update(dbc, order); err != nil {
			return err
		}
		dto, err = orderDTO(order)
		return err
	})
	if err != nil {
		return resultFromError[OrderDTO](err)
	}
	return Success(dto), nil
}

func (s *OrderCommands) Get(ctx context.Context, query GetOrder) (Result[OrderDTO], error) {
	const op = "order.get"
	order, err := s.orders.GetByID(dbctx.Context{Ctx: ctx}, query.ID)
	if err != nil {
		return resultFromError[OrderDTO](uow.MapError(op, err))
	}
	if order == nil {
		return resultFromError[OrderDTO](orderNotFound(op, query.ID))
	}
	dto, err := orderDTO(order)
	if err != nil {
		return resultFromError[OrderDTO](err)
	}
	return Success(dto), nil
}

func (s *OrderCommands) GetOrders(ctx context.Context, query GetOrders) (Result[PagedResponse[OrderDTO]], error) {
	const op = "order.list"
	page, pageSize := query.Page, query.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	rows, total, err := s.orders.GetPagedByCustomer(dbctx.Context{Ctx: ctx}, query.CustomerID, page, pageSize)
	if err != nil {
		return resultFromError[PagedResponse[OrderDTO]](uow.MapError(op, err))
	}
	items := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		dto, err := orderDTO(row)
		if err != nil {
			return resultFromError[PagedResponse[OrderDTO]](err)
		}
		items = append(items, dto)
	}
	return Success(PagedResponse[OrderDTO]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}), nil
}

func orderNotFound(op string, id uuid.UUID) error {
	return domain.NewError(domain.CodeNotFound, op,
		fmt.Sprintf("Order with ID %s was not found", id), nil)
}

func customerNotFound(op string, id uuid.UUID) error {
	return domain.NewError(domain.CodeNotFound, op,
		fmt.Sprintf("Customer with ID %s was not found", id), nil)
}

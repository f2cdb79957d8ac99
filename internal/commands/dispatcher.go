package commands

import (
	"context"
	"fmt"

	"github.com/voltstack/commerce-backend/internal/domain"
)

// Dispatcher routes a command or query record to its handler. The command set
// is closed, so an explicit switch beats reflection: adding a record without
// wiring it here is a compile-time-visible omission in the default branch.
type Dispatcher struct {
	Products  *ProductCommands
	Orders    *OrderCommands
	Customers *CustomerCommands
}

func NewDispatcher(products *ProductCommands, orders *OrderCommands, customers *CustomerCommands) *Dispatcher {
	return &Dispatcher{Products: products, Orders: orders, Customers: customers}
}

// Dispatch returns the type-erased outcome for a known record; unknown types
// are an internal error, never a business failure.
func (d *Dispatcher) Dispatch(ctx context.Context, msg any) (Outcome, error) {
	switch cmd := msg.(type) {
	case CreateProduct:
		return erase(d.Products.Create(ctx, cmd))
	case ActivateProduct:
		return erase(d.Products.Activate(ctx, cmd))
	case DeactivateProduct:
		return erase(d.Products.Deactivate(ctx, cmd))
	case UpdateProductStock:
		return erase(d.Products.UpdateStock(ctx, cmd))
	case DeleteProduct:
		return erase(d.Products.Delete(ctx, cmd))
	case GetProducts:
		return erase(d.Products.GetProducts(ctx, cmd))
	case PlaceOrder:
		return erase(d.Orders.Place(ctx, cmd))
	case AddOrderItem:
		return erase(d.Orders.AddItem(ctx, cmd))
	case ConfirmOrder:
		return erase(d.Orders.Confirm(ctx, cmd))
	case ShipOrder:
		return erase(d.Orders.Ship(ctx, cmd))
	case CancelOrder:
		return erase(d.Orders.Cancel(ctx, cmd))
	case GetOrder:
		return erase(d.Orders.Get(ctx, cmd))
	case GetOrders:
		return erase(d.Orders.GetOrders(ctx, cmd))
	case CreateCustomer:
		return erase(d.Customers.Create(ctx, cmd))
	case RenameCustomer:
		return erase(d.Customers.Rename(ctx, cmd))
	case RelocateCustomer:
		return erase(d.Customers.Relocate(ctx, cmd))
	default:
		return nil, domain.NewError(domain.CodeInternal, "dispatcher.Dispatch",
			fmt.Sprintf("no handler registered for %T", msg), nil)
	}
}

func erase[T any](r Result[T], err error) (Outcome, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}

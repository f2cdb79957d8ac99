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

type CustomerCommands struct {
	log       *logger.Logger
	deps      uow.Deps
	customers repos.CustomerRepo
}

func NewCustomerCommands(deps uow.Deps, customers repos.CustomerRepo, baseLog *logger.Logger) *CustomerCommands {
	return &CustomerCommands{
		log:       baseLog.With("service", "CustomerCommands"),
		deps:      deps.WithDefaults(),
		customers: customers,
	}
}

func (s *CustomerCommands) Create(ctx context.Context, cmd CreateCustomer) (Result[CustomerDTO], error) {
	const op = "customer.create"
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return resultFromError[CustomerDTO](err)
	}
	address, err := domain.NewAddress(cmd.Street, cmd.City, cmd.Region, cmd.PostalCode, cmd.Country)
	if err != nil {
		return resultFromError[CustomerDTO](err)
	}
	row, err := domain.NewCustomer(cmd.FirstName, cmd.LastName, email, cmd.PhoneNumber, address)
	if err != nil {
		return resultFromError[CustomerDTO](err)
	}

	err = uow.Execute(ctx, s.deps, op, func(dbc dbctx.Context) error {
		existing, err := s.customers.GetByEmail(dbc, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewError(domain.CodeConflict, op,
				fmt.Sprintf("Customer with email %s already exists", email), nil)
		}
		return s.customers.Create(dbc, row)
	})
	if err != nil {
		return resultFromError[CustomerDTO](err)
	}
	s.log.Info("customer created", "customerId", row.ID)
	return Success(customerDTO(row)), nil
}

func (s *CustomerCommands) Rename(ctx context.Context, cmd RenameCustomer) (Result[CustomerDTO], error) {
	const op = "customer.rename"
	return s.mutate(ctx, op, cmd.ID, func(c *domain.Customer) error {
		return c.Rename(cmd.FirstName, cmd.LastName)
	})
}

func (s *CustomerCommands) Relocate(ctx context.Context, cmd RelocateCustomer) (Result[CustomerDTO], error) {
	const op = "customer.relocate"
	address, err := domain.NewAddress(cmd.Street, cmd.City, cmd.Region, cmd.PostalCode, cmd.Country)
	if err != nil {
		return resultFromError[CustomerDTO](err)
	}
	return s.mutate(ctx, op, cmd.ID, func(c *domain.Customer) error {
		return c.Relocate(address)
	})
}

func (s *CustomerCommands) mutate(ctx context.Context, op string, id uuid.UUID, apply func(*domain.Customer) error) (Result[CustomerDTO], error) {
	var dto CustomerDTO
	err := uow.Execute(ctx, s.deps, op, func(dbc dbctx.Context) error {
		row, err := s.customers.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if row == nil {
			return customerNotFound(op, id)
		}
		if err := apply(row); err != nil {
			return err
		}
		if err := s.customers.Update(dbc, row); err != nil {
			return err
		}
		dto = customerDTO(row)
		return nil
	})
	if err != nil {
		return resultFromError[CustomerDTO](err)
	}
	return Success(dto), nil
}

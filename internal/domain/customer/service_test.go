package customer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"autohaus-crm/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTest() (*customer.MockCustomerRepository, customer.CustomerService) {
	mockRepo := new(customer.MockCustomerRepository)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := customer.NewCustomerService(mockRepo, nil, logger)
	return mockRepo, service
}

func validCustomer() *customer.Customer {
	return &customer.Customer{
		KundenNr: "K001",
		Vorname:  "Max",
		Name:     "Mustermann",
		Strasse:  "Musterstrasse 1",
		PLZ:      "8000",
		Ort:      "Zürich",
	}
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		cust := validCustomer()
		cust.Vorname = "  Max  "

		mockRepo.On("Save", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			match := c.KundenNr == "K001" && c.Vorname == "Max" &&
				c.Bemerkungen != nil && c.Korrespondenz != nil
			if match {
				c.ID = 1
			}
			return match
		})).Return(nil).Once()

		created, err := service.CreateCustomer(ctx, cust)

		assert.NoError(t, err)
		assert.NotNil(t, created)
		if created != nil {
			assert.Equal(t, int64(1), created.ID)
			assert.Equal(t, "Max", created.Vorname)
			assert.Empty(t, created.Bemerkungen)
			assert.Empty(t, created.Korrespondenz)
		}
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Missing KundenNr", func(t *testing.T) {
		mockRepo, service := setupTest()
		cust := validCustomer()
		cust.KundenNr = "   "

		_, err := service.CreateCustomer(ctx, cust)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "kunden_nr")
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Error - Duplicate KundenNr", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("Save", ctx, mock.Anything).Return(customer.ErrDuplicateKundenNr).Once()

		_, err := service.CreateCustomer(ctx, validCustomer())

		assert.ErrorIs(t, err, customer.ErrDuplicateKundenNr)
		mockRepo.AssertExpectations(t)
	})
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success preserves identity and lists", func(t *testing.T) {
		mockRepo, service := setupTest()
		existing := validCustomer()
		existing.ID = 42
		existing.Bemerkungen = []customer.Remark{{Text: "alte Notiz", User: "system"}}

		fields := validCustomer()
		fields.Vorname = "Moritz"
		fields.Ort = "Bern"

		mockRepo.On("FindByID", ctx, int64(42)).Return(existing, nil).Once()
		mockRepo.On("Save", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			return c.ID == 42 && c.Vorname == "Moritz" && c.Ort == "Bern" && len(c.Bemerkungen) == 1
		})).Return(nil).Once()

		updated, err := service.UpdateCustomer(ctx, 42, fields)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), updated.ID)
		assert.Equal(t, "Moritz", updated.Vorname)
		assert.Len(t, updated.Bemerkungen, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("FindByID", ctx, int64(99)).Return(nil, customer.ErrNotFound).Once()

		_, err := service.UpdateCustomer(ctx, 99, validCustomer())

		assert.ErrorIs(t, err, customer.ErrNotFound)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_AddRemark(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("AppendRemark", ctx, int64(7), mock.MatchedBy(func(r customer.Remark) bool {
			return r.Text == "Rückruf gewünscht" && r.User == "vreni" && !r.Timestamp.IsZero()
		})).Return(nil).Once()

		err := service.AddRemark(ctx, 7, "  Rückruf gewünscht ", "vreni")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Empty Text", func(t *testing.T) {
		mockRepo, service := setupTest()

		err := service.AddRemark(ctx, 7, "   ", "vreni")

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "AppendRemark", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("AppendRemark", ctx, int64(7), mock.Anything).Return(customer.ErrNotFound).Once()

		err := service.AddRemark(ctx, 7, "Notiz", "vreni")

		assert.ErrorIs(t, err, customer.ErrNotFound)
	})
}

func TestCustomerService_AddCorrespondence(t *testing.T) {
	ctx := context.Background()

	t.Run("Success sets timestamp", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("AppendCorrespondence", ctx, int64(7), mock.MatchedBy(func(e customer.Correspondence) bool {
			return e.Bemerkung == "Offerte versendet" && !e.Timestamp.IsZero()
		})).Return(nil).Once()

		err := service.AddCorrespondence(ctx, 7, customer.Correspondence{
			Bemerkung: "Offerte versendet",
			Datum:     "2025-03-01",
			User:      "vreni",
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Empty Bemerkung", func(t *testing.T) {
		mockRepo, service := setupTest()

		err := service.AddCorrespondence(ctx, 7, customer.Correspondence{})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "AppendCorrespondence", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCustomerService_FindByKundenNr(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		existing := validCustomer()
		existing.ID = 5
		mockRepo.On("FindByKundenNr", ctx, "K001").Return(existing, nil).Once()

		cust, err := service.FindByKundenNr(ctx, " K001 ")

		assert.NoError(t, err)
		assert.Equal(t, int64(5), cust.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("FindByKundenNr", ctx, "K999").Return(nil, customer.ErrNotFound).Once()

		_, err := service.FindByKundenNr(ctx, "K999")

		assert.ErrorIs(t, err, customer.ErrNotFound)
	})

	t.Run("Error - Empty KundenNr", func(t *testing.T) {
		mockRepo, service := setupTest()

		_, err := service.FindByKundenNr(ctx, "  ")

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "FindByKundenNr", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("Delete", ctx, int64(3)).Return(nil).Once()

		assert.NoError(t, service.DeleteCustomer(ctx, 3))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Repository Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("Delete", ctx, int64(3)).Return(errors.New("db down")).Once()

		err := service.DeleteCustomer(ctx, 3)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, customer.ErrNotFound)
	})
}

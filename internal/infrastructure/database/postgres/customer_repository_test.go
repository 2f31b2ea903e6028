package postgres

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"autohaus-crm/internal/domain/customer"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

const pgxmockExpectationsNotMetMsg = "pgxmock expectations not met"

var pgconnUniqueViolation = pgconn.PgError{Code: "23505", ConstraintName: "customers_kunden_nr_key"}

func testCustomer() *customer.Customer {
	return &customer.Customer{
		KundenNr:      "K001",
		Vorname:       "Max",
		Name:          "Mustermann",
		Firma:         "",
		Strasse:       "Musterstr 1",
		PLZ:           "8000",
		Ort:           "Zürich",
		Bemerkungen:   []customer.Remark{},
		Korrespondenz: []customer.Correspondence{},
	}
}

func setupCustomerRepo(t *testing.T) (context.Context, *CustomerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewCustomerRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func TestCreateCustomerWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := testCustomer()
	now := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).WithArgs(
		cust.KundenNr,
		cust.Vorname,
		cust.Name,
		cust.Firma,
		cust.Strasse,
		cust.PLZ,
		cust.Ort,
		cust.TelefonP,
		cust.TelefonG,
		cust.Natel,
		cust.EmailP,
		cust.EmailG,
		cust.Geburtsdatum,
		cust.Bemerkungen,
		cust.Korrespondenz,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow(int64(1), now, now))

	err := repo.Save(ctx, cust)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cust.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreateCustomerWhenDuplicateKundenNr(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := testCustomer()

	mockPool.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers")).WithArgs(
		cust.KundenNr,
		cust.Vorname,
		cust.Name,
		cust.Firma,
		cust.Strasse,
		cust.PLZ,
		cust.Ort,
		cust.TelefonP,
		cust.TelefonG,
		cust.Natel,
		cust.EmailP,
		cust.EmailG,
		cust.Geburtsdatum,
		cust.Bemerkungen,
		cust.Korrespondenz,
	).WillReturnError(&pgconnUniqueViolation)

	err := repo.Save(ctx, cust)
	assert.ErrorIs(t, err, customer.ErrDuplicateKundenNr)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateCustomerWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := testCustomer()
	cust.ID = 42
	cust.Vorname = "Moritz"

	mockPool.ExpectExec(regexp.QuoteMeta("UPDATE customers")).WithArgs(
		cust.KundenNr,
		cust.Vorname,
		cust.Name,
		cust.Firma,
		cust.Strasse,
		cust.PLZ,
		cust.Ort,
		cust.TelefonP,
		cust.TelefonG,
		cust.Natel,
		cust.EmailP,
		cust.EmailG,
		cust.Geburtsdatum,
		cust.ID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Save(ctx, cust)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateCustomerWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cust := testCustomer()
	cust.ID = 42

	mockPool.ExpectExec(regexp.QuoteMeta("UPDATE customers")).WithArgs(
		cust.KundenNr,
		cust.Vorname,
		cust.Name,
		cust.Firma,
		cust.Strasse,
		cust.PLZ,
		cust.Ort,
		cust.TelefonP,
		cust.TelefonG,
		cust.Natel,
		cust.EmailP,
		cust.EmailG,
		cust.Geburtsdatum,
		cust.ID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Save(ctx, cust)
	assert.ErrorIs(t, err, customer.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCustomerByKundenNrWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "kunden_nr", "vorname", "name", "firma", "strasse", "plz", "ort",
		"telefon_p", "telefon_g", "natel", "email_p", "email_g", "geburtsdatum",
		"bemerkungen", "korrespondenz", "created_at", "updated_at",
	}).AddRow(
		int64(42), "K001", "Max", "Mustermann", "", "Musterstr 1", "8000", "Zürich",
		"", "", "", "", "", "",
		[]customer.Remark{}, []customer.Correspondence{}, now, now,
	)

	mockPool.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE kunden_nr = $1")).
		WithArgs("K001").WillReturnRows(rows)

	cust, err := repo.FindByKundenNr(ctx, "K001")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), cust.ID)
	assert.Equal(t, "Max", cust.Vorname)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindCustomerByKundenNrWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE kunden_nr = $1")).
		WithArgs("K999").WillReturnError(pgx.ErrNoRows)

	cust, err := repo.FindByKundenNr(ctx, "K999")
	assert.ErrorIs(t, err, customer.ErrNotFound)
	assert.Nil(t, cust)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAppendRemarkWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	remark := customer.Remark{Text: "Rückruf vereinbart", User: "admin", Timestamp: time.Now()}

	mockPool.ExpectExec(regexp.QuoteMeta("SET bemerkungen = bemerkungen || $1::jsonb")).
		WithArgs([]customer.Remark{remark}, int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.AppendRemark(ctx, 42, remark)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAppendRemarkWhenCustomerMissing(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	remark := customer.Remark{Text: "Rückruf vereinbart", User: "admin", Timestamp: time.Now()}

	mockPool.ExpectExec(regexp.QuoteMeta("SET bemerkungen = bemerkungen || $1::jsonb")).
		WithArgs([]customer.Remark{remark}, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.AppendRemark(ctx, 7, remark)
	assert.ErrorIs(t, err, customer.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteCustomerWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta("DELETE FROM customers WHERE id = $1")).
		WithArgs(int64(42)).WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(ctx, 42)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

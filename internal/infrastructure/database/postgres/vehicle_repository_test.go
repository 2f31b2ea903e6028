package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"autohaus-crm/internal/domain/vehicle"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func testVehicle() *vehicle.Vehicle {
	return &vehicle.Vehicle{
		CustomerID: 42,
		Marke:      "BMW",
		Modell:     "X5",
		ChassisNr:  "WBA123",
	}
}

func setupVehicleRepo(t *testing.T) (context.Context, *VehicleRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewVehicleRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func TestCreateVehicleWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupVehicleRepo(t)
	defer mockPool.Close()

	v := testVehicle()
	now := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta("INSERT INTO vehicles")).WithArgs(
		v.CustomerID,
		v.Marke,
		v.Modell,
		v.ChassisNr,
		v.StammNr,
		v.TypenscheinNr,
		v.Farbe,
		v.Inverkehrsetzung,
		v.KmStand,
		v.VistaNr,
		v.Verkaeufer,
		v.Kundenberater,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow(int64(7), now, now))

	err := repo.Save(ctx, v)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), v.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindVehiclesByCustomerIDWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupVehicleRepo(t)
	defer mockPool.Close()

	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "customer_id", "marke", "modell", "chassis_nr", "stamm_nr",
		"typenschein_nr", "farbe", "inverkehrsetzung", "km_stand", "vista_nr",
		"verkaeufer", "kundenberater", "created_at", "updated_at",
	}).AddRow(
		int64(7), int64(42), "BMW", "X5", "WBA123", "",
		"", "schwarz", "2023-04-01", "12000", "",
		"Huber", "Meier", now, now,
	)

	mockPool.ExpectQuery(regexp.QuoteMeta("FROM vehicles WHERE customer_id = $1")).
		WithArgs(int64(42)).WillReturnRows(rows)

	vehicles, err := repo.FindByCustomerID(ctx, 42)
	assert.NoError(t, err)
	assert.Len(t, vehicles, 1)
	assert.Equal(t, "BMW", vehicles[0].Marke)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindVehicleByIDWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupVehicleRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta("FROM vehicles WHERE id = $1")).
		WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)

	v, err := repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, vehicle.ErrNotFound)
	assert.Nil(t, v)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteVehicleWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupVehicleRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta("DELETE FROM vehicles WHERE id = $1")).
		WithArgs(int64(99)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(ctx, 99)
	assert.ErrorIs(t, err, vehicle.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

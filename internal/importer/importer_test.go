package importer

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"autohaus-crm/internal/domain/customer"
	"autohaus-crm/internal/domain/vehicle"
	"autohaus-crm/internal/event"
)

// --- Mocks ---

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerRepository) FindByKundenNr(ctx context.Context, kundenNr string) (*customer.Customer, error) {
	args := m.Called(ctx, kundenNr)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*customer.Customer); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockCustomerRepository) AppendRemark(ctx context.Context, customerID int64, remark customer.Remark) error {
	args := m.Called(ctx, customerID, remark)
	return args.Error(0)
}

func (m *MockCustomerRepository) AppendCorrespondence(ctx context.Context, customerID int64, entry customer.Correspondence) error {
	args := m.Called(ctx, customerID, entry)
	return args.Error(0)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Save(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, vehicleID int64) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, vehicleID)
	if v, ok := args.Get(0).(*vehicle.Vehicle); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehicleRepository) FindAll(ctx context.Context) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*vehicle.Vehicle); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehicleRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx, customerID)
	if list, ok := args.Get(0).([]*vehicle.Vehicle); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, vehicleID int64) error {
	args := m.Called(ctx, vehicleID)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerCreatedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, evt event.CustomerUpdatedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishImportCompleted(ctx context.Context, evt event.ImportCompletedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishTaskDue(ctx context.Context, evt event.TaskDueEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const customerHeader = "kunden_nr,vorname,name,firma,strasse,plz,ort,telefon_p,telefon_g,natel,email_p,email_g,geburtsdatum,bemerkungen"

// --- Customer import ---

func TestCustomerImport_CreatesNewCustomers(t *testing.T) {
	repo := new(MockCustomerRepository)
	imp := NewCustomerImporter(repo, nil, testLogger())

	csv := customerHeader + "\n" +
		"K001,Max,Mustermann,,Musterstr 1,8000,Zürich,,,,,,,\n" +
		"K002,Erika,Beispiel,Beispiel AG,Hauptstr 2,3000,Bern,,,,,,,\n"

	repo.On("FindByKundenNr", mock.Anything, "K001").Return(nil, customer.ErrNotFound)
	repo.On("FindByKundenNr", mock.Anything, "K002").Return(nil, customer.ErrNotFound)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(c *customer.Customer) bool {
		return c.KundenNr == "K001" && c.Vorname == "Max" && c.Ort == "Zürich" &&
			len(c.Bemerkungen) == 0 && len(c.Korrespondenz) == 0
	})).Return(nil).Once()
	repo.On("Save", mock.Anything, mock.MatchedBy(func(c *customer.Customer) bool {
		return c.KundenNr == "K002" && c.Firma == "Beispiel AG"
	})).Return(nil).Once()

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)
	repo.AssertExpectations(t)
}

func TestCustomerImport_UpdatesExistingCustomerInPlace(t *testing.T) {
	repo := new(MockCustomerRepository)
	imp := NewCustomerImporter(repo, nil, testLogger())

	existing := customer.NewCustomer("K001")
	existing.ID = 42
	existing.Vorname = "Old"
	existing.Name = "Name"
	existing.AddRemark("bestehender Eintrag", "admin")

	csv := customerHeader + "\n" +
		"K001,Max,Mustermann,,Musterstr 1,8000,Zürich,,,,,,,\n"

	repo.On("FindByKundenNr", mock.Anything, "K001").Return(existing, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(c *customer.Customer) bool {
		return c.ID == 42 && c.Vorname == "Max" && c.Name == "Mustermann" &&
			len(c.Bemerkungen) == 1
	})).Return(nil).Once()

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)
	repo.AssertExpectations(t)
}

func TestCustomerImport_MissingRequiredFieldIsRowLevel(t *testing.T) {
	repo := new(MockCustomerRepository)
	imp := NewCustomerImporter(repo, nil, testLogger())

	// Row 2 has an empty vorname; rows 1 and 3 are fine.
	csv := customerHeader + "\n" +
		"K001,Max,Mustermann,,Musterstr 1,8000,Zürich,,,,,,,\n" +
		"K002,,Beispiel,,Hauptstr 2,3000,Bern,,,,,,,\n" +
		"K003,Hans,Muster,,Bahnhofstr 3,6000,Luzern,,,,,,,\n"

	repo.On("FindByKundenNr", mock.Anything, "K001").Return(nil, customer.ErrNotFound)
	repo.On("FindByKundenNr", mock.Anything, "K003").Return(nil, customer.ErrNotFound)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Twice()

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "missing required field vorname")
	repo.AssertNotCalled(t, "FindByKundenNr", mock.Anything, "K002")
}

func TestCustomerImport_MissingColumnIsFatal(t *testing.T) {
	repo := new(MockCustomerRepository)
	imp := NewCustomerImporter(repo, nil, testLogger())

	csv := "kunden_nr,vorname,name,strasse,plz\n" +
		"K001,Max,Mustermann,Musterstr 1,8000\n"

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "ort")
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerImport_EmptyFileIsFatal(t *testing.T) {
	repo := new(MockCustomerRepository)
	imp := NewCustomerImporter(repo, nil, testLogger())

	result, err := imp.Import(context.Background(), strings.NewReader(""))

	assert.ErrorIs(t, err, ErrEmptyFile)
	assert.Nil(t, result)
}

func TestCustomerImport_FieldCountMismatchIsRowLevel(t *testing.T) {
	repo := new(MockCustomerRepository)
	imp := NewCustomerImporter(repo, nil, testLogger())

	csv := "kunden_nr,vorname,name,strasse,plz,ort\n" +
		"K001,Max,Mustermann,Musterstr 1,8000\n" +
		"K002,Erika,Beispiel,Hauptstr 2,3000,Bern\n"

	repo.On("FindByKundenNr", mock.Anything, "K002").Return(nil, customer.ErrNotFound)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "expected 6 fields, got 5")
}

func TestCustomerImport_HeaderOrderFreeAndUnknownColumnsIgnored(t *testing.T) {
	repo := new(MockCustomerRepository)
	imp := NewCustomerImporter(repo, nil, testLogger())

	csv := "ort,plz,name,vorname,kunden_nr,strasse,extra_spalte\n" +
		"Zürich,8000,Mustermann,Max,K001,Musterstr 1,wird ignoriert\n"

	repo.On("FindByKundenNr", mock.Anything, "K001").Return(nil, customer.ErrNotFound)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(c *customer.Customer) bool {
		return c.KundenNr == "K001" && c.Vorname == "Max" && c.PLZ == "8000" &&
			c.Strasse == "Musterstr 1"
	})).Return(nil).Once()

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)
	repo.AssertExpectations(t)
}

func TestCustomerImport_QuotedFieldsWithEmbeddedComma(t *testing.T) {
	repo := new(MockCustomerRepository)
	imp := NewCustomerImporter(repo, nil, testLogger())

	csv := "kunden_nr,vorname,name,strasse,plz,ort\n" +
		"K001,Max,Mustermann,\"Musterstr 1, Haus B\",8000,Zürich\n"

	repo.On("FindByKundenNr", mock.Anything, "K001").Return(nil, customer.ErrNotFound)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(c *customer.Customer) bool {
		return c.Strasse == "Musterstr 1, Haus B"
	})).Return(nil).Once()

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	repo.AssertExpectations(t)
}

func TestCustomerImport_PublishesCompletionEvent(t *testing.T) {
	repo := new(MockCustomerRepository)
	pub := new(MockEventPublisher)
	imp := NewCustomerImporter(repo, pub, testLogger())

	csv := "kunden_nr,vorname,name,strasse,plz,ort\n" +
		"K001,Max,Mustermann,Musterstr 1,8000,Zürich\n" +
		"K002,,Beispiel,Hauptstr 2,3000,Bern\n"

	repo.On("FindByKundenNr", mock.Anything, "K001").Return(nil, customer.ErrNotFound)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	pub.On("PublishCustomerCreated", mock.Anything, mock.Anything).Return(nil).Once()
	pub.On("PublishImportCompleted", mock.Anything, mock.MatchedBy(func(evt event.ImportCompletedEvent) bool {
		return evt.Entity == "customer" && evt.Imported == 1 && evt.ErrorCount == 1
	})).Return(nil).Once()

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	pub.AssertExpectations(t)
}

func TestCustomerImport_RepositoryFailureIsRowLevel(t *testing.T) {
	repo := new(MockCustomerRepository)
	imp := NewCustomerImporter(repo, nil, testLogger())

	csv := "kunden_nr,vorname,name,strasse,plz,ort\n" +
		"K001,Max,Mustermann,Musterstr 1,8000,Zürich\n"

	repo.On("FindByKundenNr", mock.Anything, "K001").Return(nil, assert.AnError)

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "K001")
}

// --- Vehicle import ---

func vehicleCustomers() []*customer.Customer {
	c := customer.NewCustomer("K001")
	c.ID = 42
	c.Vorname = "Max"
	c.Name = "Mustermann"
	return []*customer.Customer{c}
}

func TestVehicleImport_InsertsWithResolvedCustomer(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	customers := new(MockCustomerRepository)
	imp := NewVehicleImporter(vehicles, customers, nil, testLogger())

	csv := "kunden_nr,marke,modell,chassis_nr,stamm_nr,typenschein_nr,farbe,inverkehrsetzung,km_stand,vista_nr,verkaeufer,kundenberater\n" +
		"K001,BMW,X5,WBA123,,,schwarz,2023-04-01,12000,,Huber,Meier\n"

	customers.On("FindAll", mock.Anything).Return(vehicleCustomers(), nil)
	vehicles.On("Save", mock.Anything, mock.MatchedBy(func(v *vehicle.Vehicle) bool {
		return v.CustomerID == 42 && v.Marke == "BMW" && v.Modell == "X5" &&
			v.ChassisNr == "WBA123" && v.Kundenberater == "Meier"
	})).Return(nil).Once()

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)
	vehicles.AssertExpectations(t)
}

func TestVehicleImport_UnknownKundenNrIsRowLevel(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	customers := new(MockCustomerRepository)
	imp := NewVehicleImporter(vehicles, customers, nil, testLogger())

	csv := "kunden_nr,marke,modell,chassis_nr\n" +
		"K999,BMW,X5,WBA123\n"

	customers.On("FindAll", mock.Anything).Return(vehicleCustomers(), nil)

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "K999")
	vehicles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestVehicleImport_MissingChassisNrColumnIsFatal(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	customers := new(MockCustomerRepository)
	imp := NewVehicleImporter(vehicles, customers, nil, testLogger())

	csv := "kunden_nr,marke,modell\n" +
		"K001,BMW,X5\n"

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "chassis_nr")
	assert.Nil(t, result)
	customers.AssertNotCalled(t, "FindAll", mock.Anything)
	vehicles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestVehicleImport_MixedValidAndInvalidRows(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	customers := new(MockCustomerRepository)
	imp := NewVehicleImporter(vehicles, customers, nil, testLogger())

	csv := "kunden_nr,marke,modell,chassis_nr\n" +
		"K001,BMW,X5,WBA123\n" +
		"K001,Audi,,WAU456\n" +
		"K999,VW,Golf,WVW789\n" +
		"K001,VW,Polo,WVW001\n"

	customers.On("FindAll", mock.Anything).Return(vehicleCustomers(), nil)
	vehicles.On("Save", mock.Anything, mock.Anything).Return(nil).Twice()

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "missing required field modell")
	assert.Equal(t, 3, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Message, "unknown customer kunden_nr K999")
	vehicles.AssertExpectations(t)
}

func TestVehicleImport_SnapshotFailureIsFatal(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	customers := new(MockCustomerRepository)
	imp := NewVehicleImporter(vehicles, customers, nil, testLogger())

	csv := "kunden_nr,marke,modell,chassis_nr\n" +
		"K001,BMW,X5,WBA123\n"

	customers.On("FindAll", mock.Anything).Return(nil, assert.AnError)

	result, err := imp.Import(context.Background(), strings.NewReader(csv))

	assert.Error(t, err)
	assert.Nil(t, result)
	vehicles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestImportColumnContracts(t *testing.T) {
	assert.Subset(t, customerColumns, customerRequired)
	assert.Subset(t, vehicleColumns, vehicleRequired)
}

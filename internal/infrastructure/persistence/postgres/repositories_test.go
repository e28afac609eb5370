package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopfront/payments-worldpay/internal/application"
	"github.com/shopfront/payments-worldpay/internal/domain"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/persistence/postgres"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/persistence/postgres/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoriesTestSuite struct {
	suite.Suite
	testDB     *testhelpers.TestDatabase
	orders     *postgres.OrderRepository
	customers  *postgres.CustomerRepository
	currencies *postgres.CurrencyRepository
	settings   *postgres.SettingsStore
	locales    *postgres.LocaleStore
}

func TestRepositoriesSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed suite in short mode")
	}
	suite.Run(t, new(RepositoriesTestSuite))
}

func (s *RepositoriesTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDatabase(s.T())
	s.orders = postgres.NewOrderRepository(s.testDB.DB)
	s.customers = postgres.NewCustomerRepository(s.testDB.DB)
	s.currencies = postgres.NewCurrencyRepository(s.testDB.DB)
	s.settings = postgres.NewSettingsStore(s.testDB.DB)
	s.locales = postgres.NewLocaleStore(s.testDB.DB)
}

func (s *RepositoriesTestSuite) TearDownSuite() {
	s.testDB.Cleanup(s.T())
}

func (s *RepositoriesTestSuite) SetupTest() {
	s.testDB.CleanTables(s.T())
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:         42,
		CustomerID: 7,
		Total:      domain.Money{Cents: 4250, Currency: "USD"},
		Status:     domain.PaymentPending,
		BillingAddress: domain.Address{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Email:       "ada@example.com",
			Address1:    "1 Main St",
			City:        "Springfield",
			StateAbbrev: "IL",
			Zip:         "12345",
			CountryCode: "US",
			CountryName: "United States",
			Phone:       "555-0100",
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (s *RepositoriesTestSuite) Test_Order_RoundTrip() {
	ctx := context.Background()
	t := s.T()
	order := sampleOrder()

	require.NoError(t, s.orders.Create(ctx, order))

	loaded, err := s.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, order.ID, loaded.ID)
	assert.Equal(t, order.Total, loaded.Total)
	assert.Equal(t, domain.PaymentPending, loaded.Status)
	assert.Equal(t, "Ada", loaded.BillingAddress.FirstName)
	assert.Equal(t, "United States", loaded.BillingAddress.CountryName)
	assert.Nil(t, loaded.ShippingAddress)
	assert.Nil(t, loaded.PaidAt)
}

func (s *RepositoriesTestSuite) Test_Order_ShippingAddressRoundTrip() {
	ctx := context.Background()
	t := s.T()
	order := sampleOrder()
	order.ShippingRequired = true
	order.ShippingAddress = &domain.Address{
		FirstName:   "Grace",
		LastName:    "Hopper",
		Address1:    "2 Harbor Rd",
		City:        "Arlington",
		Zip:         "54321",
		CountryCode: "US",
	}

	require.NoError(t, s.orders.Create(ctx, order))

	loaded, err := s.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.ShippingAddress)
	assert.Equal(t, "Grace", loaded.ShippingAddress.FirstName)
	assert.Equal(t, "54321", loaded.ShippingAddress.Zip)
}

func (s *RepositoriesTestSuite) Test_Order_Update() {
	ctx := context.Background()
	t := s.T()
	order := sampleOrder()
	require.NoError(t, s.orders.Create(ctx, order))

	paidAt := time.Now().UTC().Truncate(time.Millisecond)
	order.Status = domain.PaymentPaid
	order.CaptureTransactionID = "1001,AUTH55"
	order.PaidAt = &paidAt
	require.NoError(t, s.orders.Update(ctx, order))

	loaded, err := s.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, loaded.Status)
	assert.Equal(t, "1001,AUTH55", loaded.CaptureTransactionID)
	require.NotNil(t, loaded.PaidAt)
	assert.WithinDuration(t, paidAt, *loaded.PaidAt, time.Second)
}

func (s *RepositoriesTestSuite) Test_Order_NotFound() {
	_, err := s.orders.GetByID(context.Background(), 9999)
	require.ErrorIs(s.T(), err, application.ErrOrderNotFound)

	err = s.orders.Update(context.Background(), sampleOrder())
	require.ErrorIs(s.T(), err, application.ErrOrderNotFound)
}

func (s *RepositoriesTestSuite) Test_Order_Notes() {
	ctx := context.Background()
	t := s.T()
	order := sampleOrder()
	require.NoError(t, s.orders.Create(ctx, order))

	note := application.NewOrderNote(order.ID, "WorldPay callback for order 42: transaction 990001, status Successful, message \"ok\"")
	require.NoError(t, s.orders.AddNote(ctx, note))

	notes, err := s.orders.NotesByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, note.Note, notes[0].Note)
	assert.False(t, notes[0].DisplayToCustomer)
}

func (s *RepositoriesTestSuite) Test_Customer_RoundTrip() {
	ctx := context.Background()
	t := s.T()

	customer := &domain.Customer{
		ID:    7,
		Email: "ada@example.com",
		BillingAddress: domain.Address{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Address1:    "1 Main St",
			City:        "Springfield",
			StateAbbrev: "IL",
			Zip:         "12345",
			CountryCode: "US",
		},
	}
	require.NoError(t, s.customers.Create(ctx, customer))

	loaded, err := s.customers.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", loaded.Email)
	assert.Equal(t, "Ada", loaded.BillingAddress.FirstName)
	assert.Equal(t, "ada@example.com", loaded.BillingAddress.Email)

	_, err = s.customers.GetByID(ctx, 9999)
	require.ErrorIs(t, err, application.ErrCustomerNotFound)
}

func (s *RepositoriesTestSuite) Test_Currency_RoundTrip() {
	ctx := context.Background()
	t := s.T()

	require.NoError(t, s.currencies.Upsert(ctx, &domain.Currency{Code: "USD", UsdRate: 1, IsPrimary: true}))
	require.NoError(t, s.currencies.Upsert(ctx, &domain.Currency{Code: "GBP", UsdRate: 1.27}))

	gbp, err := s.currencies.GetByCode(ctx, "GBP")
	require.NoError(t, err)
	assert.Equal(t, 1.27, gbp.UsdRate)

	primary, err := s.currencies.Primary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", primary.Code)

	_, err = s.currencies.GetByCode(ctx, "XYZ")
	require.ErrorIs(t, err, application.ErrCurrencyNotFound)
}

func (s *RepositoriesTestSuite) Test_Settings_RoundTrip() {
	ctx := context.Background()
	t := s.T()

	settings := &domain.Settings{
		IntegrationMode:         domain.ModeDirect,
		UseSandbox:              true,
		TransactMode:            domain.TransactAuthorizeAndCapture,
		AdditionalFeeCents:      150,
		AdditionalFeePercentage: true,
		SecureNetID:             "8000000",
		SecureKey:               "secret-key",
		EndPoint:                "https://gwapi.securenet.com/api/",
		DeveloperID:             12345,
		DeveloperVersion:        "1.2",
		InstanceID:              "211616",
		CallbackPassword:        "cb-pass",
		PaymentMethodFilter:     "VISA",
		CSSName:                 "store.css",
	}
	require.NoError(t, s.settings.Save(ctx, settings))

	loaded, err := s.settings.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	// Saving again overwrites in place.
	settings.UseSandbox = false
	require.NoError(t, s.settings.Save(ctx, settings))

	loaded, err = s.settings.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.UseSandbox)
}

func (s *RepositoriesTestSuite) Test_Settings_Delete() {
	ctx := context.Background()
	t := s.T()

	require.NoError(t, s.settings.Save(ctx, &domain.Settings{
		IntegrationMode: domain.ModeDirect,
		SecureNetID:     "8000000",
	}))
	require.NoError(t, s.settings.Delete(ctx))

	// With the rows gone, Load falls back to the install defaults.
	loaded, err := s.settings.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), loaded)
}

func (s *RepositoriesTestSuite) Test_Settings_LoadDefaultsWhenEmpty() {
	loaded, err := s.settings.Load(context.Background())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.DefaultSettings(), loaded)
}

func (s *RepositoriesTestSuite) Test_LocaleStore() {
	ctx := context.Background()
	t := s.T()

	require.NoError(t, s.locales.AddOrUpdate(ctx, "Plugins.Payments.WorldPay.UseSandbox", "Use sandbox"))
	require.NoError(t, s.locales.AddOrUpdate(ctx, "Plugins.Payments.WorldPay.UseSandbox", "Use the sandbox"))

	value, err := s.locales.Get(ctx, "Plugins.Payments.WorldPay.UseSandbox")
	require.NoError(t, err)
	assert.Equal(t, "Use the sandbox", value)

	require.NoError(t, s.locales.Delete(ctx, "Plugins.Payments.WorldPay.UseSandbox"))
	_, err = s.locales.Get(ctx, "Plugins.Payments.WorldPay.UseSandbox")
	require.Error(t, err)
}

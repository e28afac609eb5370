package application

import (
	"context"
	"sync"

	"github.com/shopfront/payments-worldpay/internal/domain"
	"github.com/shopfront/payments-worldpay/internal/infrastructure/worldpay"
)

// Hand-written mocks for the collaborator ports, shared by the service and
// processor tests. Each method delegates to its function field when set and
// otherwise falls back to simple in-memory behavior.

type MockSettingsStore struct {
	Settings *domain.Settings

	LoadFn       func(ctx context.Context) (*domain.Settings, error)
	SaveFn       func(ctx context.Context, settings *domain.Settings) error
	DeleteFn     func(ctx context.Context) error
	ClearCacheFn func(ctx context.Context) error

	ClearCacheCalls int
}

func NewMockSettingsStore(settings *domain.Settings) *MockSettingsStore {
	return &MockSettingsStore{Settings: settings}
}

func (m *MockSettingsStore) Load(ctx context.Context) (*domain.Settings, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx)
	}
	return m.Settings, nil
}

func (m *MockSettingsStore) Save(ctx context.Context, settings *domain.Settings) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, settings)
	}
	m.Settings = settings
	return nil
}

func (m *MockSettingsStore) Delete(ctx context.Context) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx)
	}
	m.Settings = nil
	return nil
}

func (m *MockSettingsStore) ClearCache(ctx context.Context) error {
	m.ClearCacheCalls++
	if m.ClearCacheFn != nil {
		return m.ClearCacheFn(ctx)
	}
	return nil
}

type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	notes  []*domain.OrderNote

	GetByIDFn func(ctx context.Context, id int64) (*domain.Order, error)
	UpdateFn  func(ctx context.Context, order *domain.Order) error
	AddNoteFn func(ctx context.Context, note *domain.OrderNote) error

	UpdateCalls int
}

func NewMockOrderRepository(orders ...*domain.Order) *MockOrderRepository {
	m := &MockOrderRepository{orders: make(map[int64]*domain.Order)}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, ErrOrderNotFound
}

func (m *MockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	m.UpdateCalls++
	m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) AddNote(ctx context.Context, note *domain.OrderNote) error {
	if m.AddNoteFn != nil {
		return m.AddNoteFn(ctx, note)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append(m.notes, note)
	return nil
}

// Notes returns the notes recorded so far.
func (m *MockOrderRepository) Notes() []*domain.OrderNote {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OrderNote(nil), m.notes...)
}

type MockCurrencyRepository struct {
	Currencies map[string]*domain.Currency

	GetByCodeFn func(ctx context.Context, code string) (*domain.Currency, error)
	PrimaryFn   func(ctx context.Context) (*domain.Currency, error)
}

func (m *MockCurrencyRepository) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	if c, ok := m.Currencies[code]; ok {
		return c, nil
	}
	return nil, ErrCurrencyNotFound
}

func (m *MockCurrencyRepository) Primary(ctx context.Context) (*domain.Currency, error) {
	if m.PrimaryFn != nil {
		return m.PrimaryFn(ctx)
	}
	for _, c := range m.Currencies {
		if c.IsPrimary {
			return c, nil
		}
	}
	return &domain.Currency{Code: "USD", UsdRate: 1, IsPrimary: true}, nil
}

type MockCustomerRepository struct {
	Customers map[int64]*domain.Customer

	GetByIDFn func(ctx context.Context, id int64) (*domain.Customer, error)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if c, ok := m.Customers[id]; ok {
		return c, nil
	}
	return nil, ErrCustomerNotFound
}

type MockGatewayClient struct {
	mu       sync.Mutex
	requests []worldpay.Request

	PostFn func(ctx context.Context, settings *domain.Settings, req worldpay.Request) (*worldpay.PaymentResponse, error)
}

func (m *MockGatewayClient) Post(ctx context.Context, settings *domain.Settings, req worldpay.Request) (*worldpay.PaymentResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.PostFn != nil {
		return m.PostFn(ctx, settings, req)
	}
	return &worldpay.PaymentResponse{Success: true, Transaction: &worldpay.Transaction{TransactionID: 1}}, nil
}

// Requests returns every request posted so far, in order.
func (m *MockGatewayClient) Requests() []worldpay.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]worldpay.Request(nil), m.requests...)
}

type MockLocaleStore struct {
	mu        sync.Mutex
	Resources map[string]string

	AddOrUpdateFn func(ctx context.Context, name, value string) error
	DeleteFn      func(ctx context.Context, name string) error
}

func NewMockLocaleStore() *MockLocaleStore {
	return &MockLocaleStore{Resources: make(map[string]string)}
}

func (m *MockLocaleStore) AddOrUpdate(ctx context.Context, name, value string) error {
	if m.AddOrUpdateFn != nil {
		return m.AddOrUpdateFn(ctx, name, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resources[name] = value
	return nil
}

func (m *MockLocaleStore) Delete(ctx context.Context, name string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Resources, name)
	return nil
}

package test

import (
	"context"
	"sync"

	domainErrors "github.com/polvex/pharmatrack/internal/domain/errors"
	"github.com/polvex/pharmatrack/internal/domain/model"
)

// StaffRepositoryStub stores staff accounts in-memory for tests.
type StaffRepositoryStub struct {
	Accounts map[string]*model.Staff
	ByID     map[int64]*model.Staff
	Next     int64
	Err      error
}

// NewStaffRepositoryStub constructs stub repository with initialized maps.
func NewStaffRepositoryStub() *StaffRepositoryStub {
	return &StaffRepositoryStub{
		Accounts: make(map[string]*model.Staff),
		ByID:     make(map[int64]*model.Staff),
		Next:     1,
	}
}

// Create registers an account unless already exists or stub has explicit error.
func (s *StaffRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.Staff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Accounts == nil {
		s.Accounts = make(map[string]*model.Staff)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.Staff)
	}
	if _, exists := s.Accounts[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	account := &model.Staff{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Accounts[login] = account
	s.ByID[account.ID] = account
	return account, nil
}

// GetByLogin fetches account by login or returns not found.
func (s *StaffRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Staff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if account, ok := s.Accounts[login]; ok {
		return account, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches account by identifier or returns not found.
func (s *StaffRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if account, ok := s.ByID[id]; ok {
		return account, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize behaviour per method.
type OrderRepositoryStub struct {
	CreateFn        func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn       func(context.Context, int64) (*model.Order, error)
	ListFn          func(context.Context) ([]model.Order, error)
	ListByPatientFn func(context.Context, int64) ([]model.Order, error)
	UpdateStatusFn  func(context.Context, int64, model.OrderStatus, model.OrderStatus) error
	UpdateRemarksFn func(context.Context, int64, model.OrderRemarks, model.OrderRemarks, bool) error
	RefundFn        func(context.Context, int64, string, int64) error

	Orders        []model.Order
	StatusCalls   []StatusUpdateCall
	RemarksCalls  []RemarksUpdateCall
	RefundedCalls []RefundCall
}

// StatusUpdateCall records one conditional status update.
type StatusUpdateCall struct {
	OrderID int64
	From    model.OrderStatus
	To      model.OrderStatus
}

// RemarksUpdateCall records one conditional remarks update.
type RemarksUpdateCall struct {
	OrderID     int64
	From        model.OrderRemarks
	To          model.OrderRemarks
	RequirePaid bool
}

// RefundCall records one refund invocation.
type RefundCall struct {
	OrderID int64
	Reason  string
	ActorID int64
}

// Create returns the configured response or echoes the order with an ID.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	order.ID = int64(len(s.Orders) + 1)
	s.Orders = append(s.Orders, *order)
	return order, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns orders from configured slice.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Orders, nil
}

// ListByPatient filters stored orders by patient.
func (s *OrderRepositoryStub) ListByPatient(ctx context.Context, patientID int64) ([]model.Order, error) {
	if s.ListByPatientFn != nil {
		return s.ListByPatientFn(ctx, patientID)
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.PatientID == patientID {
			result = append(result, o)
		}
	}
	return result, nil
}

// UpdateStatus records the invocation and mutates the stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, from, to model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, from, to)
	}
	s.StatusCalls = append(s.StatusCalls, StatusUpdateCall{OrderID: orderID, From: from, To: to})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			if s.Orders[i].Status != from {
				return domainErrors.ErrConcurrencyConflict
			}
			s.Orders[i].Status = to
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// UpdateRemarks records the invocation and enforces the payment gate.
func (s *OrderRepositoryStub) UpdateRemarks(ctx context.Context, orderID int64, from, to model.OrderRemarks, requirePaid bool) error {
	if s.UpdateRemarksFn != nil {
		return s.UpdateRemarksFn(ctx, orderID, from, to, requirePaid)
	}
	s.RemarksCalls = append(s.RemarksCalls, RemarksUpdateCall{OrderID: orderID, From: from, To: to, RequirePaid: requirePaid})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			if s.Orders[i].Remarks != from {
				return domainErrors.ErrConcurrencyConflict
			}
			if requirePaid && s.Orders[i].Status != model.OrderStatusPaid {
				return domainErrors.ErrPaymentRequired
			}
			s.Orders[i].Remarks = to
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Refund records the invocation and flips the stored order.
func (s *OrderRepositoryStub) Refund(ctx context.Context, orderID int64, reason string, actorID int64) error {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, orderID, reason, actorID)
	}
	s.RefundedCalls = append(s.RefundedCalls, RefundCall{OrderID: orderID, Reason: reason, ActorID: actorID})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			if s.Orders[i].Status != model.OrderStatusPaid {
				return domainErrors.ErrConcurrencyConflict
			}
			s.Orders[i].Status = model.OrderStatusRefunded
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// PaymentRepositoryStub lets tests control settlement outcomes.
type PaymentRepositoryStub struct {
	CreateCombinedFn func(context.Context, *model.Payment) (*model.Payment, error)
	GetByOrderFn     func(context.Context, int64) (*model.Payment, error)
	Created          []model.Payment
	Payment          *model.Payment
	Err              error
}

// CreateCombined records the payment or returns the configured error.
func (s *PaymentRepositoryStub) CreateCombined(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if s.CreateCombinedFn != nil {
		return s.CreateCombinedFn(ctx, payment)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	payment.ID = int64(len(s.Created) + 1)
	s.Created = append(s.Created, *payment)
	return payment, nil
}

// GetByOrder returns the configured payment.
func (s *PaymentRepositoryStub) GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	if s.GetByOrderFn != nil {
		return s.GetByOrderFn(ctx, orderID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Payment != nil {
		return s.Payment, nil
	}
	return nil, domainErrors.ErrNotFound
}

// BatchRepositoryStub keeps batches in a slice.
type BatchRepositoryStub struct {
	CreateFn        func(context.Context, *model.ProductBatch) (*model.ProductBatch, error)
	ListByProductFn func(context.Context, int64) ([]model.ProductBatch, error)
	Batches         []model.ProductBatch
	Err             error
}

// Create appends the batch or returns the configured error.
func (s *BatchRepositoryStub) Create(ctx context.Context, batch *model.ProductBatch) (*model.ProductBatch, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, batch)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	batch.ID = int64(len(s.Batches) + 1)
	s.Batches = append(s.Batches, *batch)
	return batch, nil
}

// ListByProduct filters stored batches by product.
func (s *BatchRepositoryStub) ListByProduct(ctx context.Context, productID int64) ([]model.ProductBatch, error) {
	if s.ListByProductFn != nil {
		return s.ListByProductFn(ctx, productID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.ProductBatch
	for _, b := range s.Batches {
		if b.ProductID == productID {
			result = append(result, b)
		}
	}
	return result, nil
}

// ProductRepositoryStub keeps the catalog in-memory.
type ProductRepositoryStub struct {
	CreateFn  func(context.Context, string, float64) (*model.Product, error)
	GetByIDFn func(context.Context, int64) (*model.Product, error)
	ListFn    func(context.Context) ([]model.Product, error)
	Products  []model.Product
	Err       error
}

// Create appends the product unless the name is taken.
func (s *ProductRepositoryStub) Create(ctx context.Context, name string, unitPrice float64) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, name, unitPrice)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.Name == name {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	product := model.Product{ID: int64(len(s.Products) + 1), Name: name, UnitPrice: unitPrice}
	s.Products = append(s.Products, product)
	return &product, nil
}

// GetByID fetches a product or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns the stored catalog.
func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Products, nil
}

// PatientRepositoryStub keeps patients in-memory.
type PatientRepositoryStub struct {
	CreateFn  func(context.Context, string, string) (*model.Patient, error)
	GetByIDFn func(context.Context, int64) (*model.Patient, error)
	Patients  []model.Patient
	Err       error
}

// Create appends the patient record.
func (s *PatientRepositoryStub) Create(ctx context.Context, fullName, ward string) (*model.Patient, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, fullName, ward)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	patient := model.Patient{ID: int64(len(s.Patients) + 1), FullName: fullName, Ward: ward}
	s.Patients = append(s.Patients, patient)
	return &patient, nil
}

// GetByID fetches a patient or returns not found.
func (s *PatientRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Patients {
		if p.ID == id {
			patient := p
			return &patient, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// AuditRepositoryStub records appended events.
type AuditRepositoryStub struct {
	AppendFn func(context.Context, model.AuditEvent) error
	Events   []model.AuditEvent
	Err      error

	mu sync.Mutex
}

// Append records the event or returns the configured error.
func (s *AuditRepositoryStub) Append(ctx context.Context, event model.AuditEvent) error {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, event)
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
	return nil
}

// Recorded returns a snapshot of appended events.
func (s *AuditRepositoryStub) Recorded() []model.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AuditEvent, len(s.Events))
	copy(out, s.Events)
	return out
}

// EmitterStub collects emitted audit events synchronously.
type EmitterStub struct {
	Events []model.AuditEvent
}

// Emit appends the event.
func (s *EmitterStub) Emit(event model.AuditEvent) {
	s.Events = append(s.Events, event)
}

// NotifierStub records delivered events.
type NotifierStub struct {
	NotifyFn func(context.Context, model.AuditEvent) error
	Events   []model.AuditEvent
	Err      error

	mu sync.Mutex
}

// Notify records the event or returns the configured error.
func (s *NotifierStub) Notify(ctx context.Context, event model.AuditEvent) error {
	if s.NotifyFn != nil {
		return s.NotifyFn(ctx, event)
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
	return nil
}

// Delivered returns a snapshot of notified events.
func (s *NotifierStub) Delivered() []model.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AuditEvent, len(s.Events))
	copy(out, s.Events)
	return out
}

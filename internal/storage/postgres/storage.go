package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polvex/pharmatrack/internal/domain/errors"
	"github.com/polvex/pharmatrack/internal/domain/model"
	"github.com/polvex/pharmatrack/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; tests substitute
// a mock pool through it.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

type batchRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type patientRepository struct {
	storage *Storage
}

type staffRepository struct {
	storage *Storage
}

type auditRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) Batches() repository.BatchRepository {
	return &batchRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Patients() repository.PatientRepository {
	return &patientRepository{storage: s}
}

func (s *Storage) Staff() repository.StaffRepository {
	return &staffRepository{storage: s}
}

func (s *Storage) Audit() repository.AuditRepository {
	return &auditRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS staff (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS patients (
            id SERIAL PRIMARY KEY,
            full_name TEXT NOT NULL,
            ward TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS product_batches (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL REFERENCES products(id),
            quantity INT NOT NULL CHECK (quantity >= 0),
            manufacture_date TIMESTAMPTZ NOT NULL,
            expiry_date TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            patient_id BIGINT NOT NULL REFERENCES patients(id),
            kind TEXT NOT NULL,
            status TEXT NOT NULL,
            remarks TEXT NOT NULL DEFAULT '',
            created_by BIGINT NOT NULL REFERENCES staff(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            prepared_at TIMESTAMPTZ,
            dispensed_at TIMESTAMPTZ,
            paid_at TIMESTAMPTZ,
            refunded_at TIMESTAMPTZ,
            refund_reason TEXT,
            refunded_by BIGINT
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            quantity INT NOT NULL CHECK (quantity > 0),
            unit_price DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id SERIAL PRIMARY KEY,
            reference TEXT UNIQUE NOT NULL,
            amount_paid DOUBLE PRECISION NOT NULL,
            discount_type TEXT NOT NULL,
            discount_percent DOUBLE PRECISION NOT NULL,
            discount_amount DOUBLE PRECISION NOT NULL,
            vat_amount DOUBLE PRECISION NOT NULL,
            total_due DOUBLE PRECISION NOT NULL,
            change_due DOUBLE PRECISION NOT NULL,
            processed_by BIGINT NOT NULL REFERENCES staff(id),
            processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payment_orders (
            payment_id BIGINT NOT NULL REFERENCES payments(id),
            order_id BIGINT NOT NULL REFERENCES orders(id),
            PRIMARY KEY (payment_id, order_id)
        )`,
		`CREATE TABLE IF NOT EXISTS batch_allocations (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            batch_id BIGINT NOT NULL REFERENCES product_batches(id),
            quantity INT NOT NULL CHECK (quantity > 0),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS audit_log (
            id SERIAL PRIMARY KEY,
            action TEXT NOT NULL,
            entity_type TEXT NOT NULL,
            entity_id BIGINT NOT NULL,
            description TEXT NOT NULL,
            actor_id BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_patient ON orders(patient_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_batches_product ON product_batches(product_id, expiry_date)`,
		`CREATE INDEX IF NOT EXISTS idx_allocations_order ON batch_allocations(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, patient_id, kind, status, remarks, created_by, created_at, updated_at,
                      prepared_at, dispensed_at, paid_at, refunded_at, refund_reason, refunded_by`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.PatientID, &o.Kind, &o.Status, &o.Remarks, &o.CreatedBy,
		&o.CreatedAt, &o.UpdatedAt, &o.PreparedAt, &o.DispensedAt, &o.PaidAt, &o.RefundedAt,
		&o.RefundReason, &o.RefundedBy)
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (patient_id, kind, status, remarks, created_by)
                             VALUES ($1, $2, $3, $4, $5)
                             RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertOrder, order.PatientID, order.Kind, order.Status, order.Remarks, order.CreatedBy).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, quantity, unit_price)
                            VALUES ($1, $2, $3, $4) RETURNING id`
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.QueryRow(ctx, insertItem, order.ID, order.Items[i].ProductID, order.Items[i].Quantity, order.Items[i].UnitPrice).
				Scan(&order.Items[i].ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var order model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, id), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT id, order_id, product_id, quantity, unit_price
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.listOrders(ctx, query)
}

func (r *orderRepository) ListByPatient(ctx context.Context, patientID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE patient_id=$1 ORDER BY created_at DESC`
	return r.listOrders(ctx, query, patientID)
}

func (r *orderRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, from, to model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, to, orderID, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.classifyStatusMiss(ctx, orderID)
	}
	return nil
}

func (r *orderRepository) classifyStatusMiss(ctx context.Context, orderID int64) error {
	const query = `SELECT status FROM orders WHERE id=$1`
	var status model.OrderStatus
	if err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return domainErrors.ErrConcurrencyConflict
}

func (r *orderRepository) UpdateRemarks(ctx context.Context, orderID int64, from, to model.OrderRemarks, requirePaid bool) error {
	query := `UPDATE orders SET remarks=$1, updated_at=NOW()`
	switch to {
	case model.RemarksPrepared, model.RemarksReady:
		query += `, prepared_at=NOW()`
	case model.RemarksDispensed, model.RemarksReleased:
		query += `, dispensed_at=NOW()`
	}
	query += ` WHERE id=$2 AND remarks=$3`
	if requirePaid {
		query += ` AND status='paid'`
	}

	tag, err := r.storage.pool.Exec(ctx, query, to, orderID, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.classifyRemarksMiss(ctx, orderID, from, requirePaid)
	}
	return nil
}

func (r *orderRepository) classifyRemarksMiss(ctx context.Context, orderID int64, from model.OrderRemarks, requirePaid bool) error {
	const query = `SELECT status, remarks FROM orders WHERE id=$1`
	var status model.OrderStatus
	var remarks model.OrderRemarks
	if err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&status, &remarks); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	// Remarks still match, only the payment gate blocked the update.
	if requirePaid && remarks == from && status != model.OrderStatusPaid {
		return domainErrors.ErrPaymentRequired
	}
	return domainErrors.ErrConcurrencyConflict
}

func (r *orderRepository) Refund(ctx context.Context, orderID int64, reason string, actorID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE orders
                       SET status=$1, refund_reason=$2, refunded_by=$3, refunded_at=NOW(), updated_at=NOW()
                       WHERE id=$4 AND status=$5`
		tag, err := tx.Exec(ctx, query, model.OrderStatusRefunded, reason, actorID, orderID, model.OrderStatusPaid)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return r.classifyStatusMiss(ctx, orderID)
		}
		return r.storage.restoreAllocationsTx(ctx, tx, orderID)
	})
}

// restoreAllocationsTx returns previously debited quantities to the exact
// batches they were taken from and clears the trace.
func (s *Storage) restoreAllocationsTx(ctx context.Context, tx pgx.Tx, orderID int64) error {
	const selectQuery = `SELECT batch_id, quantity FROM batch_allocations WHERE order_id=$1`
	rows, err := tx.Query(ctx, selectQuery, orderID)
	if err != nil {
		return err
	}

	var debits []model.BatchDebit
	for rows.Next() {
		var d model.BatchDebit
		if err := rows.Scan(&d.BatchID, &d.Quantity); err != nil {
			rows.Close()
			return err
		}
		debits = append(debits, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	const restoreQuery = `UPDATE product_batches SET quantity = quantity + $1 WHERE id=$2`
	for _, d := range debits {
		if _, err := tx.Exec(ctx, restoreQuery, d.Quantity, d.BatchID); err != nil {
			return err
		}
	}

	const clearQuery = `DELETE FROM batch_allocations WHERE order_id=$1`
	if _, err := tx.Exec(ctx, clearQuery, orderID); err != nil {
		return err
	}
	return nil
}

// allocateTx deducts the requested quantity first-expiring-first-out, locking
// the product's eligible batches so concurrent settlements serialize and the
// sufficiency check holds through the decrement.
func (s *Storage) allocateTx(ctx context.Context, tx pgx.Tx, orderID, productID int64, quantity int) error {
	const selectQuery = `SELECT id, product_id, quantity, manufacture_date, expiry_date, created_at
                         FROM product_batches
                         WHERE product_id=$1 AND quantity > 0 AND expiry_date > NOW()
                         ORDER BY expiry_date
                         FOR UPDATE`
	rows, err := tx.Query(ctx, selectQuery, productID)
	if err != nil {
		return err
	}

	var batches []model.ProductBatch
	for rows.Next() {
		var b model.ProductBatch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.Quantity, &b.ManufactureDate, &b.ExpiryDate, &b.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		batches = append(batches, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	debits, err := model.PlanAllocation(batches, quantity, time.Now())
	if err != nil {
		return err
	}

	const debitQuery = `UPDATE product_batches SET quantity = quantity - $1 WHERE id=$2 AND quantity >= $1`
	const traceQuery = `INSERT INTO batch_allocations (order_id, batch_id, quantity) VALUES ($1, $2, $3)`
	for _, d := range debits {
		tag, err := tx.Exec(ctx, debitQuery, d.Quantity, d.BatchID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrConcurrencyConflict
		}
		if _, err := tx.Exec(ctx, traceQuery, orderID, d.BatchID, d.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) CreateCombined(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertPayment = `INSERT INTO payments (reference, amount_paid, discount_type, discount_percent,
                                                     discount_amount, vat_amount, total_due, change_due, processed_by)
                               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                               RETURNING id, processed_at`
		if err := tx.QueryRow(ctx, insertPayment,
			payment.Reference, payment.AmountPaid, payment.DiscountType, payment.DiscountPercent,
			payment.DiscountAmount, payment.VATAmount, payment.TotalDue, payment.Change, payment.ProcessedBy).
			Scan(&payment.ID, &payment.ProcessedAt); err != nil {
			return err
		}

		const markPaid = `UPDATE orders SET status=$1, paid_at=NOW(), updated_at=NOW() WHERE id=$2 AND status=$3`
		const linkOrder = `INSERT INTO payment_orders (payment_id, order_id) VALUES ($1, $2)`
		for _, orderID := range payment.OrderIDs {
			tag, err := tx.Exec(ctx, markPaid, model.OrderStatusPaid, orderID, model.OrderStatusForPayment)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return domainErrors.ErrConcurrencyConflict
			}
			if _, err := tx.Exec(ctx, linkOrder, payment.ID, orderID); err != nil {
				return err
			}

			items, err := r.orderItemsTx(ctx, tx, orderID)
			if err != nil {
				return err
			}
			for _, item := range items {
				if err := r.storage.allocateTx(ctx, tx, orderID, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepository) orderItemsTx(ctx context.Context, tx pgx.Tx, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT product_id, quantity FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *paymentRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	const query = `SELECT p.id, p.reference, p.amount_paid, p.discount_type, p.discount_percent,
                          p.discount_amount, p.vat_amount, p.total_due, p.change_due, p.processed_by, p.processed_at
                   FROM payments p
                   JOIN payment_orders po ON po.payment_id = p.id
                   WHERE po.order_id=$1`
	var p model.Payment
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(&p.ID, &p.Reference, &p.AmountPaid,
		&p.DiscountType, &p.DiscountPercent, &p.DiscountAmount, &p.VATAmount, &p.TotalDue,
		&p.Change, &p.ProcessedBy, &p.ProcessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const ordersQuery = `SELECT order_id FROM payment_orders WHERE payment_id=$1 ORDER BY order_id`
	rows, err := r.storage.pool.Query(ctx, ordersQuery, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		p.OrderIDs = append(p.OrderIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// --- BatchRepository implementation ---

func (r *batchRepository) Create(ctx context.Context, batch *model.ProductBatch) (*model.ProductBatch, error) {
	const query = `INSERT INTO product_batches (product_id, quantity, manufacture_date, expiry_date)
                   VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, batch.ProductID, batch.Quantity, batch.ManufactureDate, batch.ExpiryDate).
		Scan(&batch.ID, &batch.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return batch, nil
}

func (r *batchRepository) ListByProduct(ctx context.Context, productID int64) ([]model.ProductBatch, error) {
	const query = `SELECT id, product_id, quantity, manufacture_date, expiry_date, created_at
                   FROM product_batches WHERE product_id=$1 ORDER BY expiry_date`
	rows, err := r.storage.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ProductBatch
	for rows.Next() {
		var b model.ProductBatch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.Quantity, &b.ManufactureDate, &b.ExpiryDate, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, name string, unitPrice float64) (*model.Product, error) {
	const query = `INSERT INTO products (name, unit_price) VALUES ($1, $2) RETURNING id, created_at`
	product := model.Product{Name: name, UnitPrice: unitPrice}
	err := r.storage.pool.QueryRow(ctx, query, name, unitPrice).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, name, unit_price, created_at FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.UnitPrice, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT id, name, unit_price, created_at FROM products ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- PatientRepository implementation ---

func (r *patientRepository) Create(ctx context.Context, fullName, ward string) (*model.Patient, error) {
	const query = `INSERT INTO patients (full_name, ward) VALUES ($1, $2) RETURNING id, created_at`
	patient := model.Patient{FullName: fullName, Ward: ward}
	if err := r.storage.pool.QueryRow(ctx, query, fullName, ward).Scan(&patient.ID, &patient.CreatedAt); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	const query = `SELECT id, full_name, ward, created_at FROM patients WHERE id=$1`
	var p model.Patient
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.FullName, &p.Ward, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// --- StaffRepository implementation ---

func (r *staffRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.Staff, error) {
	const query = `INSERT INTO staff (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var s model.Staff
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	s.Login = login
	s.PasswordHash = passwordHash
	s.Role = role
	return &s, nil
}

func (r *staffRepository) GetByLogin(ctx context.Context, login string) (*model.Staff, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM staff WHERE login=$1`
	var s model.Staff
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&s.ID, &s.Login, &s.PasswordHash, &s.Role, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM staff WHERE id=$1`
	var s model.Staff
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Login, &s.PasswordHash, &s.Role, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// --- AuditRepository implementation ---

func (r *auditRepository) Append(ctx context.Context, event model.AuditEvent) error {
	const query = `INSERT INTO audit_log (action, entity_type, entity_id, description, actor_id, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.storage.pool.Exec(ctx, query, event.Action, event.EntityType, event.EntityID,
		event.Description, event.ActorID, event.Timestamp)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/nickatkani/kani-hampers/internal/domain"
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type OrdersRepository struct {
	db *sql.DB
}

func NewOrdersRepository(cred *Credentials) (*OrdersRepository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &OrdersRepository{db: db}, nil
}

func (r *OrdersRepository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "orders_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *OrdersRepository) Close() error {
	return r.db.Close()
}

// orderRow groups the JSON-encoded columns so scanning stays in one place.
type orderRow struct {
	photos []byte
	rakhis []byte
	addons []byte
}

func (r *OrdersRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	photosJSON, rakhisJSON, addonsJSON, err := marshalOrderJSON(order)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create order tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO orders
		(id, customer_name, email, phone, address, pincode,
		 hamper_type, hamper_title, hamper_price, photo, photos, message,
		 additional_rakhis, addons, total_amount, status, payment_status,
		 payment_id, delivery_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`

	_, insertErr := tx.ExecContext(ctx, query,
		order.ID,
		order.CustomerName,
		order.Email,
		order.Phone,
		order.Address,
		order.Pincode,
		order.HamperType,
		order.HamperTitle,
		order.HamperPrice,
		order.Photo,
		photosJSON,
		order.Message,
		rakhisJSON,
		addonsJSON,
		order.TotalAmount,
		order.Status,
		order.PaymentStatus,
		order.PaymentID,
		order.DeliveryDate,
		order.CreatedAt,
		order.UpdatedAt)

	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("insert order: %w", insertErr)
	}

	if err := insertOutboxEvent(ctx, tx, EventOrderCreated, order); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create order tx: %w", err)
	}
	return nil
}

var ErrDuplicateOrder = errors.New("order already exists")

const orderColumns = `id, customer_name, email, phone, address, pincode,
	 hamper_type, hamper_title, hamper_price, photo, photos, message,
	 additional_rakhis, addons, total_amount, status, payment_status,
	 payment_id, delivery_date, created_at, updated_at`

func (r *OrdersRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

func (r *OrdersRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}

	return order, nil
}

func (r *OrdersRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin status update tx: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := tx.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	payload, err := json.Marshal(map[string]interface{}{
		"order_id":   id,
		"status":     status,
		"changed_at": time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}

	outboxQuery := `INSERT INTO order_outbox (id, event_type, payload, created_at)
		VALUES ($1, $2, $3, NOW())`
	if _, err := tx.ExecContext(ctx, outboxQuery, uuid.New(), EventOrderStatusChanged, payload); err != nil {
		return fmt.Errorf("insert status event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit status update tx: %w", err)
	}
	return nil
}

func (r *OrdersRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *OrdersRepository) GetUnprocessedEvents(ctx context.Context, limit int) ([]OutboxEvent, error) {
	query := `SELECT id, event_type, payload, created_at
		FROM order_outbox WHERE processed_at IS NULL
		ORDER BY created_at ASC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}

	return events, nil
}

func (r *OrdersRepository) MarkEventAsProcessed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE order_outbox SET processed_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark event processed: %w", err)
	}
	return nil
}

func insertOutboxEvent(ctx context.Context, tx *sql.Tx, eventType string, order *domain.Order) error {
	payload, err := json.Marshal(map[string]interface{}{
		"order_id":      order.ID,
		"customer_name": order.CustomerName,
		"hamper_type":   order.HamperType,
		"total_amount":  order.TotalAmount,
		"status":        order.Status,
		"created_at":    order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	query := `INSERT INTO order_outbox (id, event_type, payload, created_at)
		VALUES ($1, $2, $3, NOW())`
	if _, err := tx.ExecContext(ctx, query, uuid.New(), eventType, payload); err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

func marshalOrderJSON(order *domain.Order) (photos, rakhis, addons []byte, err error) {
	photos, err = json.Marshal(order.Photos)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal photos: %w", err)
	}
	rakhis, err = json.Marshal(order.AdditionalRakhis)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal additional rakhis: %w", err)
	}
	addons, err = json.Marshal(order.Addons)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal addons: %w", err)
	}
	return photos, rakhis, addons, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var raw orderRow

	err := row.Scan(
		&order.ID,
		&order.CustomerName,
		&order.Email,
		&order.Phone,
		&order.Address,
		&order.Pincode,
		&order.HamperType,
		&order.HamperTitle,
		&order.HamperPrice,
		&order.Photo,
		&raw.photos,
		&order.Message,
		&raw.rakhis,
		&raw.addons,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentStatus,
		&order.PaymentID,
		&order.DeliveryDate,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw.photos, &order.Photos); err != nil {
		return nil, fmt.Errorf("unmarshal photos: %w", err)
	}
	if err := json.Unmarshal(raw.rakhis, &order.AdditionalRakhis); err != nil {
		return nil, fmt.Errorf("unmarshal additional rakhis: %w", err)
	}
	if err := json.Unmarshal(raw.addons, &order.Addons); err != nil {
		return nil, fmt.Errorf("unmarshal addons: %w", err)
	}

	return &order, nil
}

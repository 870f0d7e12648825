package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Schema records. Repositories read and write these tables with plain SQL;
// the structs only describe the DDL.

type floorSchema struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (floorSchema) TableName() string { return "floors" }

type tableSchema struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FloorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Label     string    `gorm:"type:varchar(50);not null"`
	Seats     int       `gorm:"not null;default:0"`
	Status    string    `gorm:"type:varchar(16);not null;default:'FREE';check:status IN ('FREE','OCCUPIED','RESERVED')"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (tableSchema) TableName() string { return "tables" }

type terminalSchema struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BranchID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name      string     `gorm:"type:varchar(100);not null"`
	StaffID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"not null;default:now()"`
	UpdatedAt time.Time  `gorm:"not null;default:now()"`
}

func (terminalSchema) TableName() string { return "terminals" }

type sessionSchema struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TerminalID uuid.UUID       `gorm:"type:uuid;not null;index"`
	StaffID    *uuid.UUID      `gorm:"type:uuid"`
	OpenedAt   time.Time       `gorm:"not null;default:now()"`
	ClosedAt   *time.Time
	TotalSales decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
}

func (sessionSchema) TableName() string { return "sessions" }

type productSchema struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BranchID  *uuid.UUID      `gorm:"type:uuid;index"`
	Name      string          `gorm:"type:varchar(150);not null"`
	Category  string          `gorm:"type:varchar(100);not null;default:''"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null;check:price >= 0"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time       `gorm:"not null;default:now()"`
	UpdatedAt time.Time       `gorm:"not null;default:now()"`
}

func (productSchema) TableName() string { return "products" }

type orderSchema struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BranchID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_branch_status,priority:1"`
	SessionID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	TableID     *uuid.UUID      `gorm:"type:uuid;index:idx_orders_table_status,priority:1"`
	CustomerID  *uuid.UUID      `gorm:"type:uuid"`
	OrderType   string          `gorm:"type:varchar(16);not null;check:order_type IN ('DINE_IN','TAKEAWAY')"`
	Status      string          `gorm:"type:varchar(16);not null;index:idx_orders_branch_status,priority:2;index:idx_orders_table_status,priority:2"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null;default:now()"`
	UpdatedAt   time.Time       `gorm:"not null;default:now()"`
}

func (orderSchema) TableName() string { return "orders" }

type orderItemSchema struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(150);not null"`
	Quantity    int             `gorm:"not null;check:quantity > 0"`
	PriceAtTime decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	// Seq keeps lines in insertion order; created_at is shared by one transaction.
	Seq       int64     `gorm:"type:bigserial;not null"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (orderItemSchema) TableName() string { return "order_items" }

type orderStatusLogSchema struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status    string     `gorm:"type:varchar(16);not null"`
	ChangedBy *uuid.UUID `gorm:"type:uuid"`
	Note      string     `gorm:"type:text;not null;default:''"`
	ChangedAt time.Time  `gorm:"not null;default:now()"`
}

func (orderStatusLogSchema) TableName() string { return "order_status_logs" }

type paymentSchema struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	Method               string          `gorm:"type:varchar(16);not null;check:method IN ('CASH','UPI','CARD')"`
	Amount               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status               string          `gorm:"type:varchar(16);not null"`
	TransactionReference *string         `gorm:"type:varchar(100)"`
	CreatedAt            time.Time       `gorm:"not null;default:now()"`
}

func (paymentSchema) TableName() string { return "payments" }

type receiptSchema struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiptNumber string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	IssuedAt      time.Time `gorm:"not null;default:now()"`
}

func (receiptSchema) TableName() string { return "receipts" }

type staffSchema struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Name         string    `gorm:"type:varchar(150);not null"`
	Role         string    `gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
	UpdatedAt    time.Time `gorm:"not null;default:now()"`
}

func (staffSchema) TableName() string { return "staff" }

// Guards AutoMigrate cannot express.
var rawDDL = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_sessions_open_terminal ON sessions (terminal_id) WHERE closed_at IS NULL`,
	`CREATE SEQUENCE IF NOT EXISTS receipt_number_seq START 1`,
	`CREATE INDEX IF NOT EXISTS idx_orders_active_created ON orders (created_at) WHERE status <> 'COMPLETED'`,
}

// Migrate brings the schema up to date over the existing pool.
func Migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open gorm: %w", err)
	}
	gdb = gdb.WithContext(ctx)

	if err := gdb.AutoMigrate(
		&floorSchema{},
		&tableSchema{},
		&terminalSchema{},
		&sessionSchema{},
		&productSchema{},
		&orderSchema{},
		&orderItemSchema{},
		&orderStatusLogSchema{},
		&paymentSchema{},
		&receiptSchema{},
		&staffSchema{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range rawDDL {
		if err := gdb.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate %q: %w", stmt, err)
		}
	}
	log.Info("schema migrated", "action", "db_migrate")
	return nil
}

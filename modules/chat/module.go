package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/jabezasir421/Chat-app-api/domain/chat"
	"github.com/jabezasir421/Chat-app-api/events"
)

// ChatModule provides broadcast chat services via GORM + SQLite.
type ChatModule struct {
	db       *gorm.DB
	repo     *Repository
	eventBus mono.EventBus
	dbPath   string
	now      func() time.Time
}

// Compile-time interface checks.
var _ mono.Module = (*ChatModule)(nil)
var _ mono.ServiceProviderModule = (*ChatModule)(nil)
var _ mono.EventEmitterModule = (*ChatModule)(nil)
var _ mono.HealthCheckableModule = (*ChatModule)(nil)

// busyTimeoutMS is how long SQLite waits for a lock held by another
// connection to the same file before giving up.
const busyTimeoutMS = 5000

// sqliteDSN appends the busy timeout so concurrent writers from other
// modules sharing the file wait instead of failing with "database is locked".
func sqliteDSN(path string) string {
	return fmt.Sprintf("%s?_busy_timeout=%d", path, busyTimeoutMS)
}

// NewModule creates a new ChatModule.
func NewModule() *ChatModule {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "chatapp.db"
	}
	return &ChatModule{
		dbPath: dbPath,
		now:    time.Now,
	}
}

// Name returns the module name.
func (m *ChatModule) Name() string {
	return "chat"
}

// SetEventBus receives the EventBus from the framework.
func (m *ChatModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *ChatModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.MessageSentV1.ToBase(),
	}
}

// Health performs a health check on the chat module.
func (m *ChatModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *ChatModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "submit", json.Unmarshal, json.Marshal, m.submitMessage,
	); err != nil {
		return fmt.Errorf("failed to register submit service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "recent", json.Unmarshal, json.Marshal, m.recentMessages,
	); err != nil {
		return fmt.Errorf("failed to register recent service: %w", err)
	}

	log.Printf("[chat] Registered services: services.chat.{submit,recent}")
	return nil
}

// Start initializes the database connection and runs migrations.
func (m *ChatModule) Start(_ context.Context) error {
	log.Printf("[chat] Connecting to SQLite database: %s", m.dbPath)

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(sqliteDSN(m.dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	m.db = db

	if err := m.db.AutoMigrate(&domain.Message{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.repo = NewRepository(m.db)

	log.Println("[chat] Module started successfully")
	return nil
}

// Stop gracefully closes the database connection.
func (m *ChatModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	log.Println("[chat] Closing database connection...")

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[chat] Database connection closed")
	return nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.opentelemetry.io/otel/trace"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormtracing "gorm.io/plugin/opentelemetry/tracing"

	errorz "github.com/jack5341/otel-order-chain/internal/errors"
	"github.com/jack5341/otel-order-chain/internal/models"
	"github.com/jack5341/otel-order-chain/internal/tracing"
)

const System = "mysql"

// ConnInfo is what the store span is allowed to know about the connection.
// The password never leaves ParseConnInfo.
type ConnInfo struct {
	System string
	Name   string
	Host   string
	User   string
}

func ParseConnInfo(dsn string) (ConnInfo, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return ConnInfo{}, err
	}

	host := cfg.Addr
	if h, _, err := net.SplitHostPort(cfg.Addr); err == nil {
		host = h
	}

	return ConnInfo{
		System: System,
		Name:   cfg.DBName,
		Host:   host,
		User:   cfg.User,
	}, nil
}

type Store struct {
	db              *gorm.DB
	info            ConnInfo
	insertStatement string
}

// Open connects to MySQL and fails unless the server answers a ping.
func Open(dsn string, tp trace.TracerProvider) (*Store, error) {
	info, err := ParseConnInfo(dsn)
	if err != nil {
		return nil, errors.Join(errorz.ErrInvalidConfig, err)
	}

	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(time.Minute * 5)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)

	// Ensure connection is alive at startup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return New(sqlDB, info, tp)
}

// New wraps an already opened pool. Statement-level spans are emitted through tp.
func New(sqlDB *sql.DB, info ConnInfo, tp trace.TracerProvider) (*Store, error) {
	gormDB, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}

	// Rendered before the tracing plugin is installed so the dry run leaves no span behind.
	dry := gormDB.Session(&gorm.Session{DryRun: true}).Create(&models.Order{CreatedAt: time.Unix(0, 0).UTC()})
	if dry.Error != nil {
		return nil, dry.Error
	}

	if err := gormDB.Use(gormtracing.NewPlugin(
		gormtracing.WithTracerProvider(tp),
		gormtracing.WithAttributes(tracing.DBName.String(info.Name)),
		gormtracing.WithoutMetrics(),
	)); err != nil {
		return nil, err
	}

	return &Store{db: gormDB, info: info, insertStatement: dry.Statement.SQL.String()}, nil
}

func (s *Store) Info() ConnInfo { return s.info }

// InsertStatement is the parameterized statement CreateOrder executes.
func (s *Store) InsertStatement() string { return s.insertStatement }

// CreateOrder inserts order on a connection owned by this call for its whole
// duration and stores the generated id in order.ID. The insert runs in its
// own transaction, so either the row exists and the id is set or neither.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	err := s.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"fmt"
	"time"

	"github.com/go-arcade/confhub/pkg/log"
	"github.com/go-arcade/confhub/pkg/trace"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// Manager owns the process-wide gorm connection.
type Manager interface {
	// Primary returns the gorm handle; reads go to replicas when DBResolver is configured
	Primary() *gorm.DB

	Close() error
}

type managerImpl struct {
	db *gorm.DB
}

func (m *managerImpl) Primary() *gorm.DB {
	return m.db
}

func (m *managerImpl) Close() error {
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// NewManager opens the configured database, registers tracing and, when
// enabled, migrates the registered models.
func NewManager(cfg Database) (Manager, error) {
	cfg.SetDefaults()

	db, err := newConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect %s: %w", cfg.Type, err)
	}
	log.Infow("database connected", "type", cfg.Type)

	if err := trace.RegisterGormPlugin(db, cfg.Type, false); err != nil {
		log.Warnw("failed to register OpenTelemetry gorm plugin", "error", err)
	}

	if cfg.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	return &managerImpl{db: db}, nil
}

func newConnection(cfg Database) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         newGormLogger(cfg.OutPut),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dataTablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	src := cfg.MySQL
	if cfg.Type == TypePostgres {
		src = cfg.Postgres
	}
	hasPrimary := len(src.Primary) > 0
	hasReplicas := len(src.Replicas) > 0

	if cfg.Type != TypeSQLite && (hasPrimary || hasReplicas) {
		resolverConfig := dbresolver.Config{
			TraceResolverMode: cfg.OutPut,
		}
		if resolverConfig.Sources, err = buildDialectors(cfg.Type, src.SSLMode, src.Primary); err != nil {
			return nil, fmt.Errorf("failed to build primary dialectors: %w", err)
		}
		if resolverConfig.Replicas, err = buildDialectors(cfg.Type, src.SSLMode, src.Replicas); err != nil {
			return nil, fmt.Errorf("failed to build replicas dialectors: %w", err)
		}

		err = db.Use(dbresolver.Register(resolverConfig).
			SetConnMaxIdleTime(GetConnMaxIdleTime(cfg.MaxIdleTime)).
			SetConnMaxLifetime(GetConnMaxLifetime(cfg.MaxLifetime)).
			SetMaxIdleConns(cfg.MaxIdleConns).
			SetMaxOpenConns(cfg.MaxOpenConns))
		if err != nil {
			return nil, fmt.Errorf("failed to register DBResolver plugin: %w", err)
		}
		log.Info("DBResolver enabled (read-write separation)")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB handle: %w", err)
	}
	if cfg.Type == TypeSQLite {
		// a single writer avoids "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(GetConnMaxLifetime(cfg.MaxLifetime))
	sqlDB.SetConnMaxIdleTime(GetConnMaxIdleTime(cfg.MaxIdleTime))

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func newGormLogger(output bool) gormlogger.Interface {
	if !output {
		return gormlogger.Default.LogMode(gormlogger.Silent)
	}
	return NewGormLoggerAdapter(gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Info,
		Colorful:                  false,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	}, gormlogger.Info)
}

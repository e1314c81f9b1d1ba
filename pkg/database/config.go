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

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	dataTablePrefix = "t_"

	TypeMySQL    = "mysql"
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// DatabaseSourceConfig represents a single database source/replica configuration
type DatabaseSourceConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SourceConfig is a network data source. Primary and Replicas enable
// DBResolver read-write separation; when Primary is empty the top level
// fields are the write source.
type SourceConfig struct {
	Host     string                 `mapstructure:"host"`
	Port     string                 `mapstructure:"port"`
	User     string                 `mapstructure:"user"`
	Password string                 `mapstructure:"password"`
	DBName   string                 `mapstructure:"dbname"`
	SSLMode  string                 `mapstructure:"sslmode"` // postgres only
	Primary  []DatabaseSourceConfig `mapstructure:"primary"`
	Replicas []DatabaseSourceConfig `mapstructure:"replicas"`
}

// SQLiteConfig embedded database, mostly for local runs and tests.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// Database represents the database configuration with common settings and data sources
type Database struct {
	Type         string `mapstructure:"type"` // mysql, postgres, sqlite
	OutPut       bool   `mapstructure:"output"`
	AutoMigrate  bool   `mapstructure:"autoMigrate"`
	Seed         bool   `mapstructure:"seed"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxLifetime  int    `mapstructure:"maxLifeTime"`
	MaxIdleTime  int    `mapstructure:"maxIdleTime"`

	MySQL    SourceConfig `mapstructure:"mysql"`
	Postgres SourceConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig `mapstructure:"sqlite"`
}

// SetDefaults fills unset values.
func (d *Database) SetDefaults() {
	if d.Type == "" {
		d.Type = TypeSQLite
	}
	if d.Type == TypeSQLite && d.SQLite.Path == "" {
		d.SQLite.Path = "confhub.db"
	}
	if d.MaxOpenConns == 0 {
		d.MaxOpenConns = 20
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = 5
	}
}

// GetConnMaxLifetime returns ConnMaxLifetime as time.Duration from common config
func GetConnMaxLifetime(maxLifetime int) time.Duration {
	if maxLifetime > 0 {
		return time.Duration(maxLifetime) * time.Second
	}
	return 300 * time.Second
}

// GetConnMaxIdleTime returns ConnMaxIdleTime as time.Duration from common config
func GetConnMaxIdleTime(maxIdleTime int) time.Duration {
	if maxIdleTime > 0 {
		return time.Duration(maxIdleTime) * time.Second
	}
	return 60 * time.Second
}

func buildMySQLDSN(user, password, host, port, db string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, db)
}

func buildPostgresDSN(user, password, host, port, db, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host, user, password, db, port, sslMode)
}

// dialector opens the write source for cfg.Type.
func dialector(cfg Database) (gorm.Dialector, error) {
	switch cfg.Type {
	case TypeMySQL:
		c := cfg.MySQL
		return mysql.Open(buildMySQLDSN(c.User, c.Password, c.Host, defaultPort(c.Port, "3306"), c.DBName)), nil
	case TypePostgres:
		c := cfg.Postgres
		return postgres.Open(buildPostgresDSN(c.User, c.Password, c.Host, defaultPort(c.Port, "5432"), c.DBName, c.SSLMode)), nil
	case TypeSQLite:
		return sqlite.Open(cfg.SQLite.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %q", cfg.Type)
	}
}

// buildDialectors converts DatabaseSourceConfig slice to gorm.Dialector slice
func buildDialectors(dbType, sslMode string, configs []DatabaseSourceConfig) ([]gorm.Dialector, error) {
	if len(configs) == 0 {
		return nil, nil
	}
	dialectors := make([]gorm.Dialector, 0, len(configs))
	for _, c := range configs {
		if c.Host == "" || c.User == "" || c.DBName == "" {
			return nil, fmt.Errorf("incomplete database source config: host, user, and dbname are required")
		}
		switch dbType {
		case TypeMySQL:
			dialectors = append(dialectors, mysql.Open(buildMySQLDSN(c.User, c.Password, c.Host, defaultPort(c.Port, "3306"), c.DBName)))
		case TypePostgres:
			dialectors = append(dialectors, postgres.Open(buildPostgresDSN(c.User, c.Password, c.Host, defaultPort(c.Port, "5432"), c.DBName, sslMode)))
		default:
			return nil, fmt.Errorf("read-write separation is not supported for %q", dbType)
		}
	}
	return dialectors, nil
}

func defaultPort(port, def string) string {
	if port == "" {
		return def
	}
	return port
}

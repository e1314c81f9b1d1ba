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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string
}

func TestNewManager_SQLite(t *testing.T) {
	RegisterModels(&probe{})

	m, err := NewManager(Database{
		Type:        TypeSQLite,
		AutoMigrate: true,
		SQLite:      SQLiteConfig{Path: "file::memory:"},
	})
	require.NoError(t, err)
	defer m.Close()

	db := NewGormDB(m.Primary())
	require.NoError(t, db.DB().Create(&probe{Name: "a"}).Error)

	var got probe
	require.NoError(t, ReadDB(db.DB()).First(&got).Error)
	assert.Equal(t, "a", got.Name)
	assert.True(t, db.DB().Migrator().HasTable("t_probe"))
}

func TestDialector(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Database
		wantErr bool
	}{
		{"mysql", Database{Type: TypeMySQL, MySQL: SourceConfig{Host: "h", User: "u", DBName: "d"}}, false},
		{"postgres", Database{Type: TypePostgres, Postgres: SourceConfig{Host: "h", User: "u", DBName: "d"}}, false},
		{"sqlite", Database{Type: TypeSQLite, SQLite: SQLiteConfig{Path: ":memory:"}}, false},
		{"unknown", Database{Type: "oracle"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := dialector(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Type, d.Name())
		})
	}
}

func TestBuildDialectors(t *testing.T) {
	ds, err := buildDialectors(TypeMySQL, "", []DatabaseSourceConfig{{Host: "r1", User: "u", DBName: "d"}})
	require.NoError(t, err)
	assert.Len(t, ds, 1)

	_, err = buildDialectors(TypeMySQL, "", []DatabaseSourceConfig{{Host: "r1"}})
	assert.Error(t, err)

	_, err = buildDialectors(TypeSQLite, "", []DatabaseSourceConfig{{Host: "r1", User: "u", DBName: "d"}})
	assert.Error(t, err)
}

func TestDatabase_SetDefaults(t *testing.T) {
	var d Database
	d.SetDefaults()
	assert.Equal(t, TypeSQLite, d.Type)
	assert.Equal(t, "confhub.db", d.SQLite.Path)
	assert.Equal(t, 20, d.MaxOpenConns)
}

func TestBuildPostgresDSN(t *testing.T) {
	dsn := buildPostgresDSN("u", "p", "h", "5432", "d", "")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.Contains(t, dsn, "dbname=d")
}

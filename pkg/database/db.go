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
	"context"

	"gorm.io/gorm"
)

// DB is the handle repositories depend on.
type DB interface {
	// DB returns the underlying *gorm.DB
	DB() *gorm.DB
}

// GormDB GORM database implementation
type GormDB struct {
	db *gorm.DB
}

// NewGormDB wraps db.
func NewGormDB(db *gorm.DB) DB {
	return &GormDB{db: db}
}

func (g *GormDB) DB() *gorm.DB {
	return g.db
}

// WithContext is shorthand for db.DB().WithContext(ctx).
func WithContext(ctx context.Context, db DB) *gorm.DB {
	return db.DB().WithContext(ctx)
}

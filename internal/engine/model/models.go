package model

import "github.com/go-arcade/confhub/pkg/database"

func init() {
	database.RegisterModels(
		&Application{},
		&Environment{},
		&Upload{},
		&Setting{},
		&Feature{},
		&Secret{},
	)
}

// All lists every table model, in dependency order.
func All() []any {
	return []any{
		&Application{},
		&Environment{},
		&Upload{},
		&Setting{},
		&Feature{},
		&Secret{},
	}
}

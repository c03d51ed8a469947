package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{
		"created_at": "created_at",
		"name":       "p.name",
	}

	t.Run("allowed column ascending by default", func(t *testing.T) {
		assert.Equal(t, "created_at ASC", orderClause("created_at", "", allowed, "created_at DESC"))
	})

	t.Run("direction case-insensitive", func(t *testing.T) {
		assert.Equal(t, "p.name DESC", orderClause("name", "DeSc", allowed, "created_at DESC"))
	})

	t.Run("unknown column falls back", func(t *testing.T) {
		assert.Equal(t, "created_at DESC", orderClause("total_amount", "asc", allowed, "created_at DESC"))
	})

	t.Run("sql fragments never reach the clause", func(t *testing.T) {
		assert.Equal(t, "created_at DESC",
			orderClause("created_at; DROP TABLE orders--", "asc", allowed, "created_at DESC"))
		assert.Equal(t, "created_at ASC",
			orderClause("created_at", "asc; DROP TABLE orders--", allowed, "created_at DESC"))
	})
}

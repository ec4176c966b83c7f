package domain_test

import (
	"testing"
	"time"

	"github.com/adrienmarchand/schedcore/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEntity(t *testing.T) {
	before := time.Now().UTC()
	entity := domain.NewBaseEntity("activity-1")
	after := time.Now().UTC()

	assert.Equal(t, "activity-1", entity.ID())
	require.False(t, entity.CreatedAt().Before(before))
	require.False(t, entity.CreatedAt().After(after))
	assert.Equal(t, entity.CreatedAt(), entity.UpdatedAt())
}

func TestBaseEntity_Touch(t *testing.T) {
	entity := domain.NewBaseEntity("activity-1")
	originalUpdatedAt := entity.UpdatedAt()

	time.Sleep(time.Millisecond)
	entity.Touch()

	assert.True(t, entity.UpdatedAt().After(originalUpdatedAt))
}

func TestBaseEntity_Equals(t *testing.T) {
	entity1 := domain.NewBaseEntity("activity-1")
	entity2 := domain.NewBaseEntity("activity-1")
	entity3 := domain.NewBaseEntity("activity-2")

	assert.True(t, entity1.Equals(&entity2))
	assert.False(t, entity1.Equals(&entity3))
}

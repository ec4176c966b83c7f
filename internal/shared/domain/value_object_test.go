package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockValueObject struct {
	value string
}

func (m mockValueObject) Equals(other ValueObject) bool {
	if otherMock, ok := other.(mockValueObject); ok {
		return m.value == otherMock.value
	}
	return false
}

func TestValueObject_Equals(t *testing.T) {
	t.Run("returns true for equal values", func(t *testing.T) {
		a := mockValueObject{value: "x"}
		b := mockValueObject{value: "x"}

		assert.True(t, a.Equals(b))
	})

	t.Run("returns false for different values", func(t *testing.T) {
		a := mockValueObject{value: "x"}
		b := mockValueObject{value: "y"}

		assert.False(t, a.Equals(b))
	})
}

package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/NeuralTrust/SafeChat/pkg/domain/conversation"
	"github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateFlagError(t *testing.T) {
	assert.ErrorIs(t, translateFlagError(gorm.ErrDuplicatedKey), crisis.ErrAlreadyFlagged)
	assert.ErrorIs(t, translateFlagError(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), crisis.ErrAlreadyFlagged)

	other := errors.New("connection reset")
	assert.Equal(t, other, translateFlagError(other))
	assert.NoError(t, translateFlagError(nil))
}

func TestChronological(t *testing.T) {
	page := []conversation.Message{{Content: "c"}, {Content: "b"}, {Content: "a"}}

	got := chronological(page)

	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Content, got[1].Content, got[2].Content})
	assert.Empty(t, chronological(nil))
}

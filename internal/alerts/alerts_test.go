package alerts

import (
	"testing"

	"stockroom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEvictsPastLimit(t *testing.T) {
	log := NewLog(2)

	log.Record(models.Alert{Kind: models.AlertOrderCreated, Message: "one"})
	log.Record(models.Alert{Kind: models.AlertOrderCompleted, Message: "two"})
	log.Record(models.Alert{Kind: models.AlertLowStock, Message: "three"})

	recent := log.Recent(10)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Message)
	assert.Equal(t, "two", recent[1].Message)
}

func TestRecentLimitsCount(t *testing.T) {
	log := NewLog(10)
	for i := 0; i < 5; i++ {
		log.Record(models.Alert{Kind: models.AlertOrderCreated})
	}

	assert.Len(t, log.Recent(3), 3)
	assert.Empty(t, log.Recent(-1))
	assert.Empty(t, NewLog(5).Recent(3))
}

package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomyPredicates(t *testing.T) {
	confErr := Configuration("no rows in %s", "fv_product_context")
	usageErr := Usage("step before reset")

	assert.True(t, IsConfiguration(confErr))
	assert.False(t, IsUsage(confErr))
	assert.True(t, IsUsage(usageErr))
	assert.False(t, IsConfiguration(usageErr))

	assert.Contains(t, confErr.Error(), "fv_product_context")
	assert.Contains(t, usageErr.Error(), "step before reset")
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("starting run: %w", Configuration("empty table"))
	assert.True(t, IsConfiguration(wrapped))

	assert.True(t, errors.Is(fmt.Errorf("%w: load failed", ErrPolicyUnavailable), ErrPolicyUnavailable))
	assert.False(t, errors.Is(ErrNotFound, ErrPolicyUnavailable))
}

func TestValidAction(t *testing.T) {
	for _, action := range []float64{-0.3, -0.15, 0, 0.3} {
		assert.True(t, ValidAction(action))
	}
	for _, action := range []float64{-0.301, 0.31, 1} {
		assert.False(t, ValidAction(action))
	}
}

func TestObservationHashBucketsNearbyValues(t *testing.T) {
	a := Observation{AvgCompetitorPrice7d: 98, AvgSentiment30d: 0.8, AvgOrders14d: 110, CurrentPriceRatio: 1}
	b := a
	b.AvgCompetitorPrice7d = 99 // same price bucket

	assert.Equal(t, a.Hash(), b.Hash())

	c := a
	c.AvgCompetitorPrice7d = 160
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestObservationHashCellsUniformAcrossZero(t *testing.T) {
	neg := Observation{AvgCompetitorPrice7d: 98, AvgSentiment30d: -0.19, AvgOrders14d: 110, CurrentPriceRatio: 1}
	pos := neg
	pos.AvgSentiment30d = 0.19

	// sentiment buckets are 0.2 wide; -0.19 and 0.19 sit in adjacent
	// cells, not a doubled cell straddling zero
	assert.NotEqual(t, neg.Hash(), pos.Hash())

	sameCell := neg
	sameCell.AvgSentiment30d = -0.01
	assert.Equal(t, neg.Hash(), sameCell.Hash())
}

package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/pricing-rl/types"
)

func testRows() []types.ProductContext {
	return []types.ProductContext{
		{ProductID: 1, BasePrice: 100, Cost: 50, AvgCompetitorPrice7d: 98, AvgSentiment30d: 0.8, AvgOrders14d: 110},
		{ProductID: 2, BasePrice: 150, Cost: 70, AvgCompetitorPrice7d: 155, AvgSentiment30d: 0.9, AvgOrders14d: 80},
		{ProductID: 3, BasePrice: 200, Cost: 100, AvgCompetitorPrice7d: 205, AvgSentiment30d: 0.7, AvgOrders14d: 60},
	}
}

func testEnv(t *testing.T) *Environment {
	t.Helper()
	return NewEnvironmentFromRows(testRows(), NewSeededDemandModel(42))
}

func TestResetRotatesProducts(t *testing.T) {
	env := testEnv(t)
	// the cursor advances before selecting, so the first episode runs on
	// the second row
	expected := []int64{2, 3, 1, 2}
	for _, productID := range expected {
		_, err := env.Reset()
		require.NoError(t, err)
		assert.Equal(t, productID, env.Current().ProductID)
	}
}

func TestResetObservation(t *testing.T) {
	env := testEnv(t)
	obs, err := env.Reset()
	require.NoError(t, err)
	row := env.Current()
	assert.Equal(t, row.AvgCompetitorPrice7d, obs.AvgCompetitorPrice7d)
	assert.Equal(t, row.AvgSentiment30d, obs.AvgSentiment30d)
	assert.Equal(t, row.AvgOrders14d, obs.AvgOrders14d)
	assert.Equal(t, float64(1), obs.CurrentPriceRatio)
}

func TestResetFailsOnEmptyTable(t *testing.T) {
	env := NewEnvironmentFromRows(nil, NewSeededDemandModel(1))
	_, err := env.Reset()
	require.Error(t, err)
	assert.True(t, types.IsConfiguration(err))
}

func TestStepBeforeResetIsUsageError(t *testing.T) {
	env := testEnv(t)
	_, _, _, _, _, err := env.Step(0.1)
	require.Error(t, err)
	assert.True(t, types.IsUsage(err))
}

func TestStepRejectsOutOfBoundsAction(t *testing.T) {
	env := testEnv(t)
	_, err := env.Reset()
	require.NoError(t, err)
	for _, action := range []float64{0.301, -0.31, 1.5} {
		_, _, _, _, _, err := env.Step(action)
		require.Error(t, err)
		assert.True(t, types.IsUsage(err))
	}
}

func TestZeroActionKeepsBasePrice(t *testing.T) {
	env := testEnv(t)
	_, err := env.Reset()
	require.NoError(t, err)
	basePrice := env.Current().BasePrice

	_, _, _, _, info, err := env.Step(0.0)
	require.NoError(t, err)
	assert.Equal(t, basePrice, info.Price)
}

func TestEpisodeAlwaysTerminatesAfterOneStep(t *testing.T) {
	env := testEnv(t)
	for _, action := range []float64{-0.3, -0.1, 0.0, 0.15, 0.3} {
		_, err := env.Reset()
		require.NoError(t, err)
		_, _, terminated, truncated, _, err := env.Step(action)
		require.NoError(t, err)
		assert.True(t, terminated)
		assert.False(t, truncated)
	}
}

func TestSecondStepWithoutResetIsUsageError(t *testing.T) {
	env := testEnv(t)
	_, err := env.Reset()
	require.NoError(t, err)
	_, _, _, _, _, err = env.Step(0.1)
	require.NoError(t, err)
	_, _, _, _, _, err = env.Step(0.1)
	require.Error(t, err)
	assert.True(t, types.IsUsage(err))
}

func TestStepRewardIsProfit(t *testing.T) {
	env := testEnv(t)
	_, err := env.Reset()
	require.NoError(t, err)
	row := env.Current()

	obs, reward, _, _, info, err := env.Step(0.1)
	require.NoError(t, err)

	expectedPrice := row.BasePrice * 1.1
	assert.InDelta(t, expectedPrice, info.Price, 1e-9)
	assert.InDelta(t, expectedPrice*float64(info.Orders), info.Revenue, 1e-9)
	assert.InDelta(t, info.Revenue-row.Cost*float64(info.Orders), info.Profit, 1e-9)
	assert.Equal(t, info.Profit, reward)
	assert.InDelta(t, 1.1, obs.CurrentPriceRatio, 1e-9)
}

func TestObservationHashIsDeterministic(t *testing.T) {
	obs := types.Observation{AvgCompetitorPrice7d: 98, AvgSentiment30d: 0.8, AvgOrders14d: 110, CurrentPriceRatio: 1}
	assert.Equal(t, obs.Hash(), obs.Hash())

	other := obs
	other.CurrentPriceRatio = 2.5
	assert.NotEqual(t, obs.Hash(), other.Hash())
}

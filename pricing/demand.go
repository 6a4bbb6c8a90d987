package pricing

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultElasticity governs how sharply demand falls as price rises
	// relative to the reference price. Negative by convention.
	DefaultElasticity = -1.5
	// DefaultBaseDemand is the expected order count when pricing exactly at
	// the base price.
	DefaultBaseDemand = 100
)

// DemandModel converts a price into a simulated order count with a log-log
// demand curve plus Poisson noise. This is an explicit placeholder for a
// trained real-world model; its contract is fixed, not tuned.
//
// Each model owns its random stream, so parallel workers can run
// independent models without shared mutable state. Draws are reproducible
// only when the caller seeds the source explicitly.
type DemandModel struct {
	BaseDemand float64
	Elasticity float64
	src        rand.Source
}

// NewDemandModel creates a model with the default curve and the given
// random source. A nil source falls back to an unseeded shared source.
func NewDemandModel(src rand.Source) *DemandModel {
	return &DemandModel{
		BaseDemand: DefaultBaseDemand,
		Elasticity: DefaultElasticity,
		src:        src,
	}
}

// NewSeededDemandModel creates a model with its own source seeded with seed.
func NewSeededDemandModel(seed uint64) *DemandModel {
	return NewDemandModel(rand.NewSource(seed))
}

// Expected returns the deterministic (pre-noise) demand at the given price.
// Strictly non-increasing in price for negative elasticity.
func (d *DemandModel) Expected(price, basePrice float64) float64 {
	if price <= 0 {
		return 0
	}
	return d.BaseDemand * math.Pow(price/basePrice, d.Elasticity)
}

// Orders draws one Poisson sample with mean max(0, Expected).
// A non-positive price collapses demand to zero deterministically.
func (d *DemandModel) Orders(price, basePrice float64) int {
	if price <= 0 {
		return 0
	}
	expected := d.Expected(price, basePrice)
	if expected <= 0 {
		return 0
	}
	poisson := distuv.Poisson{Lambda: expected, Src: d.src}
	orders := int(poisson.Rand())
	if orders < 0 {
		return 0
	}
	return orders
}

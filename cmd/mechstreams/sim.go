package main

import (
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/types"
)

// simPlant is a first-order simulated motor: each tick it integrates the
// last requested effort into position. It stands in for real hardware so
// the daemon can run a full control loop without a robot attached.
type simPlant struct {
	step     types.Time
	position float64
	req      stream.Request[float64]
}

func newSimPlant(step types.Time) *simPlant {
	return &simPlant{step: step}
}

func (p *simPlant) Set(effort float64) error {
	p.req.Record(effort)
	return nil
}

func (p *simPlant) LastRequest() *float64 {
	return p.req.Last()
}

func (p *simPlant) Update() error {
	if e := p.req.Last(); e != nil {
		p.position += *e * p.step.Seconds()
	}
	return nil
}

// simEncoder reads the plant's position at the shared clock's current
// instant, playing the role of a position sensor on the same shaft.
type simEncoder struct {
	plant *simPlant
	clock types.TimeGetter
}

func newSimEncoder(plant *simPlant, clock types.TimeGetter) *simEncoder {
	return &simEncoder{plant: plant, clock: clock}
}

func (e *simEncoder) Get() (*types.Datum[types.State], error) {
	now, err := e.clock.Now()
	if err != nil {
		return nil, err
	}
	state := types.NewState(e.plant.position, 0, 0)
	d := types.NewDatum(now, state)
	return &d, nil
}

func (e *simEncoder) Update() error {
	return nil
}

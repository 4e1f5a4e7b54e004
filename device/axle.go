package device

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/pid"
	"github.com/c360/mechstreams/stream"
	"github.com/c360/mechstreams/stream/control"
	"github.com/c360/mechstreams/types"
)

// Member is one device on a shared shaft, tagged with its capability.
// Which accessors are populated follows the tag: readers produce State,
// command writers accept Command, effort writers accept raw effort.
type Member struct {
	capability Capability
	reader     types.Getter[types.State]
	commander  types.Settable[types.Command]
	effort     types.Settable[float64]
	updatable  types.Updatable
}

// ReadMember wraps a pure sensor.
func ReadMember(sensor interface {
	types.Getter[types.State]
	types.Updatable
}) Member {
	return Member{capability: Read, reader: sensor, updatable: sensor}
}

// ReadWriteMember wraps a closed-loop actuator that reports State.
func ReadWriteMember(servo interface {
	types.Getter[types.State]
	types.Settable[types.Command]
	types.Updatable
}) Member {
	return Member{capability: ReadWrite, reader: servo, commander: servo, updatable: servo}
}

// PreciseWriteMember wraps an actuator that closes its loop internally
// without reporting State.
func PreciseWriteMember(actuator interface {
	types.Settable[types.Command]
	types.Updatable
}) Member {
	return Member{capability: PreciseWrite, commander: actuator, updatable: actuator}
}

// ImpreciseWriteMember wraps a plain motor accepting raw effort. The
// axle supplies the control loop.
func ImpreciseWriteMember(motor interface {
	types.Settable[float64]
	types.Updatable
}) Member {
	return Member{capability: ImpreciseWrite, effort: motor, updatable: motor}
}

// Capability reports the member's tag.
func (m Member) Capability() Capability {
	return m.capability
}

// Axle aggregates devices believed to be mechanically rigid to one
// another. A Command is forwarded directly to every member that closes
// its own loop; for every ImpreciseWrite member the axle instead drives
// a lazily created CommandPID fed by the shaft's aggregated State. A
// member that never sees a Command never gets a controller.
type Axle struct {
	members []Member
	gains   pid.DerivativeDependentKValues
	req     stream.Request[types.Command]
	command *types.Command
	pids    []*control.CommandPID
	cache   *types.Datum[types.State]
}

// NewAxle constructs an Axle over at least one member. The gains drive
// the controllers created for ImpreciseWrite members.
func NewAxle(gains pid.DerivativeDependentKValues, members ...Member) (*Axle, error) {
	if len(members) < 1 {
		return nil, errors.WrapInvalid(errors.ErrNoInputs, "Axle", "NewAxle", "no members given")
	}
	return &Axle{
		members: members,
		gains:   gains,
		pids:    make([]*control.CommandPID, len(members)),
	}, nil
}

// Get returns the shaft's aggregated State, the average of every
// reading member's latest report stamped with the freshest of them.
func (a *Axle) Get() (*types.Datum[types.State], error) {
	return a.cache, nil
}

// Set records the shared Command. A changed Command resets the member
// controllers through their own reset discipline.
func (a *Axle) Set(command types.Command) error {
	a.req.Record(command)
	c := command
	a.command = &c
	return nil
}

// LastRequest reports the most recent Set value, nil if none.
func (a *Axle) LastRequest() *types.Command {
	return a.req.Last()
}

// Follow attaches a Command source re-read on every Update, typically a
// motion profile adapter.
func (a *Axle) Follow(source types.Getter[types.Command]) {
	a.req.Follow(source)
}

// Update advances every member in construction order, aggregates the
// shaft State, then distributes the shared Command.
func (a *Axle) Update() error {
	if v, err := a.req.Followed(); err != nil {
		return errors.Wrap(err, "Axle", "Update", "followed command failed")
	} else if v != nil {
		if err := a.Set(*v); err != nil {
			return err
		}
	}
	for _, m := range a.members {
		if err := m.updatable.Update(); err != nil {
			return errors.Wrap(err, "Axle", "Update", "member update failed")
		}
	}

	var sum types.State
	var latest types.Time
	count := 0
	for _, m := range a.members {
		if m.reader == nil {
			continue
		}
		d, err := m.reader.Get()
		if err != nil {
			return errors.Wrap(err, "Axle", "Update", "member state read failed")
		}
		if d == nil {
			continue
		}
		sum = sum.Add(d.Value)
		if count == 0 || d.Time > latest {
			latest = d.Time
		}
		count++
	}
	if count > 0 {
		a.cache = &types.Datum[types.State]{Time: latest, Value: sum.Scale(1 / float64(count))}
	}

	if a.command == nil {
		return nil
	}
	for i, m := range a.members {
		switch m.capability {
		case ReadWrite, PreciseWrite:
			if err := m.commander.Set(*a.command); err != nil {
				return errors.Wrap(err, "Axle", "Update", "command forward failed")
			}
		case ImpreciseWrite:
			if a.pids[i] == nil {
				a.pids[i] = control.NewCommandPID(
					stream.Shared[types.State](axleState{axle: a}),
					*a.command,
					a.gains,
				)
			}
			p := a.pids[i]
			if err := p.Set(*a.command); err != nil {
				return errors.Wrap(err, "Axle", "Update", "controller command failed")
			}
			if err := p.Update(); err != nil {
				return errors.Wrap(err, "Axle", "Update", "controller update failed")
			}
			out, err := p.Get()
			if err != nil {
				return errors.Wrap(err, "Axle", "Update", "controller read failed")
			}
			if out != nil {
				if err := m.effort.Set(out.Value); err != nil {
					return errors.Wrap(err, "Axle", "Update", "effort write failed")
				}
			}
		}
	}
	return nil
}

// axleState exposes the axle's aggregated State to its member
// controllers.
type axleState struct {
	axle *Axle
}

func (s axleState) Get() (*types.Datum[types.State], error) {
	return s.axle.cache, nil
}

package device

import (
	"github.com/c360/mechstreams/errors"
	"github.com/c360/mechstreams/types"
)

// MaxFanout bounds a terminal's connected peer set. A mechanical joint
// has a small, fixed number of neighbors; an unbounded fan-out indicates
// a graph construction bug.
const MaxFanout = 8

// TerminalData is a terminal's combined view at one instant. Command and
// State are independently optional: a terminal can know a fresh Command
// from one neighbor and a fresh State from another in the same tick.
type TerminalData struct {
	Time    types.Time     `json:"time"`
	Command *types.Command `json:"command,omitempty"`
	State   *types.State   `json:"state,omitempty"`
}

// Terminal is a mechanical connection point on a device.
type Terminal struct {
	command *types.Datum[types.Command]
	state   *types.Datum[types.State]
	peers   []*Terminal
}

// NewTerminal constructs an unconnected terminal with no data.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Connect pairs two terminals symmetrically. Connecting an
// already-connected pair or exceeding either side's fan-out bound is a
// caller-visible failure, not silently ignored.
func Connect(a, b *Terminal) error {
	if a.connectedTo(b) {
		return errors.WrapInvalid(errors.ErrAlreadyConnected, "Terminal", "Connect", "pair is already connected")
	}
	if len(a.peers) >= MaxFanout || len(b.peers) >= MaxFanout {
		return errors.WrapInvalid(errors.ErrTerminalFanout, "Terminal", "Connect", "peer set is full")
	}
	a.peers = append(a.peers, b)
	b.peers = append(b.peers, a)
	return nil
}

// Disconnect removes the pairing symmetrically. Disconnecting terminals
// that are not connected is an error.
func Disconnect(a, b *Terminal) error {
	if !a.connectedTo(b) {
		return errors.WrapInvalid(errors.ErrNotConnected, "Terminal", "Disconnect", "pair is not connected")
	}
	a.peers = removePeer(a.peers, b)
	b.peers = removePeer(b.peers, a)
	return nil
}

func (t *Terminal) connectedTo(other *Terminal) bool {
	for _, p := range t.peers {
		if p == other {
			return true
		}
	}
	return false
}

func removePeer(peers []*Terminal, target *Terminal) []*Terminal {
	for i, p := range peers {
		if p == target {
			return append(peers[:i], peers[i+1:]...)
		}
	}
	return peers
}

// SetCommand records this terminal's own Command datum, the device's
// contribution to the merge.
func (t *Terminal) SetCommand(d types.Datum[types.Command]) {
	t.command = &d
}

// SetState records this terminal's own State datum.
func (t *Terminal) SetState(d types.Datum[types.State]) {
	t.state = &d
}

// Command merges this terminal's own Command with every peer's. A peer
// value replaces the current pick only when strictly newer, so the
// terminal's own value survives timestamp ties.
func (t *Terminal) Command() *types.Datum[types.Command] {
	pick := t.command
	for _, p := range t.peers {
		if p.command == nil {
			continue
		}
		if pick == nil || p.command.Time > pick.Time {
			pick = p.command
		}
	}
	return pick
}

// State merges this terminal's own State with every peer's, with the
// same strictly-newer rule as Command.
func (t *Terminal) State() *types.Datum[types.State] {
	pick := t.state
	for _, p := range t.peers {
		if p.state == nil {
			continue
		}
		if pick == nil || p.state.Time > pick.Time {
			pick = p.state
		}
	}
	return pick
}

// Data returns the field-wise merged view, nil when neither field is
// known anywhere. The datum's time is the fresher of the two fields.
func (t *Terminal) Data() *types.Datum[TerminalData] {
	cmd := t.Command()
	st := t.State()
	if cmd == nil && st == nil {
		return nil
	}
	var data TerminalData
	if cmd != nil {
		data.Time = cmd.Time
		c := cmd.Value
		data.Command = &c
	}
	if st != nil {
		if cmd == nil {
			data.Time = st.Time
		} else {
			data.Time = types.MergeTime(data.Time, st.Time)
		}
		s := st.Value
		data.State = &s
	}
	return &types.Datum[TerminalData]{Time: data.Time, Value: data}
}

// Get exposes the merged view through the Getter contract, so a terminal
// can feed stream nodes directly.
func (t *Terminal) Get() (*types.Datum[TerminalData], error) {
	return t.Data(), nil
}

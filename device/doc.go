// Package device models the connectivity graph of a mechanism. Devices
// expose Terminals, mechanical connection points exchanging timestamped
// Command and State data with connected peers. A terminal read merges
// its own last-known data with every peer's field-wise: Command and
// State resolve independently to whichever present value is strictly
// newer, the terminal's own value winning ties.
//
// Composite devices (Axle, Differential, GearTrain, Invert) reconcile
// the data on their terminals each Update, deriving consistent values
// for every leg of the mechanical coupling. Wrappers adapt value-flow
// nodes into devices: a State producer becomes a sensor, a Command
// acceptor an actuator.
package device

// Package pid holds PID gain containers shared by the control stream
// nodes and the device layer.
//
// The gains here are pure data. The actual controllers live in
// stream/control, which owns the error integral and derivative state;
// Evaluate only folds a known error triple through the gains.
package pid

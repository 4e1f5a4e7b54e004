// Package control provides closed-loop and filtering nodes: PID
// controllers and moving-average and exponential smoothing filters.
//
// Both controllers own their error integral and derivative state and
// reset it exactly when the accepted setpoint changes, never when an
// equal setpoint is resent. CommandPID additionally integrates its
// output once or twice depending on the position derivative of the
// current command, which lets a plain motor and an encoder act as a de
// facto servo.
package control

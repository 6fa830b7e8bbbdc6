// Package model contains the in-memory representation of scheduled work: the
// per-process Record with its lifecycle state machine and timing metrics, the
// FIFO Queue used by queue-based policies, and the Table that owns every
// record for the duration of a run.
//
// Records move pending -> running -> (paused -> running)* -> finished|error.
// Terminal records are immutable; further transitions return ErrTerminal.
package model

// Package store persists detection runs in SQLite.
//
// Each run records the analysis parameters, the decision threshold and the
// flagged record indices, so drift across repeated inspections of the same
// machine can be reviewed later. The detector library itself never touches
// the store; wiring the two together is the CLI's job.
package store

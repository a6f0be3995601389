package domain

import "time"

// RunRecord summarizes the last successful provisioning run.
type RunRecord struct {
	LockDigest  string    `json:"lock_digest,omitzero"`
	PinCount    int       `json:"pin_count,omitzero"`
	Mode        string    `json:"mode,omitzero"`
	Accelerator string    `json:"accelerator,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}

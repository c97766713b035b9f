package notesync

// SaveState is the state of the save state machine.
type SaveState int32

const (
	// Idle means no save is in flight and nothing is queued.
	Idle SaveState = iota
	// Saving means one save is in flight.
	Saving
	// SavingQueued means one save is in flight and a follow-up is queued.
	SavingQueued
)

func (s SaveState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Saving:
		return "saving"
	case SavingQueued:
		return "saving-queued"
	default:
		return "unknown"
	}
}

package tapevm

// Interrupt is yielded immediately before an I/O instruction runs.
type Interrupt struct {
	// Position is the re-entry label of the pending instruction.
	Position int
}

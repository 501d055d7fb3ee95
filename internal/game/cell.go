package game

// Cell is one grid square. Fields are exported so a Board survives gob
// encoding when a session is persisted, but all mutation goes through
// Board methods: a cell is never both revealed and flagged, Revealed
// never reverts to false, and Mine is set once during placement.
type Cell struct {
	Mine     bool
	Flagged  bool
	Revealed bool
	Adjacent int // mined neighbors, 0-8; meaningless when Mine is set
}

// Covered reports whether the cell is eligible for a solver or player
// action: neither revealed nor flagged.
func (c Cell) Covered() bool {
	return !c.Revealed && !c.Flagged
}

func (c Cell) Rune() rune {
	if !c.Revealed {
		if c.Flagged {
			return 'F'
		}
		return '.'
	}
	if c.Mine {
		return '*'
	}
	if c.Adjacent == 0 {
		return ' '
	}
	return rune('0' + c.Adjacent)
}

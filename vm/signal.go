package vm

// Signal is a single-slot mailbox delivering key transition events from
// an input adapter into the interpreter. The slot holds at most one
// pending (key, state) pair: a new send overwrites whatever is there.
// Transitions arriving faster than the cycle rate therefore drop all
// but the last one. This is part of the machine's contract and must
// not be turned into a queue.
type Signal struct {
	key     byte
	state   byte
	pending bool
}

// Send stores a key transition, replacing any pending one.
// State 1 means pressed, 0 means released.
func (s *Signal) Send(key, state byte) {
	s.key, s.state, s.pending = key, state, true
}

// Read drains the slot. It returns (0, 0) when no transition is pending.
func (s *Signal) Read() (key, state byte) {
	if !s.pending {
		return 0, 0
	}
	s.pending = false
	return s.key, s.state
}

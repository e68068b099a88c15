package arch

import "strings"

// Register indices with a fixed meaning.
const (
	// Flags is the register used as carry/borrow/collision output.
	Flags = 0xf

	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16
)

var registerNames = [RegisterCount]string{
	"v0", "v1", "v2", "v3", "v4", "v5", "v6", "v7",
	"v8", "v9", "va", "vb", "vc", "vd", "ve", "vf",
}

// RegisterName returns the name of the given register index.
// Returns an empty string if the index is out of range.
func RegisterName(index int) string {
	if index < 0 || index >= RegisterCount {
		return ""
	}
	return registerNames[index]
}

// RegisterIndex returns the index for the given register name.
// Returns false if the name is not a register.
func RegisterIndex(name string) (int, bool) {
	name = strings.ToLower(name)
	for i, rn := range registerNames {
		if rn == name {
			return i, true
		}
	}
	return 0, false
}

package domain

// DoneState is the halting state. A run is accepted iff it ends in this state.
// Matching is exact and case-sensitive.
const DoneState = "done"

// Reserved keys of the definition format. Any other key inside an instruction
// mapping is a guard symbol.
const (
	TagLeft  = "L"
	TagRight = "R"
	TagWrite = "write"
)

// IsReservedTag reports whether key is one of the action tags of the definition format.
func IsReservedTag(key string) bool {
	return key == TagLeft || key == TagRight || key == TagWrite
}

package upir

// ValueID names an SSA value, unique within the Module that produced it.
// Zero is reserved and never assigned to a real value.
type ValueID uint64

// BlockID names a basic block, unique within the Function that contains it.
// Zero is reserved.
type BlockID uint64

// TypeID names an interned type within a Module. Zero is reserved; the
// interning table (internal/lower) hands out ids starting at 1.
type TypeID uint64

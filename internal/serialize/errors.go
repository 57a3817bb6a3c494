package serialize

// SerializationError wraps a failure while encoding a graph.
type SerializationError struct {
	Msg string
}

func (e *SerializationError) Error() string { return "serialize: " + e.Msg }

// DeserializationError wraps a failure while decoding a graph, including
// malformed wire bytes and kind/payload mismatches.
type DeserializationError struct {
	Msg string
}

func (e *DeserializationError) Error() string { return "deserialize: " + e.Msg }

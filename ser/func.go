package ser

// Func adapts a plain function to Serializable.
type Func func(s Serializer) error

// Serialize calls f(s).
func (f Func) Serialize(s Serializer) error { return f(s) }

// Slice serializes items as a sequence with an exact length hint.
func Slice[T Serializable](items []T) Serializable {
	return Func(func(s Serializer) error {
		seq, err := s.SerializeSeq(len(items))
		if err != nil {
			return err
		}
		for _, it := range items {
			if err := seq.SerializeElement(it); err != nil {
				return err
			}
		}
		return seq.End()
	})
}

// Entry is one key/value pair handed to Entries.
type Entry struct {
	Key   Serializable
	Value Serializable
}

// Entries serializes ordered pairs as a map with an exact length hint.
func Entries(entries ...Entry) Serializable {
	return Func(func(s Serializer) error {
		m, err := s.SerializeMap(len(entries))
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := m.SerializeEntry(e.Key, e.Value); err != nil {
				return err
			}
		}
		return m.End()
	})
}

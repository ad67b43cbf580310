package codec

import (
	"time"

	"github.com/reoring/gosave/ser"
)

// TimeRFC3339 serializes t as a canonical RFC 3339 string (UTC, trailing
// zeros trimmed) when the serializer is human readable, and as a
// (unix seconds, nanoseconds) tuple otherwise.
func TimeRFC3339(t time.Time) ser.Serializable {
	return ser.Func(func(s ser.Serializer) error {
		if s.IsHumanReadable() {
			return s.SerializeStr(formatRFC3339Canonical(t))
		}
		tup, err := s.SerializeTuple(2)
		if err != nil {
			return err
		}
		if err := tup.SerializeElement(i64(t.Unix())); err != nil {
			return err
		}
		if err := tup.SerializeElement(u32(t.Nanosecond())); err != nil {
			return err
		}
		return tup.End()
	})
}

// Duration serializes d as its String form when the serializer is human
// readable, and as nanoseconds otherwise.
func Duration(d time.Duration) ser.Serializable {
	return ser.Func(func(s ser.Serializer) error {
		if s.IsHumanReadable() {
			return s.SerializeStr(d.String())
		}
		return s.SerializeI64(int64(d))
	})
}

type (
	i64 int64
	u32 uint32
)

func (v i64) Serialize(s ser.Serializer) error { return s.SerializeI64(int64(v)) }
func (v u32) Serialize(s ser.Serializer) error { return s.SerializeU32(uint32(v)) }

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}

// Package ser defines the generic serialization contract that values and
// serializers agree on.
//
// A value implements Serializable and drives a Serializer by calling exactly
// one of its methods. Aggregates (sequences, tuples, maps, structs and the
// enum-variant shapes) are emitted through a builder returned by the matching
// Serialize* starter; the value pushes its children into the builder and
// finishes it with End.
//
// The contract is a sink: methods only report failure. Implementations decide
// where the produced output goes (a byte buffer, a tree, a call log).
//
// Contract rules every Serializable must follow:
//   - one emission per Serializer instance;
//   - the declared length of a tuple, tuple struct, tuple variant, struct or
//     struct variant equals the number of elements/fields pushed (skipped
//     struct fields count);
//   - a length hint given to SerializeSeq or SerializeMap, when not
//     UnknownLen, equals the number of elements/entries pushed;
//   - struct field names are unique within one struct;
//   - nothing is pushed into a builder after End.
package ser

package gosave

// Walk visits n and its descendants depth-first, parents before children,
// left to right. fn receives the JSON Pointer of each node; returning false
// skips that node's children.
//
// Options and newtypes do not add a path segment. Sequence and tuple
// elements are addressed by index, map entries by /<i>/key and /<i>/value,
// fields by name. Skipped fields and None payloads are not visited.
func Walk[E any](n Node[E], fn func(path string, n Node[E]) bool) {
	walk(Root(), n, fn)
}

func walk[E any](p PathRef, n Node[E], fn func(string, Node[E]) bool) {
	if n == nil || !fn(p.Pointer(), n) {
		return
	}
	switch t := n.(type) {
	case Option[E]:
		walk(p, t.Value, fn)
	case NewtypeStruct[E]:
		walk(p, t.Value, fn)
	case NewtypeVariant[E]:
		walk(p, t.Value, fn)
	case Seq[E]:
		walkAll(p, t, fn)
	case Tuple[E]:
		walkAll(p, t, fn)
	case TupleStruct[E]:
		walkAll(p, t.Values, fn)
	case TupleVariant[E]:
		walkAll(p, t.Values, fn)
	case Map[E]:
		for i, pair := range t {
			at := p.Index(i)
			walk(at.Field("key"), pair.Key, fn)
			walk(at.Field("value"), pair.Value, fn)
		}
	case Struct[E]:
		walkFields(p, t.Fields, fn)
	case StructVariant[E]:
		walkFields(p, t.Fields, fn)
	}
}

func walkAll[E any](p PathRef, ns []Node[E], fn func(string, Node[E]) bool) {
	for i, n := range ns {
		walk(p.Index(i), n, fn)
	}
}

func walkFields[E any](p PathRef, fs []Field[E], fn func(string, Node[E]) bool) {
	for _, f := range fs {
		walk(p.Field(f.Name), f.Value, fn)
	}
}

// Errors reports every ErrorNode in n, in Walk order. It returns nil for a
// tree without errors, so
//
//	if iss := gosave.Errors(tree); iss != nil { return iss }
//
// works as an error check.
func Errors[E any](n Node[E]) Issues {
	var out Issues
	Walk(n, func(path string, n Node[E]) bool {
		en, ok := n.(ErrorNode[E])
		if !ok {
			return true
		}
		code := CodeProducerError
		if f, ok := any(en.Err).(protocolFlagger); ok && f.IsProtocol() {
			code = CodeProtocolError
		}
		cause, _ := any(en.Err).(error)
		out = append(out, Issue{Path: path, Code: code, Message: payloadMessage(en.Err), Cause: cause})
		return false
	})
	return out
}

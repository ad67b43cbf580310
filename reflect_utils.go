package gosave

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the rule From uses to name a struct field.
// Priority: save:"name" > json tag name > field name; "-" drops the field.
func ResolveStructKey(sf reflect.StructField) string {
	if st := sf.Tag.Get("save"); st != "" {
		if i := strings.IndexByte(st, ','); i >= 0 {
			st = st[:i]
		}
		if st != "" {
			return st
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt
		}
	}
	return sf.Name
}

// hasTagOption reports whether the save or json tag carries opt, e.g.
// "omitempty".
func hasTagOption(sf reflect.StructField, opt string) bool {
	for _, key := range []string{"save", "json"} {
		parts := strings.Split(sf.Tag.Get(key), ",")
		for _, p := range parts[1:] {
			if strings.TrimSpace(p) == opt {
				return true
			}
		}
	}
	return false
}

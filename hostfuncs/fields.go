package hostfuncs

import "strings"

// Field is one header name with its values, in the order they were added.
type Field struct {
	Name   string
	Values []string
}

// fields is an ordered header map. Names compare case-insensitively but keep
// the case they were first added with.
type fields []Field

func (f fields) index(name string) int {
	for i := range f {
		if strings.EqualFold(f[i].Name, name) {
			return i
		}
	}
	return -1
}

func (f fields) values(name string) []string {
	if i := f.index(name); i >= 0 {
		return f[i].Values
	}
	return nil
}

func (f *fields) set(name, value string) {
	if i := f.index(name); i >= 0 {
		(*f)[i].Values = []string{value}
		return
	}
	*f = append(*f, Field{Name: name, Values: []string{value}})
}

func (f *fields) add(name, value string) {
	if i := f.index(name); i >= 0 {
		(*f)[i].Values = append((*f)[i].Values, value)
		return
	}
	*f = append(*f, Field{Name: name, Values: []string{value}})
}

func (f *fields) remove(name string) {
	if i := f.index(name); i >= 0 {
		*f = append((*f)[:i], (*f)[i+1:]...)
	}
}

func (f fields) clone() []Field {
	out := make([]Field, len(f))
	for i, field := range f {
		out[i] = Field{Name: field.Name, Values: append([]string(nil), field.Values...)}
	}
	return out
}

// encodeNUL renders values as NUL-terminated strings.
func encodeNUL(values []string) []byte {
	n := 0
	for _, v := range values {
		n += len(v) + 1
	}
	out := make([]byte, 0, n)
	for _, v := range values {
		out = append(out, v...)
		out = append(out, 0)
	}
	return out
}

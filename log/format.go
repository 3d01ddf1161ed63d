package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// format renders a record as "message key=value ...". The host adds its own
// timestamp and level, so neither is included.
func (h *HostHandler) format(record slog.Record) []byte {
	buf := make([]byte, 0, 128)
	buf = append(buf, record.Message...)

	if h.opts.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		f, _ := frames.Next()
		buf = appendAttr(buf, nil, slog.String(slog.SourceKey, f.File+":"+strconv.Itoa(f.Line)))
	}

	buf = append(buf, h.prefix...)
	record.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, h.groups, a)
		return true
	})
	return buf
}

// appendAttr appends " key=value" for a, qualifying the key with groups.
// Group attrs are flattened with dotted keys.
func appendAttr(buf []byte, groups []string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return buf
		}
		if a.Key != "" {
			groups = append(groups[:len(groups):len(groups)], a.Key)
		}
		for _, ga := range attrs {
			buf = appendAttr(buf, groups, ga)
		}
		return buf
	}

	buf = append(buf, ' ')
	for _, g := range groups {
		buf = append(buf, g...)
		buf = append(buf, '.')
	}
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return appendValue(buf, a.Value)
}

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindString:
		return appendString(buf, v.String())
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindFloat64:
		return strconv.AppendFloat(buf, v.Float64(), 'g', -1, 64)
	case slog.KindTime:
		return v.Time().AppendFormat(buf, time.RFC3339Nano)
	case slog.KindDuration:
		return append(buf, v.Duration().String()...)
	default:
		x := v.Any()
		if x == nil {
			return append(buf, "<nil>"...)
		}
		if err, ok := x.(error); ok {
			return appendString(buf, err.Error())
		}
		if s, ok := x.(fmt.Stringer); ok {
			return appendString(buf, s.String())
		}
		if data, err := json.Marshal(x); err == nil {
			return append(buf, data...)
		}
		return appendString(buf, fmt.Sprintf("%v", x))
	}
}

// appendString quotes s when it would be ambiguous unquoted.
func appendString(buf []byte, s string) []byte {
	if s == "" || strings.ContainsAny(s, " =\"") || !isPrintable(s) {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func isPrintable(s string) bool {
	for _, r := range s {
		if !strconv.IsPrint(r) {
			return false
		}
	}
	return true
}

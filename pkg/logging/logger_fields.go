package logging

import (
	"time"
)

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration is rendered with time.Duration.String
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Common keys

func Component(name string) Field {
	return String("component", name)
}

func Path(p string) Field {
	return String("path", p)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

// Mining keys

// RunID tags every entry of one CLI run
func RunID(id string) Field {
	return String("run_id", id)
}

// Tag is a relation type tag such as controls-state-change-of
func Tag(tag string) Field {
	return String("tag", tag)
}

// Variant is a structural variant name
func Variant(name string) Field {
	return String("variant", name)
}

func Anchors(n int) Field {
	return Int("anchors", n)
}

func Matches(n int) Field {
	return Int("matches", n)
}

func Edges(n int) Field {
	return Int("edges", n)
}

func Nodes(n int) Field {
	return Int("nodes", n)
}

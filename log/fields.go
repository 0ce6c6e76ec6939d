package log

// Integer conversions are used for type casting in structured logging.

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapField wraps a zap.Field and implements the Field interface.
type ZapField struct {
	zapField zap.Field
}

// Key returns the field's key.
func (f ZapField) Key() string {
	return f.zapField.Key
}

// Value returns the field's value.
func (f ZapField) Value() any {
	switch f.zapField.Type {
	case zapcore.StringType:
		return f.zapField.String
	case zapcore.Int64Type:
		return f.zapField.Integer
	case zapcore.Int32Type:
		return int32(f.zapField.Integer) //nolint:gosec // intentional conversion from stored int64
	case zapcore.Int16Type:
		return int16(f.zapField.Integer) //nolint:gosec // intentional conversion from stored int64
	case zapcore.Int8Type:
		return int8(f.zapField.Integer) //nolint:gosec // intentional conversion from stored int64
	case zapcore.Uint64Type:
		return uint64(f.zapField.Integer) //nolint:gosec // intentional conversion from stored int64
	case zapcore.Uint32Type:
		return uint32(f.zapField.Integer) //nolint:gosec // intentional conversion from stored int64
	case zapcore.Uint16Type:
		return uint16(f.zapField.Integer) //nolint:gosec // intentional conversion from stored int64
	case zapcore.Uint8Type:
		return uint8(f.zapField.Integer) //nolint:gosec // intentional conversion from stored int64
	case zapcore.UintptrType:
		return uintptr(f.zapField.Integer)
	case zapcore.Float64Type:
		return math.Float64frombits(uint64(f.zapField.Integer)) //nolint:gosec // intentional conversion from stored int64
	case zapcore.Float32Type:
		return math.Float32frombits(uint32(f.zapField.Integer)) //nolint:gosec // intentional conversion from stored int64
	case zapcore.BoolType:
		return f.zapField.Integer == 1
	case zapcore.TimeType:
		// zap stores the nanosecond timestamp in Integer and the time's
		// location (not the time itself) in Interface.
		if loc, ok := f.zapField.Interface.(*time.Location); ok {
			return time.Unix(0, f.zapField.Integer).In(loc)
		}

		return time.Unix(0, f.zapField.Integer)
	case zapcore.DurationType:
		return time.Duration(f.zapField.Integer)
	case zapcore.BinaryType:
		return f.zapField.Interface
	case zapcore.ByteStringType:
		return f.zapField.Interface
	case zapcore.Complex64Type:
		return f.zapField.Interface
	case zapcore.Complex128Type:
		return f.zapField.Interface
	case zapcore.ArrayMarshalerType:
		return f.zapField.Interface
	case zapcore.ObjectMarshalerType:
		return f.zapField.Interface
	case zapcore.ReflectType:
		return f.zapField.Interface
	case zapcore.NamespaceType:
		return f.zapField.Interface
	case zapcore.StringerType:
		return f.zapField.Interface
	case zapcore.ErrorType:
		return f.zapField.Interface
	case zapcore.SkipType:
		return nil
	default:
		return f.zapField.Interface
	}
}

// ZapField returns the underlying zap.Field.
func (f ZapField) ZapField() zap.Field {
	return f.zapField
}

// CustomField represents a field with custom key-value pairs.
type CustomField struct {
	key   string
	value any
}

// Key returns the field's key.
func (f CustomField) Key() string {
	return f.key
}

// Value returns the field's value.
func (f CustomField) Value() any {
	return f.value
}

// ZapField converts to zap.Field.
func (f CustomField) ZapField() zap.Field {
	return zap.Any(f.key, f.value)
}

// LazyField represents a field that evaluates its value lazily.
type LazyField struct {
	key       string
	valueFunc func() any
}

// Key returns the field's key.
func (f LazyField) Key() string {
	return f.key
}

// Value returns the field's value (evaluated lazily).
func (f LazyField) Value() any {
	if f.valueFunc != nil {
		return f.valueFunc()
	}

	return nil
}

// ZapField converts to zap.Field.
func (f LazyField) ZapField() zap.Field {
	return zap.Any(f.key, f.Value())
}

// Field constructors mirroring zap's own field API, wrapped so callers only
// depend on this package's Field interface.
var (
	String = func(key, val string) Field {
		return ZapField{zap.String(key, val)}
	}

	Int = func(key string, val int) Field {
		return ZapField{zap.Int(key, val)}
	}

	Int8 = func(key string, val int8) Field {
		return ZapField{zap.Int8(key, val)}
	}

	Int16 = func(key string, val int16) Field {
		return ZapField{zap.Int16(key, val)}
	}

	Int32 = func(key string, val int32) Field {
		return ZapField{zap.Int32(key, val)}
	}

	Int64 = func(key string, val int64) Field {
		return ZapField{zap.Int64(key, val)}
	}

	Uint = func(key string, val uint) Field {
		return ZapField{zap.Uint(key, val)}
	}

	Uint8 = func(key string, val uint8) Field {
		return ZapField{zap.Uint8(key, val)}
	}

	Uint16 = func(key string, val uint16) Field {
		return ZapField{zap.Uint16(key, val)}
	}

	Uint32 = func(key string, val uint32) Field {
		return ZapField{zap.Uint32(key, val)}
	}

	Uint64 = func(key string, val uint64) Field {
		return ZapField{zap.Uint64(key, val)}
	}

	Float32 = func(key string, val float32) Field {
		return ZapField{zap.Float32(key, val)}
	}

	Float64 = func(key string, val float64) Field {
		return ZapField{zap.Float64(key, val)}
	}

	Bool = func(key string, val bool) Field {
		return ZapField{zap.Bool(key, val)}
	}

	Time = func(key string, val time.Time) Field {
		return ZapField{zap.Time(key, val)}
	}

	Duration = func(key string, val time.Duration) Field {
		return ZapField{zap.Duration(key, val)}
	}

	Error = func(err error) Field {
		return ZapField{zap.Error(err)}
	}

	Stringer = func(key string, val fmt.Stringer) Field {
		return ZapField{zap.Stringer(key, val)}
	}

	Any = func(key string, val any) Field {
		return ZapField{zap.Any(key, val)}
	}

	Namespace = func(key string) Field {
		return ZapField{zap.Namespace(key)}
	}

	Binary = func(key string, val []byte) Field {
		return ZapField{zap.Binary(key, val)}
	}

	ByteString = func(key string, val []byte) Field {
		return ZapField{zap.ByteString(key, val)}
	}

	Reflect = func(key string, val any) Field {
		return ZapField{zap.Reflect(key, val)}
	}

	Complex64 = func(key string, val complex64) Field {
		return ZapField{zap.Complex64(key, val)}
	}

	Complex128 = func(key string, val complex128) Field {
		return ZapField{zap.Complex128(key, val)}
	}

	Object = func(key string, val zapcore.ObjectMarshaler) Field {
		return ZapField{zap.Object(key, val)}
	}

	Array = func(key string, val zapcore.ArrayMarshaler) Field {
		return ZapField{zap.Array(key, val)}
	}

	Stack = func(key string) Field {
		return ZapField{zap.Stack(key)}
	}

	Strings = func(key string, val []string) Field {
		return ZapField{zap.Strings(key, val)}
	}
)

// Generic, domain-agnostic field helpers.
var (
	// LatencyMs creates a latency field in milliseconds, used by PerformanceMonitor.
	LatencyMs = func(latency time.Duration) Field {
		return Float64("latency.ms", float64(latency.Nanoseconds())/1e6)
	}

	// Custom creates a field holding an arbitrary key/value pair.
	Custom = func(key string, value any) Field {
		return CustomField{key: key, value: value}
	}

	// Lazy creates a field whose value is computed only if the log line is
	// actually emitted.
	Lazy = func(key string, valueFunc func() any) Field {
		return LazyField{key: key, valueFunc: valueFunc}
	}

	// Conditional only adds a field if condition is true.
	Conditional = func(condition bool, key string, value any) Field {
		if condition {
			return Custom(key, value)
		}

		return nil
	}

	// Nullable only adds a field if value is not nil.
	Nullable = func(key string, value any) Field {
		if value != nil {
			return Custom(key, value)
		}

		return nil
	}
)

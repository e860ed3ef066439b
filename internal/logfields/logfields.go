package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyOp         = "op"
	KeyElement    = "element"
	KeyBucket     = "bucket"
	KeyBuckets    = "buckets"
	KeyFromBucket = "from_buckets"
	KeyElements   = "elements"
	KeyLoadFactor = "load_factor"
	KeySet        = "set"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyAddr       = "addr"
	KeyStep       = "step"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
	KeyRequestID  = "request_id"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Op(name string) slog.Attr { return slog.String(KeyOp, name) }
func Element(v any) slog.Attr { return slog.Any(KeyElement, v) }
func Bucket(i int) slog.Attr { return slog.Int(KeyBucket, i) }
func Buckets(n int) slog.Attr { return slog.Int(KeyBuckets, n) }
func FromBuckets(n int) slog.Attr { return slog.Int(KeyFromBucket, n) }
func Elements(n int) slog.Attr { return slog.Int(KeyElements, n) }
func LoadFactor(f float64) slog.Attr { return slog.Float64(KeyLoadFactor, f) }
func Set(name string) slog.Attr { return slog.String(KeySet, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Addr(a string) slog.Attr { return slog.String(KeyAddr, a) }
func Step(i int) slog.Attr { return slog.Int(KeyStep, i) }
func Method(m string) slog.Attr { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr { return slog.String(KeyRemoteAddr, a) }
func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

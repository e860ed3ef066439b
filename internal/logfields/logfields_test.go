package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Op", KeyOp, "add", Op("add")},
		{"Set", KeySet, "s1", Set("s1")},
		{"Path", KeyPath, "/tmp/ops.yaml", Path("/tmp/ops.yaml")},
		{"Addr", KeyAddr, ":8080", Addr(":8080")},
		{"Element", KeyElement, "x", Element("x")},
		{"Method", KeyMethod, "GET", Method("GET")},
		{"RemoteAddr", KeyRemoteAddr, "1.2.3.4", RemoteAddr("1.2.3.4")},
		{"RequestID", KeyRequestID, "rid", RequestID("rid")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := Bucket(3); v.Key != KeyBucket {
		t.Fatalf("Bucket key mismatch: %s", v.Key)
	}
	if v := Buckets(16); v.Key != KeyBuckets || v.Value.Int64() != 16 {
		t.Fatalf("Buckets mismatch: %s=%v", v.Key, v.Value)
	}
	if v := FromBuckets(8); v.Key != KeyFromBucket {
		t.Fatalf("FromBuckets key mismatch: %s", v.Key)
	}
	if v := Elements(7); v.Key != KeyElements {
		t.Fatalf("Elements key mismatch: %s", v.Key)
	}
	if v := LoadFactor(0.5); v.Key != KeyLoadFactor || v.Value.Float64() != 0.5 {
		t.Fatalf("LoadFactor mismatch: %s=%v", v.Key, v.Value)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
	if v := Status(200); v.Key != KeyStatus {
		t.Fatalf("Status key mismatch: %s", v.Key)
	}
	if v := Step(2); v.Key != KeyStep {
		t.Fatalf("Step key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }

package config

import "testing"

func TestParseBound(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantAbs int
		wantRat float64
		wantIsR bool
		wantErr bool
	}{
		{"absolute", "3", 3, 0, false, false},
		{"ratio", "0.3r", 0, 0.3, true, false},
		{"empty", "", 0, 0, false, false},
		{"bad absolute", "nope", 0, 0, false, true},
		{"bad ratio", "noper", 0, 0, false, true},
		{"negative absolute", "-1", 0, 0, false, true},
		{"negative ratio", "-0.1r", 0, 0, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBound(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Abs != tc.wantAbs || got.Ratio != tc.wantRat || got.IsRatio != tc.wantIsR {
				t.Fatalf("ParseBound(%q) = %+v, want abs=%d ratio=%v isRatio=%v", tc.in, got, tc.wantAbs, tc.wantRat, tc.wantIsR)
			}
		})
	}
}

func TestSearchConfigToVariantParams(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.Search.ToVariantParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.MaxMatches != 20 {
		t.Errorf("MaxMatches = %d, want 20", p.MaxMatches)
	}
	if p.MaxAnagramDistance.Abs != 3 || p.MaxAnagramDistance.IsRatio {
		t.Errorf("MaxAnagramDistance = %+v, want abs 3", p.MaxAnagramDistance)
	}
}

func TestSearchConfigRejectsNegativeWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.WeightLD = -1
	if _, err := cfg.Search.ToVariantParams(); err == nil {
		t.Fatal("expected error for negative component weight")
	}
}

func TestDefaultConfigToTextSearchParams(t *testing.T) {
	cfg := DefaultConfig()
	tp, err := cfg.ToTextSearchParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tp.MaxNgram != 2 || tp.MaxSeq != 250 {
		t.Errorf("unexpected textsearch params: %+v", tp)
	}
}

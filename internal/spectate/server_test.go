package spectate

import "testing"

func TestParseMatchID(t *testing.T) {
	tests := []struct {
		path   string
		wantID string
		wantOK bool
	}{
		{"/matches/abc123/stream", "abc123", true},
		{"/matches//stream", "", true},
		{"/matches/abc123", "", false},
		{"/other", "", false},
	}
	for _, tt := range tests {
		id, ok := parseMatchID(tt.path)
		if ok != tt.wantOK || (ok && id != tt.wantID) {
			t.Errorf("parseMatchID(%q) = (%q, %v), want (%q, %v)", tt.path, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

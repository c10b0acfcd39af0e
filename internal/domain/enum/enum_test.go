package enum

import (
	"encoding/json"
	"testing"
)

func TestParseTrackingType(t *testing.T) {
	tests := []struct {
		in      string
		want    TrackingType
		wantErr bool
	}{
		{"UNIT", TrackingUnit, false},
		{"multi-use", TrackingMultiUse, false},
		{" Manual ", TrackingManual, false},
		{"bulk", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTrackingType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTrackingType(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTrackingType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTrackingTypeDepletable(t *testing.T) {
	if !TrackingUnit.IsDepletable() || !TrackingMultiUse.IsDepletable() {
		t.Error("UNIT and MULTI-USE must be depletable")
	}
	if TrackingManual.IsDepletable() {
		t.Error("MANUAL must not be depletable")
	}
}

func TestWorkerRoleJSON(t *testing.T) {
	var payload struct {
		Role WorkerRole `json:"role"`
	}
	if err := json.Unmarshal([]byte(`{"role":"Server"}`), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Role != WorkerRoleServer {
		t.Errorf("role = %q", payload.Role)
	}
	if err := json.Unmarshal([]byte(`{"role":"chef"}`), &payload); err == nil {
		t.Error("expected unknown role to be rejected")
	}
}

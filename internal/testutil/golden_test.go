package testutil

import "testing"

func TestNormalize(t *testing.T) {
	in := "created:     2024-05-01T09:30:00Z\n" +
		"updated:     2024-05-01T09:30:00.123+02:00\n" +
		"id:          3f2b8c1e-9a4d-4e6f-8b7a-1c2d3e4f5a6b\n" +
		"order:       2\n"
	want := "created:     <TIME>\n" +
		"updated:     <TIME>\n" +
		"id:          <ID>\n" +
		"order:       2\n"

	if got := Normalize(in); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalize_LeavesDatesAlone(t *testing.T) {
	in := "due:         2024-07-01\n"
	if got := Normalize(in); got != in {
		t.Errorf("plain dates must not change, got %q", got)
	}
}

package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestNormalizeDefaultsStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   Status
	}{
		{"missing", "", StatusWishlist},
		{"bogus", "Bogus", StatusWishlist},
		{"lowercase not recognized", "applied", StatusWishlist},
		{"valid kept", "Interview", StatusInterview},
		{"valid with whitespace", "  Offer ", StatusOffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Normalize(RawJob{Company: "Acme", Role: "Eng", Status: tt.status})
			if err != nil {
				t.Fatalf("Normalize returned error: %v", err)
			}
			if rec.Status != tt.want {
				t.Errorf("status = %q, want %q", rec.Status, tt.want)
			}
		})
	}
}

func TestNormalizeRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawJob
		field   string
		wantErr bool
	}{
		{"missing company", RawJob{Role: "Eng"}, "company", true},
		{"whitespace company", RawJob{Company: "   ", Role: "Eng"}, "company", true},
		{"missing role", RawJob{Company: "Acme"}, "role", true},
		{"whitespace role", RawJob{Company: "Acme", Role: "\t"}, "role", true},
		{"both present", RawJob{Company: "Acme", Role: "Eng"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestNormalizeOptionalDefaults(t *testing.T) {
	rec, err := Normalize(RawJob{Company: "Acme", Role: "Eng"})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Tags == nil || len(rec.Tags) != 0 {
		t.Errorf("tags = %#v, want empty non-nil set", rec.Tags)
	}
	if rec.Notes != "" || rec.Location != "" {
		t.Errorf("notes/location not defaulted: %q %q", rec.Notes, rec.Location)
	}
	if rec.ID == "" {
		t.Error("expected an id to be assigned")
	}
	if rec.Feedback != nil {
		t.Errorf("feedback = %#v, want nil", rec.Feedback)
	}
}

func TestNormalizeTagDedup(t *testing.T) {
	rec, err := Normalize(RawJob{
		Company: "Acme",
		Role:    "Eng",
		Tags:    []string{" Remote ", "Remote", "", "Tech", "Remote", "  "},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Remote", "Tech"}
	if !reflect.DeepEqual(rec.Tags, want) {
		t.Errorf("tags = %v, want %v", rec.Tags, want)
	}
}

func TestNormalizeTruncatesAppliedDate(t *testing.T) {
	applied := time.Date(2025, 6, 3, 14, 27, 9, 0, time.UTC)
	rec, err := Normalize(RawJob{Company: "Acme", Role: "Eng", AppliedDate: applied})
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	if !rec.AppliedDate.Equal(want) {
		t.Errorf("applied date = %v, want %v", rec.AppliedDate, want)
	}
}

func TestApplyStatusChange(t *testing.T) {
	rec := mustNormalize(t, RawJob{Company: "Acme", Role: "Eng"})

	out, err := ApplyStatusChange(rec, StatusInterview)
	if err != nil {
		t.Fatal(err)
	}
	if out.Status != StatusInterview {
		t.Errorf("status = %q, want Interview", out.Status)
	}
	if rec.Status != StatusWishlist {
		t.Errorf("input mutated: status = %q", rec.Status)
	}
	if !out.UpdatedAt.After(rec.UpdatedAt) {
		t.Error("UpdatedAt was not refreshed")
	}

	// Backward moves are allowed; the graph is permissive.
	back, err := ApplyStatusChange(out, StatusApplied)
	if err != nil {
		t.Fatalf("Interview -> Applied should be allowed: %v", err)
	}
	if back.Status != StatusApplied {
		t.Errorf("status = %q, want Applied", back.Status)
	}
}

func TestApplyStatusChangeRejectsUnknown(t *testing.T) {
	rec := mustNormalize(t, RawJob{Company: "Acme", Role: "Eng"})
	_, err := ApplyStatusChange(rec, Status("Ghosted"))
	var serr *InvalidStatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *InvalidStatusError", err)
	}
	if serr.Status != "Ghosted" {
		t.Errorf("status in error = %q", serr.Status)
	}
}

func TestAddRemoveTagRoundTrip(t *testing.T) {
	rec := mustNormalize(t, RawJob{Company: "Acme", Role: "Eng"})

	tagged := AddTag(rec, "Remote")
	if !reflect.DeepEqual(tagged.Tags, []string{"Remote"}) {
		t.Fatalf("tags after add = %v", tagged.Tags)
	}
	if len(rec.Tags) != 0 {
		t.Fatalf("input mutated: %v", rec.Tags)
	}

	// Adding again is a no-op.
	again := AddTag(tagged, " Remote ")
	if !reflect.DeepEqual(again.Tags, []string{"Remote"}) {
		t.Fatalf("duplicate add changed tags: %v", again.Tags)
	}

	// Add then remove returns a record equal to the original except UpdatedAt.
	back := RemoveTag(tagged, "Remote")
	back.UpdatedAt = rec.UpdatedAt
	if !reflect.DeepEqual(back, rec) {
		t.Errorf("round trip differs:\n got %#v\nwant %#v", back, rec)
	}

	// Removing an absent tag is a no-op.
	same := RemoveTag(rec, "Onsite")
	if !reflect.DeepEqual(same.Tags, rec.Tags) {
		t.Errorf("removing absent tag changed tags: %v", same.Tags)
	}
}

func mustNormalize(t *testing.T, raw RawJob) JobRecord {
	t.Helper()
	rec, err := Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	return rec
}

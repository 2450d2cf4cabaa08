package domain_test

import (
	"testing"
	"time"

	"github.com/iludo/profile-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func genderPtr(g domain.Gender) *domain.Gender { return &g }

func birthdayFor(age int, now time.Time) *time.Time {
	b := now.AddDate(-age, 0, -1)
	return &b
}

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.Profile
		want    *string
	}{
		{"no first name", domain.Profile{}, nil},
		{"empty first name", domain.Profile{FirstName: strPtr("")}, nil},
		{"first only", domain.Profile{FirstName: strPtr("Ada")}, strPtr("Ada")},
		{"full name", domain.Profile{FirstName: strPtr("Ada"), LastName: strPtr("Lovelace")}, strPtr("Ada Lovelace")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.profile.Name()
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Name() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Name() = %q, want %q", *got, *tt.want)
			}
		})
	}
}

func TestAgeAt(t *testing.T) {
	birthday := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	profile := domain.Profile{Birthday: &birthday}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"day before anniversary", time.Date(2020, time.June, 14, 12, 0, 0, 0, time.UTC), 29},
		{"on anniversary", time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC), 30},
		{"after anniversary", time.Date(2020, time.December, 1, 0, 0, 0, 0, time.UTC), 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := profile.AgeAt(tt.now)
			if got == nil || *got != tt.want {
				t.Errorf("AgeAt(%v) = %v, want %d", tt.now, got, tt.want)
			}
		})
	}

	var unset domain.Profile
	if age := unset.Age(); age != nil {
		t.Errorf("Age() with no birthday = %v, want nil", age)
	}
}

func TestCompletion(t *testing.T) {
	var p domain.Profile
	if got := p.Completion(); got != domain.CompletionIncomplete {
		t.Errorf("Completion() = %v, want %v", got, domain.CompletionIncomplete)
	}

	p.Gender = genderPtr(domain.GenderFemale)
	p.Preference = &domain.Preference{Genders: []domain.Gender{domain.GenderMale}}
	if got := p.Completion(); got != domain.CompletionProfileSet {
		t.Errorf("Completion() = %v, want %v", got, domain.CompletionProfileSet)
	}

	p.Plate = &domain.Plate{Value: "B-XY 1234"}
	if got := p.Completion(); got != domain.CompletionPlateSet {
		t.Errorf("Completion() = %v, want %v", got, domain.CompletionPlateSet)
	}
}

func TestVerified(t *testing.T) {
	var p domain.Profile
	if p.Verified() {
		t.Error("Verified() without record = true, want false")
	}
	p.Verification = &domain.Verification{Verified: false}
	if p.Verified() {
		t.Error("Verified() with failed record = true, want false")
	}
	p.Verification.Verified = true
	if !p.Verified() {
		t.Error("Verified() with passed record = false, want true")
	}
}

func TestMatchesPreference(t *testing.T) {
	now := time.Now()
	agePref := &domain.Preference{Age: &[2]int{25, 35}}
	genderPref := &domain.Preference{Genders: []domain.Gender{domain.GenderFemale}}

	tests := []struct {
		name      string
		viewer    domain.Profile
		candidate *domain.Profile
		want      bool
	}{
		{"nil candidate", domain.Profile{}, nil, false},
		{"no preference matches anyone", domain.Profile{}, &domain.Profile{}, true},
		{
			"age inside bound",
			domain.Profile{Preference: agePref},
			&domain.Profile{Birthday: birthdayFor(30, now)},
			true,
		},
		{
			"age above bound",
			domain.Profile{Preference: agePref},
			&domain.Profile{Birthday: birthdayFor(40, now)},
			false,
		},
		{
			"age at upper bound inclusive",
			domain.Profile{Preference: agePref},
			&domain.Profile{Birthday: birthdayFor(35, now)},
			true,
		},
		{
			"unset age cannot satisfy age preference",
			domain.Profile{Preference: agePref},
			&domain.Profile{},
			false,
		},
		{
			"gender not in set",
			domain.Profile{Preference: genderPref},
			&domain.Profile{Gender: genderPtr(domain.GenderMale)},
			false,
		},
		{
			"gender in set",
			domain.Profile{Preference: genderPref},
			&domain.Profile{Gender: genderPtr(domain.GenderFemale)},
			true,
		},
		{
			"unset gender cannot satisfy gender preference",
			domain.Profile{Preference: genderPref},
			&domain.Profile{},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.viewer.MatchesPreference(tt.candidate); got != tt.want {
				t.Errorf("MatchesPreference() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupeGenders(t *testing.T) {
	in := []domain.Gender{domain.GenderMale, domain.GenderFemale, domain.GenderMale, domain.GenderFemale}
	got := domain.DedupeGenders(in)
	want := []domain.Gender{domain.GenderMale, domain.GenderFemale}
	if len(got) != len(want) {
		t.Fatalf("DedupeGenders() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DedupeGenders()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

package commands

import (
	"testing"
)

func newSuggestRegistry(names ...string) *Registry {
	r := NewRegistry()
	for _, name := range names {
		r.Register(Descriptor{Name: name, Handler: noopHandler(name)})
	}
	return r
}

func TestSuggest(t *testing.T) {
	s := NewSuggester(newSuggestRegistry("start", "status", "help", "remind"))

	tests := []struct {
		name    string
		typed   string
		want    string
		wantHit bool
	}{
		{name: "distance one", typed: "statu", want: "status", wantHit: true},
		{name: "exact match", typed: "help", want: "help", wantHit: true},
		{name: "case folded", typed: "HELP", want: "help", wantHit: true},
		{name: "distance two", typed: "remnd1", want: "remind", wantHit: true},
		{name: "too far away", typed: "weather", wantHit: false},
		{name: "empty registry distance", typed: "xxxxxxxxxx", wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := s.Suggest(tt.typed)
			if hit != tt.wantHit {
				t.Fatalf("Suggest(%q) hit = %v, want %v", tt.typed, hit, tt.wantHit)
			}
			if hit && got != tt.want {
				t.Errorf("Suggest(%q) = %q, want %q", tt.typed, got, tt.want)
			}
		})
	}
}

func TestSuggest_TieBreakIsRegistrationOrder(t *testing.T) {
	// "pinA" and "pinB" are both distance 1 from "pin"; the earlier
	// registration must win every time
	s := NewSuggester(newSuggestRegistry("pina", "pinb"))

	for i := 0; i < 10; i++ {
		got, hit := s.Suggest("pin")
		if !hit {
			t.Fatal("Suggest(pin) missed, want a hit")
		}
		if got != "pina" {
			t.Fatalf("Suggest(pin) = %q, want %q (first registered wins)", got, "pina")
		}
	}
}

func TestSuggest_ScenarioStat(t *testing.T) {
	// The registry has start and status; /stat suggests start, which is
	// one edit away, over status at two
	s := NewSuggester(newSuggestRegistry("start", "status"))

	got, hit := s.Suggest("stat")
	if !hit || got != "start" {
		t.Errorf("Suggest(stat) = %q, %v; want start, true", got, hit)
	}
}

func TestSuggest_EmptyRegistry(t *testing.T) {
	s := NewSuggester(NewRegistry())

	if got, hit := s.Suggest("anything"); hit {
		t.Errorf("Suggest on empty registry = %q, want no hit", got)
	}
}

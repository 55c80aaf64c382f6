package galaxy

import (
	"errors"
	"testing"
)

func TestFactionFromCode(t *testing.T) {
	cases := map[int]Faction{
		0: FactionAny,
		1: FactionHumans,
		2: FactionTerminids,
		3: FactionAutomaton,
		4: FactionIlluminate,
	}
	for code, want := range cases {
		if got := FactionFromCode(code); got != want {
			t.Fatalf("code %d: got %v, want %v", code, got, want)
		}
	}
	// Unknown codes decode to the explicit unknown variant, never an error.
	for _, code := range []int{5, 99, -7} {
		if got := FactionFromCode(code); got != FactionUnknown {
			t.Fatalf("code %d: got %v, want FactionUnknown", code, got)
		}
	}
}

func TestCampaignTypeFromCode(t *testing.T) {
	if got := CampaignTypeFromCode(1); got != CampaignTypeRecon {
		t.Fatalf("got %v, want recon", got)
	}
	if got := CampaignTypeFromCode(42); got != CampaignTypeUnknown {
		t.Fatalf("got %v, want unknown", got)
	}
}

func TestTaskTypeFromCodeRejectsUnknown(t *testing.T) {
	if _, err := TaskTypeFromCode(int(TaskControl)); err != nil {
		t.Fatalf("known code: %v", err)
	}
	_, err := TaskTypeFromCode(99)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected decode error for unknown task type, got %v", err)
	}
}

func TestValueTypeFromCodeMapsUnknownToSentinel(t *testing.T) {
	if got := ValueTypeFromCode(12); got != ValuePlanet {
		t.Fatalf("got %v, want planet", got)
	}
	if got := ValueTypeFromCode(77); got != ValueUnknown {
		t.Fatalf("got %v, want the unknown sentinel", got)
	}
}

func TestRewardTypeFromCode(t *testing.T) {
	if got := RewardTypeFromCode(1); got != RewardTypeMedals {
		t.Fatalf("got %v, want medals", got)
	}
	if got := RewardTypeFromCode(9); got != RewardTypeUnknown {
		t.Fatalf("got %v, want unknown", got)
	}
}

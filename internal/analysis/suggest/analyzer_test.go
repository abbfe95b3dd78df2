package suggest

import (
	"reflect"
	"testing"
)

func TestFollowUpsMatchTopics(t *testing.T) {
	suggestions := FollowUps("what concerts are happening in lagos?", "There are several shows and festivals coming up.")

	if len(suggestions) == 0 || len(suggestions) > 3 {
		t.Fatalf("got %d suggestions", len(suggestions))
	}
	if suggestions[0] != followUps[Events] {
		t.Fatalf("expected the events follow-up first, got %q", suggestions[0])
	}
}

func TestFollowUpsDeterministic(t *testing.T) {
	first := FollowUps("trends for artists on youtube", "reply")
	second := FollowUps("trends for artists on youtube", "reply")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("suggestions not deterministic: %v vs %v", first, second)
	}
}

func TestFollowUpsFallback(t *testing.T) {
	suggestions := FollowUps("zzz", "qqq")

	want := []string{followUps[Trends], followUps[Artists], followUps[Events]}
	if !reflect.DeepEqual(suggestions, want) {
		t.Fatalf("fallback = %v, want %v", suggestions, want)
	}
}

func TestUserWordsWeighMore(t *testing.T) {
	// "revenue" appears once in the user prompt, "youtube" once in the reply;
	// the user topic must rank first.
	suggestions := FollowUps("how is merch revenue?", "youtube is also relevant")
	if suggestions[0] != followUps[Revenue] {
		t.Fatalf("expected revenue first, got %q", suggestions[0])
	}
}

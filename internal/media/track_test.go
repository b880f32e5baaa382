package media

import "testing"

func TestDurableID_Stable(t *testing.T) {
	a := DurableID("Artist", "Album", 3, "Title")
	b := DurableID("Artist", "Album", 3, "Title")

	if a != b {
		t.Errorf("DurableID not stable: %d != %d", a, b)
	}
}

func TestDurableID_DistinguishesFields(t *testing.T) {
	base := DurableID("Artist", "Album", 3, "Title")

	variants := []uint64{
		DurableID("Other", "Album", 3, "Title"),
		DurableID("Artist", "Other", 3, "Title"),
		DurableID("Artist", "Album", 4, "Title"),
		DurableID("Artist", "Album", 3, "Other"),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collides with base id", i)
		}
	}
}

func TestDurableID_FieldBoundaries(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not hash alike.
	a := DurableID("ab", "c", 1, "x")
	b := DurableID("a", "bc", 1, "x")

	if a == b {
		t.Error("durable id ignores field boundaries")
	}
}

func TestRating_Valid(t *testing.T) {
	for r := Rating(0); r <= MaxRating; r++ {
		if !r.Valid() {
			t.Errorf("Rating(%d).Valid() = false, want true", r)
		}
	}
	if Rating(-1).Valid() {
		t.Error("Rating(-1).Valid() = true, want false")
	}
	if Rating(6).Valid() {
		t.Error("Rating(6).Valid() = true, want false")
	}
}

func TestSearchQuery_Searchable(t *testing.T) {
	tests := []struct {
		name  string
		query SearchQuery
		want  bool
	}{
		{"empty", SearchQuery{}, false},
		{"short any", SearchQuery{Any: "ab"}, false},
		{"long any", SearchQuery{Any: "abc"}, true},
		{"short artist", ForArtist("ab"), false},
		{"long artist", ForArtist("abba"), true},
		{"long album", ForAlbum("arrival"), true},
		{"long track", ForTrack("sos"), true},
	}
	for _, tt := range tests {
		if got := tt.query.Searchable(); got != tt.want {
			t.Errorf("%s: Searchable() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

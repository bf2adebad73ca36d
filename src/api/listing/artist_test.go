package listing

import "testing"

func TestInferArtist(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{`Pablo Picasso "La Colombe" signed lithograph`, "Pablo Picasso"},
		{"Original oil painting by Mary Cassatt", "Mary Cassatt"},
		{`Painted by John Smith "Untitled"`, "John Smith"},
		{"Yayoi Kusama - Pumpkin print, numbered", "Yayoi Kusama"},
		{"Keith Haring: Pop Shop IV", "Keith Haring"},
		{"Gerhard Richter Abstraktes Bild", "Gerhard Richter Abstraktes Bild"},
		{"Rare 1968 poster lot #42", UnknownArtist},
		{"Untitled", UnknownArtist},
		{"", UnknownArtist},
	}

	for _, tt := range tests {
		if got := InferArtist(tt.title); got != tt.want {
			t.Errorf("InferArtist(%q) = %q; want %q", tt.title, got, tt.want)
		}
	}
}

// Re-running inference on an already resolved artist must not change it.
func TestInferArtistIdempotent(t *testing.T) {
	titles := []string{
		`Pablo Picasso "La Colombe" signed lithograph`,
		"Original oil painting by Mary Cassatt",
		// quote prefix carrying its own "by " marker
		`Painted by John Smith "Untitled"`,
		"Mary by Lake",
		"Rare 1968 poster lot #42",
		"Untitled",
	}

	for _, title := range titles {
		once := InferArtist(title)
		if twice := InferArtist(once); twice != once {
			t.Errorf("InferArtist not idempotent for %q: %q -> %q", title, once, twice)
		}
	}
}

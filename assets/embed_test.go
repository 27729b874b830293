package assets

import (
	"fmt"
	"testing"
)

func TestEmbeddedImagesDecode(t *testing.T) {
	names := []string{"img/ship.png", "img/bullet.png", "img/star.png"}
	for i := 1; i <= 9; i++ {
		names = append(names, fmt.Sprintf("img/ufo%d.png", i))
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			img, err := DecodeImage(name)
			if err != nil {
				t.Fatalf("DecodeImage: %v", err)
			}
			if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
				t.Fatalf("empty image %v", b)
			}
		})
	}
}

func TestCleanAssetPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"img/ship.png", "img/ship.png"},
		{"assets/img/ship.png", "img/ship.png"},
		{"/home/me/game/assets/audio/pew.wav", "audio/pew.wav"},
		{"img/", "img"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := cleanAssetPath(tt.in); got != tt.want {
				t.Fatalf("cleanAssetPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestListAndMissing(t *testing.T) {
	files, err := List("audio")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 1 || files[0] != "audio/pew.wav" {
		t.Fatalf("List(audio) = %v", files)
	}
	if _, err := LoadFile("img/nope.png"); err == nil {
		t.Fatalf("expected error for missing asset")
	}
}

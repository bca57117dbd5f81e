package icons

import (
	"testing"

	"github.com/Ismailco/PWA2Native/internal/manifest"
)

func TestParseNominalSize(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"192x192", 192},
		{"48x48 96x96", 48},
		{"512X512", 512},
		{"any", 0},
		{"", 0},
		{"x48", 0},
		{"bigxbig", 0},
	}
	for _, tt := range tests {
		if got := ParseNominalSize(tt.in); got != tt.want {
			t.Errorf("ParseNominalSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewCatalog(t *testing.T) {
	set := NewCatalog([]manifest.Icon{
		{Src: "/a.png", Sizes: "48x48", Type: "image/png"},
		{Src: "", Sizes: "96x96"},
		{Src: "/b.svg", Sizes: "any", Purpose: "maskable"},
		{Src: "/a.png", Sizes: "48x48"},
	})
	if len(set) != 3 {
		t.Fatalf("len = %d, want 3 (src-less entry dropped, duplicates kept)", len(set))
	}
	if set[0].NominalSize != 48 || set[1].NominalSize != 0 || set[1].Purpose != "maskable" {
		t.Errorf("set = %+v %+v", *set[0], *set[1])
	}
	for _, d := range set {
		if d.LocalPath != "" {
			t.Errorf("LocalPath set before fetch: %+v", *d)
		}
	}
}

func fetched(sizes ...int) IconSet {
	var set IconSet
	for i, s := range sizes {
		set = append(set, &IconDescriptor{
			Source:      "/i.png",
			NominalSize: s,
			LocalPath:   "icon_" + string(rune('a'+i)),
		})
	}
	return set
}

func TestSelectBestMatch(t *testing.T) {
	tests := []struct {
		name   string
		set    IconSet
		target int
		want   string
		ok     bool
	}{
		{"closest below", fetched(48, 96, 144), 100, "icon_b", true},
		{"exact", fetched(48, 96, 144), 144, "icon_c", true},
		{"tie goes to earliest", fetched(48, 96, 144), 120, "icon_b", true},
		{"tie reversed order", fetched(144, 96), 120, "icon_a", true},
		{"above all", fetched(48, 96), 1024, "icon_b", true},
		{"empty", nil, 48, "", false},
		{"all sizeless", fetched(0, 0), 48, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectBestMatch(tt.set, tt.target)
			if got != tt.want || ok != tt.ok {
				t.Errorf("got (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSelectSkipsUnfetched(t *testing.T) {
	set := fetched(96, 48)
	set[0].LocalPath = ""
	got, ok := SelectBestMatch(set, 96)
	if !ok || got != "icon_b" {
		t.Errorf("got (%q, %v), want icon_b", got, ok)
	}

	set[1].LocalPath = ""
	if _, err := SelectDescriptor(set, 96); err != ErrNoIcon {
		t.Errorf("err = %v, want ErrNoIcon", err)
	}
}

func TestSelectIsPure(t *testing.T) {
	set := fetched(48, 96)
	before := *set[0]
	SelectBestMatch(set, 48)
	SelectBestMatch(set, 48)
	if *set[0] != before {
		t.Error("selector mutated the set")
	}
}

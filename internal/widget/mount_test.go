package widget

import "testing"

type fakeGate bool

func (g fakeGate) IsInputAllowed() bool { return bool(g) }

type noteProps struct {
	Word  string
	Saved int
}

func TestMount_Branches(t *testing.T) {
	target := func(p noteProps) string { return "input:" + p.Word }
	fallback := func(p noteProps) string { return "locked:" + p.Word }
	props := noteProps{Word: "gato", Saved: 2}

	cases := []struct {
		name     string
		allowed  bool
		fallback Component[noteProps]
		want     string
	}{
		{"allowed", true, fallback, "input:gato"},
		{"denied with fallback", false, fallback, "locked:gato"},
		{"denied without fallback", false, nil, ""},
		{"allowed without fallback", true, nil, "input:gato"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Mount(fakeGate(tc.allowed), target, tc.fallback)(props)
			if got != tc.want {
				t.Fatalf("Mount(...)(props) = %q, want %q", got, tc.want)
			}
		})
	}
}

type switchGate struct{ open bool }

func (g *switchGate) IsInputAllowed() bool { return g.open }

func TestMount_ConsultsGateOnEveryRender(t *testing.T) {
	g := &switchGate{}
	var seen []noteProps
	view := Mount[noteProps](g, func(p noteProps) string {
		seen = append(seen, p)
		return "input"
	}, nil)

	if got := view(noteProps{Word: "perro"}); got != "" {
		t.Fatalf("closed gate rendered %q", got)
	}
	g.open = true
	if got := view(noteProps{Word: "perro", Saved: 1}); got != "input" {
		t.Fatalf("open gate rendered %q, want input", got)
	}
	if len(seen) != 1 || seen[0] != (noteProps{Word: "perro", Saved: 1}) {
		t.Fatalf("target props = %#v, want forwarded unchanged", seen)
	}
}

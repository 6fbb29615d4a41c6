package xref

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		className string
		start     string
		end       string
		want      Ref
	}{
		{
			name:      "inner class single line",
			base:      "/xref",
			className: "a.b.C$Inner",
			start:     "10",
			end:       "10",
			want:      Ref{Target: "/xref/a/b/C.html#10", Text: "10", Linked: true},
		},
		{
			name:      "inner class range",
			base:      "/xref",
			className: "a.b.C$Inner",
			start:     "10",
			end:       "15",
			want:      Ref{Target: "/xref/a/b/C.html#10", Text: "10-15", Linked: true},
		},
		{
			name:      "base with trailing slash",
			base:      "../xref/",
			className: "com.acme.Engine",
			start:     "3",
			end:       "4",
			want:      Ref{Target: "../xref/com/acme/Engine.html#3", Text: "3-4", Linked: true},
		},
		{
			name:      "nested inner classes",
			base:      "x",
			className: "p.Outer$Mid$Inner",
			start:     "1",
			end:       "1",
			want:      Ref{Target: "x/p/Outer.html#1", Text: "1", Linked: true},
		},
		{
			name:      "no base configured",
			base:      "",
			className: "a.b.C",
			start:     "10",
			end:       "15",
			want:      Ref{Text: "10-15"},
		},
		{
			name:      "missing source line",
			base:      "",
			className: "a.b.C",
			start:     "",
			end:       "",
			want:      Ref{Text: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.base, tt.className, tt.start, tt.end)
			if got != tt.want {
				t.Errorf("Resolve(%q, %q, %q, %q) = %+v, want %+v",
					tt.base, tt.className, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestNormalizeBaseIsStable(t *testing.T) {
	base := "/xref"
	first := NormalizeBase(base)
	second := NormalizeBase(base)
	if first != "/xref/" || second != "/xref/" {
		t.Errorf("NormalizeBase(%q) = %q then %q, want /xref/ both times", base, first, second)
	}
	if NormalizeBase("/xref//") != "/xref/" {
		t.Errorf("expected repeated separators to collapse")
	}
	if base != "/xref" {
		t.Errorf("input was modified: %q", base)
	}
}

func TestClassPath(t *testing.T) {
	if got := ClassPath("Default"); got != "Default" {
		t.Errorf("ClassPath(Default) = %q", got)
	}
	if got := ClassPath("a.b.C$1"); got != "a/b/C" {
		t.Errorf("ClassPath(a.b.C$1) = %q, want a/b/C", got)
	}
}

package enhancer

import (
	"net/url"
	"testing"
)

func TestParameterDefaultsMatchParser(t *testing.T) {
	for _, kind := range Kinds {
		if Summary(kind) == "" {
			t.Errorf("%s: no summary", kind)
		}
		params := url.Values{}
		for _, p := range Parameters(kind) {
			if p.Usage == "" {
				t.Errorf("%s.%s: no usage", kind, p.Name)
			}
			params.Set(p.Name, p.Default)
		}
		explicit, err := ParseOperation(kind, params)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		implicit, err := ParseOperation(kind, url.Values{})
		if err != nil {
			t.Fatal(err)
		}
		if explicit != implicit {
			t.Errorf("%s: listed defaults give %+v, parser defaults %+v", kind, explicit, implicit)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join([]Direction{Horizontal, Both}); got != "horizontal, both" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Join([]Kind(nil)); got != "" {
		t.Fatalf("want empty, got %q", got)
	}
}

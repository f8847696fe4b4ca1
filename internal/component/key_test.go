package component

import "testing"

func TestParseKey(t *testing.T) {
	cases := []struct {
		in   string
		want Key
		err  bool
	}{
		{"service:auth:better-auth", Key{KindService, "auth", "better-auth"}, false},
		{"fragment:page:dashboard", Key{KindFragment, "page", "dashboard"}, false},
		{"auth:better-auth", Key{KindService, "auth", "better-auth"}, false},
		{"widget:auth:x", Key{}, true},
		{"auth", Key{}, true},
		{"", Key{}, true},
		{"service::x", Key{}, true},
	}
	for _, tc := range cases {
		got, err := ParseKey(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("ParseKey(%q) should fail", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseKey(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseKey(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestKeyString(t *testing.T) {
	k := Key{Kind: KindService, Type: "database", Provider: "postgresql"}
	if k.String() != "service:database:postgresql" {
		t.Errorf("unexpected key rendering %q", k.String())
	}
}

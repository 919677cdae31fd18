package generator

import "testing"

func TestBuildOutputPath(t *testing.T) {
	cases := []struct {
		permalink string
		want      string
	}{
		{permalink: "/", want: "index.html"},
		{permalink: "", want: "index.html"},
		{permalink: "/about/", want: "about/index.html"},
		{permalink: "/about", want: "about/index.html"},
		{permalink: "/docs/setup/", want: "docs/setup/index.html"},
		{permalink: "/feed.xml", want: "feed.xml"},
		{permalink: "/docs/changelog.txt", want: "docs/changelog.txt"},
	}

	for _, tc := range cases {
		if got := buildOutputPath(tc.permalink); got != tc.want {
			t.Fatalf("buildOutputPath(%q) = %q, want %q", tc.permalink, got, tc.want)
		}
	}
}

func TestJoinOutputPath(t *testing.T) {
	if got := joinOutputPath("", "about/index.html"); got != "about/index.html" {
		t.Fatalf("unexpected join %q", got)
	}
	if got := joinOutputPath("public", "about/index.html"); got != "public/about/index.html" {
		t.Fatalf("unexpected join %q", got)
	}
}

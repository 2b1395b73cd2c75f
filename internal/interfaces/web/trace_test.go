package web

import "testing"

func TestShouldCreateWebSpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "web.Handler.NewsList", want: true},
		{name: "flag proxy span", in: "web.FlagProxy.ServeHTTP", want: true},
		{name: "middleware span", in: "web.RequestLogging", want: false},
		{name: "helper span", in: "web.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldCreateWebSpan(tt.in)
			if got != tt.want {
				t.Fatalf("shouldCreateWebSpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

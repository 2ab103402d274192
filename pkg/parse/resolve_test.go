package parse

import (
	"testing"
)

func TestResolve_AbsoluteHrefUnchanged(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
	}{
		{name: "HTTPS", base: "https://a.com/x/y.html", href: "https://a.com/other"},
		{name: "HTTP", base: "https://a.com/x/y.html", href: "http://b.com/q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.base, tt.href); got != tt.href {
				t.Errorf("Resolve(%q, %q) = %q, want unchanged", tt.base, tt.href, got)
			}
		})
	}
}

func TestResolve_Rules(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		href     string
		expected string
	}{
		{
			name:     "ProtocolRelative",
			base:     "https://a.com/x/y.html",
			href:     "//cdn.com/q",
			expected: "https://cdn.com/q",
		},
		{
			name:     "RootRelative",
			base:     "https://a.com/x/y.html",
			href:     "/p",
			expected: "https://a.com/p",
		},
		{
			name:     "DirectoryRelative",
			base:     "https://a.com/x/y.html",
			href:     "z.html",
			expected: "https://a.com/x/z.html",
		},
		{
			name:     "DirectoryRelativeWithDotSegment",
			base:     "https://a.com/x/y.html",
			href:     "./z.html",
			expected: "https://a.com/x/z.html",
		},
		{
			name:     "RepeatedDotSegmentsCollapsed",
			base:     "https://a.com/x/y.html",
			href:     "././z.html",
			expected: "https://a.com/x/z.html",
		},
		{
			name:     "BaseWithoutPath",
			base:     "https://a.com",
			href:     "page.html",
			expected: "https://a.com/page.html",
		},
		{
			name:     "RootRelativeIgnoresBasePort",
			base:     "https://a.com:8443/x/y.html",
			href:     "/p",
			expected: "https://a.com:8443/p",
		},
		{
			name:     "DotDotNotNormalized",
			base:     "https://a.com/x/y.html",
			href:     "../up.html",
			expected: "https://a.com/x/../up.html",
		},
		{
			name:     "FragmentPassedThrough",
			base:     "https://a.com/x/y.html",
			href:     "#top",
			expected: "#top",
		},
		{
			name:     "MailtoPassedThrough",
			base:     "https://a.com/x/y.html",
			href:     "mailto:a@b.com",
			expected: "mailto:a@b.com",
		},
		{
			name:     "TelPassedThrough",
			base:     "https://a.com/x/y.html",
			href:     "tel:+123456",
			expected: "tel:+123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.base, tt.href); got != tt.expected {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.expected)
			}
		})
	}
}

func TestSeedHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "Simple", input: "https://a.com/x", expected: "a.com"},
		{name: "UppercaseHostLowered", input: "https://A.COM/x", expected: "a.com"},
		{name: "PortStripped", input: "https://a.com:8443/x", expected: "a.com"},
		{name: "NoHost", input: "not-a-url", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SeedHost(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("SeedHost(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SeedHost(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("SeedHost(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSchemeStripped(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "https://a.com/x?y=1", expected: "a.com/x?y=1"},
		{input: "http://a.com/x", expected: "a.com/x"},
		{input: "a.com/x", expected: "a.com/x"},
	}

	for _, tt := range tests {
		if got := SchemeStripped(tt.input); got != tt.expected {
			t.Errorf("SchemeStripped(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

package normalize

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"plain text", "Full sun", "Full sun"},
		{"line break", "Bees<br>Butterflies", "Bees; Butterflies"},
		{"list", "<ul><li>Bees</li><li>Hummingbirds</li></ul>", "Bees; Hummingbirds"},
		{"bold", "<b>Yes</b>", "Yes"},
		{"empty", "", ""},
		{"double underscore kept", "__init__ file", "__init__ file"},
		{"backslash kept", `C:\garden`, `C:\garden`},
		{"bold inside text", "Very <strong>fragrant</strong> blooms", "Very fragrant blooms"},
	}

	n := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.html)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.html, got, tt.want)
			}
		})
	}
}

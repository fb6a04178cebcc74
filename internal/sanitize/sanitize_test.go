package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Plain text untouched",
			input: "Nettoyage de la cuisine",
			want:  "Nettoyage de la cuisine",
		},
		{
			name:  "Script tag stripped",
			input: "<script>alert('x')</script>Opening checklist",
			want:  "Opening checklist",
		},
		{
			name:  "Inline markup stripped",
			input: "<b>Wash</b> hands <img src=x onerror=alert(1)>",
			want:  "Wash hands",
		},
		{
			name:  "Whitespace trimmed",
			input: "  mise en place  ",
			want:  "mise en place",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.input))
		})
	}
}

func TestFields(t *testing.T) {
	name := "<i>Food Safety</i>"
	nameFr := "Sécurité <script>x</script>alimentaire"
	Fields(&name, &nameFr, nil)
	assert.Equal(t, "Food Safety", name)
	assert.Equal(t, "Sécurité alimentaire", nameFr)
}

func TestSlice(t *testing.T) {
	got := Slice([]string{"kitchen", "<script>x</script>", " haccp "})
	assert.Equal(t, []string{"kitchen", "haccp"}, got)
}

package strings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	strutil "carebridge/pkg/platform/strings"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil stays nil", nil, nil},
		{"trims whitespace", []string{"  reading ", "music"}, []string{"reading", "music"}},
		{"drops empties", []string{"", "   ", "sports"}, []string{"sports"}},
		{"keeps first occurrence", []string{"art", "music", "art"}, []string{"art", "music"}},
		{"case sensitive", []string{"Art", "art"}, []string{"Art", "art"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strutil.DedupeAndTrim(tt.in))
		})
	}
}

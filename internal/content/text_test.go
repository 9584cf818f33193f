package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "  hello   world ", want: "hello world"},
		{name: "markup", in: "<p>Breaking <strong>news</strong></p><p>today</p>", want: "Breaking newstoday"},
		{name: "script stripped", in: "<p>body</p><script>alert(1)</script>", want: "body"},
		{name: "only tags", in: "<p><br></p>", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}

package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		browser string
		kind    Kind
	}{
		{
			name:    "desktop chrome",
			header:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			browser: "Chrome",
			kind:    Desktop,
		},
		{
			name:    "iphone safari",
			header:  "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			browser: "Safari",
			kind:    Mobile,
		},
		{
			name:    "ipad",
			header:  "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			browser: "Safari",
			kind:    Tablet,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Parse(tt.header)
			assert.Equal(t, tt.browser, info.Browser)
			assert.Equal(t, tt.kind, info.Kind)
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Unknown device", Describe(""))
	assert.Equal(t, "Unknown device", Describe("   "))

	got := Describe("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	assert.Contains(t, got, "Chrome 120.0.0.0 on ")
	assert.NotContains(t, got, "(desktop)")
}

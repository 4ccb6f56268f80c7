package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainTierLabel(t *testing.T) {
	assert.Equal(t, "High", GetPlainTierLabel("high"))
	assert.Equal(t, "Medium", GetPlainTierLabel("medium"))
	assert.Equal(t, "Low", GetPlainTierLabel("low"))
	assert.Equal(t, "Low", GetPlainTierLabel("garbage"))
}

func TestMatchesAnyGlob(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		patterns []string
		want     bool
	}{
		{"prefix pattern", "src/models/unet.py", []string{"src/models/"}, true},
		{"prefix pattern miss", "docs/index.md", []string{"src/models/"}, false},
		{"extension pattern", "kernels/attn.cu", []string{".cu"}, true},
		{"glob on base name", "src/pipelines/pipe.py", []string{"*.py"}, true},
		{"double star subtree", "examples/training/train.py", []string{"examples/**"}, true},
		{"double star directory itself", "examples", []string{"examples/**"}, true},
		{"double star respects boundary", "examples2/train.py", []string{"examples/**"}, false},
		{"substring pattern", "tests/schedulers/test_ddim.py", []string{"scheduler"}, true},
		{"empty patterns", "anything.go", nil, false},
		{"blank pattern skipped", "anything.go", []string{"  "}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesAnyGlob(tt.path, tt.patterns))
		})
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "very lo...", TruncateText("very long title here", 10))
	assert.Equal(t, "abc", TruncateText("abc", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "true", "1", "YES"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "false", "0", "No"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

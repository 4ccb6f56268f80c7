package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFileRefs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "url path excluded",
			text: "see src/diffusers/models/unet.py and https://example.com/foo.py",
			want: []string{"src/diffusers/models/unet.py"},
		},
		{
			name: "duplicates collapse to first occurrence",
			text: "src/a/b.py breaks, fix in src/c/d.py then retest src/a/b.py",
			want: []string{"src/a/b.py", "src/c/d.py"},
		},
		{
			name: "inline code delimiters stripped",
			text: "the bug lives in `src/pipelines/pipeline_utils.py` near the top",
			want: []string{"src/pipelines/pipeline_utils.py"},
		},
		{
			name: "bare extension without path prefix ignored",
			text: "rename foo.py to bar.py please",
			want: nil,
		},
		{
			name: "multiple extensions recognized",
			text: "touch docs/index.md, config/settings.yaml and kernels/attn.cu",
			want: []string{"docs/index.md", "config/settings.yaml", "kernels/attn.cu"},
		},
		{
			name: "unknown extension ignored",
			text: "compiled into build/output.bin somehow",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractFileRefs(tt.text))
		})
	}
}

func TestExtractFileRefsDeterminism(t *testing.T) {
	text := "see src/models/attention.py and tests/test_attention.py plus https://host/x.py"
	first := extractFileRefs(text)
	for range 3 {
		assert.Equal(t, first, extractFileRefs(text))
	}
}

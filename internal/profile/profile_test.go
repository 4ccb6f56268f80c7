package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triagehq/triage/schema"
)

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")

	in := schema.ExpertiseProfile{Keywords: []string{"Training", "cuda", "training", " tokenizer "}}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	// Keywords are normalized: lowercased, trimmed, deduped, sorted
	assert.Equal(t, []string{"cuda", "tokenizer", "training"}, out.Keywords)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keywords: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadPlainList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keywords:\n  - cuda\n  - Training\n"), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cuda", "training"}, p.Keywords)
}

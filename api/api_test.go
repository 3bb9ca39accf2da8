package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "weave", doc.Info.Title)
	for _, path := range []string{"/health", "/info", "/validate", "/plan", "/instructions"} {
		assert.NotNil(t, doc.Paths.Find(path), "missing path %s", path)
	}
	assert.NotNil(t, doc.Paths.Find("/plan").Post)
}

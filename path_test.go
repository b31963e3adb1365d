package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPathFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "campus.json")
	assert.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	p, err := NewPath(file)
	assert.NoError(t, err)
	assert.True(t, p.IsFile())
	assert.Equal(t, file, p.String())
}

func TestNewPathDBColl(t *testing.T) {
	p, err := NewPath("campus.main")
	assert.NoError(t, err)
	assert.False(t, p.IsFile())
	assert.Equal(t, "campus", p.DB)
	assert.Equal(t, "main", p.Coll)
	assert.Equal(t, "campus.main.json", p.CacheKey())
	assert.Equal(t, "campus.main", p.String())
}

func TestNewPathInvalid(t *testing.T) {
	_, err := NewPath("too.many.dots")
	assert.Error(t, err)

	p, err := NewPath("")
	assert.NoError(t, err)
	assert.Nil(t, p)
}

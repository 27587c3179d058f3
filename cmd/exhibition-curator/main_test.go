package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/exhibition-curator/internal/collection"
	"github.com/pdiddy/exhibition-curator/internal/search"
	"github.com/pdiddy/exhibition-curator/internal/session"
	"github.com/pdiddy/exhibition-curator/pkg/types"
)

func TestDecodeConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
}

func TestDecodeConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exhibition-curator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
search:
  timeout: 5s
  partial_results: true
  met:
    max_objects: 12
collections:
  default_name: favourites
`), 0o644))
	t.Setenv("EXHIBITION_CURATOR_SEARCH_PAGE_SIZE", "20")

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)
	v.SetEnvPrefix("EXHIBITION_CURATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	require.NoError(t, v.ReadInConfig())

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Search.Timeout)
	assert.True(t, cfg.Search.PartialResults)
	assert.Equal(t, 12, cfg.Search.Met.MaxObjects)
	assert.True(t, cfg.Search.Met.Enabled)
	assert.Equal(t, 20, cfg.Search.PageSize)
	assert.Equal(t, "favourites", cfg.Collections.DefaultName)
	assert.Equal(t, types.DefaultUserAgent, cfg.Search.UserAgent)
}

func TestDecodeConfigRejectsNoBackends(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("search.met.enabled", false)
	v.Set("search.cleveland.enabled", false)

	_, err := decodeConfig(v)
	assert.ErrorContains(t, err, "no search backends")
}

// fixedBackend returns the same items for every query.
type fixedBackend struct {
	name  string
	items []types.Item
}

func (b fixedBackend) Name() string { return b.name }

func (b fixedBackend) Search(context.Context, string) ([]types.Item, error) {
	return b.items, nil
}

func TestRunCurate(t *testing.T) {
	year := 1700
	backends := []search.Backend{
		fixedBackend{name: "met", items: []types.Item{{ID: "met-1", Title: "Sunrise", Artist: "Unknown", RawDate: "Unknown"}}},
		fixedBackend{name: "cleveland", items: []types.Item{{ID: "cleveland-1", Title: "Sundial", Artist: "Tompion", Date: &year, RawDate: "c. 1700"}}},
	}
	nullLogger, _ := test.NewNullLogger()
	sess := session.New(backends, session.Options{PageSize: 10, Logger: nullLogger})

	store, err := collection.NewStore(types.CollectionConfig{}, nullLogger)
	require.NoError(t, err)
	defer store.Close()

	script := strings.Join([]string{
		"search sun",
		"add 1",
		"new highlights",
		"add 2",
		"add 2",
		"sort oldest",
		"use nope",
		"collections",
		"show",
		"remove met-1",
		"use default",
		"export",
		"bogus",
		"quit",
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, runCurate(context.Background(), strings.NewReader(script), &out, sess, store))
	text := out.String()

	assert.Contains(t, text, `Added "Sundial" (cleveland-1) to default.`)
	assert.Contains(t, text, "Created collection highlights; it is now active.")
	assert.Contains(t, text, `Added "Sunrise" (met-1) to highlights.`)
	assert.Contains(t, text, "Sorting by oldest.")
	assert.Contains(t, text, `collection not found: "nope"`)
	assert.Contains(t, text, "* highlights")
	assert.Contains(t, text, "Collection highlights (2 items)")
	assert.Contains(t, text, "Removed 2 item(s) from highlights.")
	assert.Contains(t, text, "name: default")
	assert.Contains(t, text, "id: cleveland-1")
	assert.Contains(t, text, `unknown command "bogus"`)

	remaining, err := store.Items("highlights")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

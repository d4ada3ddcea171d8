package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/aretw0/testwrap/pkg/history"
	"github.com/aretw0/testwrap/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCommands(t *testing.T) {
	ctx := context.Background()
	loc := filepath.Join(t.TempDir(), "settings.db")

	require.NoError(t, SettingsSet(ctx, loc, []string{"retries=3", "name=nightly build", "debug=true", "url=a=b"}))

	var out bytes.Buffer
	require.NoError(t, SettingsList(ctx, &out, loc))
	assert.Equal(t, "debug=true\nname=nightly build\nretries=3\nurl=a=b\n", out.String())

	s := settings.Settings{}
	require.NoError(t, settings.Load(loc, s))
	assert.Equal(t, 3, s["retries"])
	assert.Equal(t, true, s["debug"])

	out.Reset()
	require.NoError(t, SettingsGet(ctx, &out, loc, "name"))
	assert.Equal(t, "nightly build\n", out.String())

	require.NoError(t, SettingsUnset(ctx, loc, []string{"name", "absent"}))
	err := SettingsGet(ctx, &out, loc, "name")
	assert.ErrorContains(t, err, `key "name" not set`)
}

func TestSettingsSet_Invalid(t *testing.T) {
	loc := filepath.Join(t.TempDir(), "settings.db")
	assert.Error(t, SettingsSet(context.Background(), loc, []string{"novalue"}))
	assert.Error(t, SettingsSet(context.Background(), loc, []string{"=x"}))
}

func TestSettingsList_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, SettingsList(context.Background(), &out, filepath.Join(t.TempDir(), "none.db")))
	assert.Empty(t, out.String())
}

func TestShowHistory(t *testing.T) {
	ctx := context.Background()
	loc := filepath.Join(t.TempDir(), "history.db")

	b, err := settings.Open(loc)
	require.NoError(t, err)
	rec := history.NewRecorder(b, nil)
	res := rec.Record(ctx, &domain.Report{Name: "suite-a", Passed: true, Duration: time.Second})
	require.True(t, res.OK, "%v", res.Err)

	var out bytes.Buffer
	require.NoError(t, ShowHistory(ctx, &out, loc))
	assert.Contains(t, out.String(), "suite-a")
	assert.Contains(t, out.String(), "1/1 passed")

	out.Reset()
	require.NoError(t, SettingsList(ctx, &out, loc))
	assert.Contains(t, out.String(), "suite-a=PASS rc=-1 1s")
}

func TestSettingsCommands_Encrypted(t *testing.T) {
	ctx := context.Background()
	loc := filepath.Join(t.TempDir(), "secret.db")
	t.Setenv(KeyEnv, base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{1}, 32)))

	require.NoError(t, SettingsSet(ctx, loc, []string{"token=abc"}))

	var out bytes.Buffer
	require.NoError(t, SettingsGet(ctx, &out, loc, "token"))
	assert.Equal(t, "abc\n", out.String())

	assert.Error(t, settings.Load(loc, settings.Settings{}), "stored blob is sealed")

	t.Setenv(KeyEnv, "not base64!")
	assert.ErrorContains(t, SettingsList(ctx, &out, loc), KeyEnv)
}

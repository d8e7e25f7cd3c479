package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleINI = `# sample
[server]
host = example.org
port = 8080
zero = 0
padded = 007
signed = +5
enabled = YES
disabled = no
tags = 1,true,foo
empty =

[db]
Name: patchew
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func loaded(t *testing.T, files map[string]string, paths ...string) *Config {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	c := New(&Option{FS: fsys, Logger: zap.NewNop()})
	require.NoError(t, c.Load(paths...))
	return c
}

func TestLoadStopsAtFirstValidFile(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.ini", sampleINI)
	other := writeFile(t, dir, "other.ini", "[other]\nkey = value\n")

	c := New(&Option{Logger: zap.NewNop()})
	ok := c.LoadConfig(filepath.Join(dir, "nonexistent.ini"), valid, other)

	require.True(t, ok)
	assert.True(t, c.HasSection("server"))
	assert.False(t, c.HasSection("other"))
	assert.Equal(t, []string{"server", "db"}, c.Sections())
}

func TestLoadSkipsUnusableCandidates(t *testing.T) {
	c := loaded(t, map[string]string{
		"broken.ini":   "[unterminated\nkey = value\n",
		"empty.ini":    "# nothing here\n",
		"defaults.ini": "[DEFAULT]\nkey = value\n",
		"good.ini":     "[good]\nkey = value\n",
	}, "broken.ini", "empty.ini", "defaults.ini", "missing.ini", "good.ini")

	assert.Equal(t, []string{"good"}, c.Sections())
	assert.False(t, c.HasKey("good", "missing"))
}

func TestLoadSkipsFileWithoutSectionHeader(t *testing.T) {
	fsys := fstest.MapFS{
		"headless.ini": &fstest.MapFile{Data: []byte("orphan = 1\n[s]\nk = v\n")},
		"good.ini":     &fstest.MapFile{Data: []byte("[good]\nk = v\n")},
	}
	c := New(&Option{FS: fsys, Logger: zap.NewNop()})

	require.NoError(t, c.Load("headless.ini", "good.ini"))
	assert.Equal(t, []string{"good"}, c.Sections())
	assert.False(t, c.HasSection("s"))
	assert.False(t, c.HasKey("good", "orphan"))

	err := c.Load("headless.ini")
	assert.ErrorIs(t, err, ErrMissingSectionHeader)
}

func TestLoadNoValidPath(t *testing.T) {
	fsys := fstest.MapFS{
		"first.ini": &fstest.MapFile{Data: []byte("[first]\nkey = 1\n")},
		"bad.ini":   &fstest.MapFile{Data: []byte("not an ini line\n")},
	}
	c := New(&Option{FS: fsys, Logger: zap.NewNop()})
	require.NoError(t, c.Load("first.ini"))

	err := c.Load("missing.ini", "bad.ini")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoConfig)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var pathErr *PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, "missing.ini", pathErr.Path)

	assert.False(t, c.LoadConfig("missing.ini"))
	assert.Equal(t, []string{"first"}, c.Sections())
	assert.Equal(t, "1", c.GetString("first", "key", ""))
}

func TestLoadWithoutCandidates(t *testing.T) {
	c := New(&Option{Logger: zap.NewNop()})
	err := c.Load()
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestLoadUsesOptionFiles(t *testing.T) {
	fsys := fstest.MapFS{"app.conf": &fstest.MapFile{Data: []byte("[app]\nname = demo\n")}}
	c := New(&Option{FS: fsys, Files: []string{"nope.conf", "app.conf"}, Logger: zap.NewNop()})

	require.NoError(t, c.Load())
	assert.Equal(t, "demo", c.GetString("app", "name", ""))
}

func TestLoadMergesLaterFiles(t *testing.T) {
	c := loaded(t, map[string]string{
		"base.ini":  "[server]\nhost = a\nport = 1\n",
		"local.ini": "[server]\nport = 2\n[extra]\nflag = on\n",
	}, "base.ini")
	require.NoError(t, c.Load("local.ini"))

	items, err := c.Items("server")
	require.NoError(t, err)
	assert.Equal(t, []Item{{Key: "host", Value: "a"}, {Key: "port", Value: "2"}}, items)
	assert.Equal(t, []string{"server", "extra"}, c.Sections())
}

func TestPackageLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "valid.ini", sampleINI)

	c, err := Load(filepath.Join(dir, "nope.ini"), path)
	require.NoError(t, err)
	assert.Equal(t, "example.org", c.GetString("server", "host", ""))

	_, err = Load(filepath.Join(dir, "nope.ini"))
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestGetCoercion(t *testing.T) {
	c := loaded(t, map[string]string{"app.ini": sampleINI}, "app.ini")

	tests := []struct {
		key  string
		want Value
	}{
		{"host", StringValue("example.org")},
		{"port", IntValue(8080)},
		{"zero", IntValue(0)},
		{"enabled", BoolValue(true)},
		{"disabled", BoolValue(false)},
		{"tags", ListValue(IntValue(1), BoolValue(true), StringValue("foo"))},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := c.Get("server", tt.key)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v (%s)", got, got.Kind())
		})
	}
}

func TestGetBooleanIgnoresCase(t *testing.T) {
	for _, raw := range []string{"YES", "yes", "Yes", "true", "TRUE", "tRuE"} {
		v, err := coerce(raw)
		require.NoError(t, err)
		b, err := v.Bool()
		require.NoError(t, err, raw)
		assert.True(t, b, raw)
	}
	for _, raw := range []string{"NO", "no", "No", "false", "False"} {
		v, err := coerce(raw)
		require.NoError(t, err)
		b, err := v.Bool()
		require.NoError(t, err, raw)
		assert.False(t, b, raw)
	}
}

func TestBooleanKeywordsAreASCII(t *testing.T) {
	v, err := coerce("yeſ")
	require.NoError(t, err)
	assert.True(t, StringValue("yeſ").Equal(v))
}

func TestGetNonCanonicalInteger(t *testing.T) {
	c := loaded(t, map[string]string{"app.ini": sampleINI}, "app.ini")

	for _, key := range []string{"padded", "signed"} {
		v, err := c.Get("server", key, IntValue(-1))
		require.Error(t, err)
		assert.True(t, v.IsNone())
		assert.ErrorIs(t, err, ErrNonCanonicalInt)

		var coerceErr *CoercionError
		require.True(t, errors.As(err, &coerceErr))
		assert.Equal(t, "server", coerceErr.Section)
		assert.Equal(t, key, coerceErr.Key)
	}
}

func TestCoerceEdgeCases(t *testing.T) {
	v, err := coerce("a,,b")
	require.NoError(t, err)
	assert.True(t, ListValue(StringValue("a"), StringValue(""), StringValue("b")).Equal(v))

	_, err = coerce("1, 2")
	assert.ErrorIs(t, err, ErrNonCanonicalInt)

	_, err = coerce("99999999999999999999")
	assert.Error(t, err)

	v, err = coerce("-12")
	require.NoError(t, err)
	assert.True(t, IntValue(-12).Equal(v))

	v, err = coerce("1.5")
	require.NoError(t, err)
	assert.True(t, StringValue("1.5").Equal(v))
}

func TestGetDefaults(t *testing.T) {
	c := loaded(t, map[string]string{"app.ini": sampleINI}, "app.ini")

	v, err := c.Get("missing", "key")
	require.NoError(t, err)
	assert.True(t, v.IsNone())

	v, err = c.Get("server", "missing", StringValue("fallback"))
	require.NoError(t, err)
	assert.True(t, StringValue("fallback").Equal(v))

	// an empty raw value is indistinguishable from an absent key
	v, err = c.Get("server", "empty", IntValue(3))
	require.NoError(t, err)
	assert.True(t, IntValue(3).Equal(v))
	assert.True(t, c.HasKey("server", "empty"))
}

func TestKeysAreCaseInsensitive(t *testing.T) {
	c := loaded(t, map[string]string{"app.ini": sampleINI}, "app.ini")

	assert.Equal(t, "patchew", c.GetString("db", "NAME", ""))
	assert.Equal(t, int64(8080), c.GetInt("server", "Port", 0))
	assert.Equal(t, "", c.GetString("DB", "name", ""))
}

func TestDefaultSection(t *testing.T) {
	c := loaded(t, map[string]string{
		"app.ini": "[DEFAULT]\ntimeout = 30\nretries = 2\n[api]\nretries = 5\nurl = http://x\n",
	}, "app.ini")

	assert.Equal(t, int64(30), c.GetInt("api", "timeout", 0))
	assert.Equal(t, int64(5), c.GetInt("api", "retries", 0))
	assert.Equal(t, int64(2), c.GetInt(DefaultSection, "retries", 0))
	assert.Equal(t, int64(0), c.GetInt("nope", "timeout", 0))
	assert.Equal(t, []string{"api"}, c.Sections())

	items, err := c.Items("api")
	require.NoError(t, err)
	assert.Equal(t, []Item{
		{Key: "timeout", Value: "30"},
		{Key: "retries", Value: "5"},
		{Key: "url", Value: "http://x"},
	}, items)

	items, err = c.Items(DefaultSection)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestItems(t *testing.T) {
	c := loaded(t, map[string]string{"app.ini": sampleINI}, "app.ini")

	_, err := c.Items("missing_section")
	assert.ErrorIs(t, err, ErrSectionNotFound)

	items, err := c.Items("db")
	require.NoError(t, err)
	assert.Equal(t, []Item{{Key: "name", Value: "patchew"}}, items)

	items, err = c.Items("server")
	require.NoError(t, err)
	require.Len(t, items, 9)
	assert.Equal(t, Item{Key: "padded", Value: "007"}, items[3])
	assert.Equal(t, Item{Key: "tags", Value: "1,true,foo"}, items[7])
}

func TestTypedGetters(t *testing.T) {
	c := loaded(t, map[string]string{"app.ini": sampleINI}, "app.ini")

	assert.Equal(t, "007", c.GetString("server", "padded", ""))
	assert.Equal(t, "dflt", c.GetString("server", "empty", "dflt"))
	assert.Equal(t, int64(9), c.GetInt("server", "padded", 9))
	assert.Equal(t, int64(9), c.GetInt("server", "host", 9))
	assert.True(t, c.GetBool("server", "enabled", false))
	assert.True(t, c.GetBool("server", "port", true))

	list := c.GetList("server", "tags", nil)
	require.Len(t, list, 3)
	assert.True(t, IntValue(1).Equal(list[0]))
	list[0] = IntValue(5)
	assert.True(t, IntValue(1).Equal(c.GetList("server", "tags", nil)[0]))

	list = c.GetList("server", "host", nil)
	require.Len(t, list, 1)
	assert.True(t, StringValue("example.org").Equal(list[0]))

	assert.Nil(t, c.GetList("server", "missing", nil))
}

func TestLoadLogsCandidates(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fsys := fstest.MapFS{"good.ini": &fstest.MapFile{Data: []byte("[a]\nb = c\n")}}
	c := New(&Option{FS: fsys, Logger: zap.New(core)})

	require.NoError(t, c.Load("missing.ini", "good.ini"))

	assert.Equal(t, 2, logs.FilterMessage("trying configuration file").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping configuration file").Len())
	assert.Equal(t, 1, logs.FilterMessage("loaded configuration file").Len())
}

func TestSilentSuppressesSkipWarnings(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(&Option{FS: fstest.MapFS{}, Silent: true, Logger: zap.New(core)})

	require.Error(t, c.Load("missing.ini"))
	assert.Equal(t, 0, logs.FilterMessage("skipping configuration file").Len())
}

func TestNewReadsEnvironmentSwitches(t *testing.T) {
	t.Setenv("CONFIG_SILENT_MODE", "1")
	c := New(nil)
	assert.True(t, c.Silent)
	assert.Equal(t, "config", c.Name())
}

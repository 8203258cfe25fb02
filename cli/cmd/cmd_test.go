package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/dfprop/lang"
)

// writeTree creates files relative to a temporary root and returns the root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for name, text := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	}

	return root
}

func dbTree(t *testing.T) string {
	t.Helper()

	return writeTree(t, map[string]string{
		"conf/db.dfprop": `# primary database
map:{
    ; host = localhost
    ; port = 5432
    ; tags = list:{ a ; b }
}`,
		"conf/db+.dfprop":     `map:{ ; pool = 8 }`,
		"conf/dev/db.dfprop":  `map:{ ; host = dev.local ; port = 6543 }`,
		"conf/hosts.dfprop":   `list:{ alpha ; beta }`,
		"conf/plain.dfprop":   `map:{ ; a = x ; b = y }`,
		"conf/nested.dfprop":  `map:{ ; a = map:{ ; k = v } }`,
		"conf/notes.dfprop":   "free text\n# skipped\nmore",
		"conf/missing.dfprop": `map:{ ; broken`,
	})
}

func run(t *testing.T, cmd interface{ Run(context.Context) error }) (string, error) {
	t.Helper()

	var out bytes.Buffer

	err := cmd.Run(WithStdio(context.Background(), nil, &out))

	return out.String(), err
}

func oneLiner() renderFlags {
	return renderFlags{As: asNative, OneLiner: true}
}

func TestFmt(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		render renderFlags
		want   string
	}{
		{
			name:   "native one-liner",
			in:     "map:{\n ; a = 1\n ; b = x }",
			render: oneLiner(),
			want:   "map:{a=1;b=x}\n",
		},
		{
			name:   "json",
			in:     "map:{ ; a = 1 ; b = list:{ x ; y } ; c = null }",
			render: renderFlags{As: asJSON},
			want:   `{"a":"1","b":["x","y"],"c":null}` + "\n",
		},
		{
			name:   "yaml",
			in:     "map:{ ; a = x ; b = y }",
			render: renderFlags{As: asYAML, Indent: 2},
			want:   "a: x\nb: y\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			f := &Fmt{Render: tt.render, Source: stdinSource}
			ctx := WithStdio(context.Background(), strings.NewReader(tt.in), &out)

			require.NoError(t, f.Run(ctx))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestFmt_Failures(t *testing.T) {
	var out bytes.Buffer

	f := &Fmt{Render: oneLiner(), Source: stdinSource}
	ctx := WithStdio(context.Background(), strings.NewReader("map:{ ; a = 1"), &out)
	assert.Error(t, f.Run(ctx))

	f = &Fmt{Render: oneLiner(), Source: filepath.Join(t.TempDir(), "none")}
	assert.ErrorIs(t, f.Run(ctx), lang.ErrRead)

	f = &Fmt{Render: renderFlags{As: "toml"}, Source: stdinSource}
	ctx = WithStdio(context.Background(), strings.NewReader("map:{ ; a = 1 }"), &out)
	assert.ErrorIs(t, f.Run(ctx), ErrFormat)
}

func TestGet(t *testing.T) {
	root := dbTree(t)

	tests := []struct {
		name  string
		env   string
		shape string
		path  string
		key   string
		want  string
	}{
		{
			name: "map with inherit",
			path: "conf/db.dfprop",
			want: "map:{host=localhost;port=5432;tags=list:{a;b};pool=8}\n",
		},
		{
			name: "env overlay",
			env:  "dev",
			path: "conf/db.dfprop",
			want: "map:{host=dev.local;port=6543}\n",
		},
		{
			name: "key",
			path: "conf/db.dfprop",
			key:  "port",
			want: "5432\n",
		},
		{
			name:  "string map",
			shape: shapeStringMap,
			path:  "conf/plain.dfprop",
			want:  "map:{a=x;b=y}\n",
		},
		{
			name:  "list",
			shape: shapeList,
			path:  "conf/hosts.dfprop",
			want:  "list:{alpha;beta}\n",
		},
		{
			name:  "map of maps",
			shape: shapeMapMap,
			path:  "conf/nested.dfprop",
			want:  "map:{a=map:{k=v}}\n",
		},
		{
			name:  "text",
			shape: shapeText,
			path:  "conf/notes.dfprop",
			want:  "free text\nmore",
		},
		{
			name: "not found is empty",
			path: "conf/none.dfprop",
			want: "map:{}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Get{
				Resolve: resolveFlags{Root: root, Env: tt.env, Ext: ".dfprop"},
				Render:  oneLiner(),
				Shape:   tt.shape,
				Path:    tt.path,
				Key:     tt.key,
			}

			got, err := run(t, g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGet_Failures(t *testing.T) {
	root := dbTree(t)
	flags := resolveFlags{Root: root, Ext: ".dfprop"}

	g := &Get{Resolve: flags, Render: oneLiner(), Path: "conf/db.dfprop", Key: "prot"}
	_, err := run(t, g)
	require.ErrorIs(t, err, ErrKeyNotFound)

	suggest, ok := lang.AttrOf(err, "suggest")
	require.True(t, ok)
	assert.Equal(t, "port", suggest.String())

	g = &Get{Resolve: flags, Render: oneLiner(), Shape: shapeList, Path: "conf/hosts.dfprop", Key: "a"}
	_, err = run(t, g)
	assert.ErrorIs(t, err, ErrNotMap)

	g = &Get{Resolve: flags, Render: oneLiner(), Shape: shapeStringMap, Path: "conf/db.dfprop"}
	_, err = run(t, g)
	assert.Error(t, err)

	g = &Get{Resolve: flags, Render: oneLiner(), Path: "conf/missing.dfprop"}
	_, err = run(t, g)
	assert.Error(t, err)

	required := flags
	required.Require = true

	g = &Get{Resolve: required, Render: oneLiner(), Path: "conf/none.dfprop"}
	_, err = run(t, g)
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	keys := []string{"host", "hostname", "port", "pool", "password"}

	assert.Equal(t, []string{"port"}, suggest("prt", []string{"port", "zzz"}))
	assert.LessOrEqual(t, len(suggest("o", keys)), maxSuggestions)
	assert.Empty(t, suggest("xyz", keys))
}

func TestEval(t *testing.T) {
	root := dbTree(t)

	tests := []struct {
		expr string
		env  string
		want string
	}{
		{expr: "int(port) + 1", want: "5433\n"},
		{expr: "host", env: "dev", want: "dev.local\n"},
		{expr: "len(tags)", want: "2\n"},
		{expr: `host + ":" + port`, want: "localhost:5432\n"},
		{expr: "pool", want: "8\n"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e := &Eval{
				Resolve: resolveFlags{Root: root, Env: tt.env, Ext: ".dfprop"},
				Path:    "conf/db.dfprop",
				Expr:    tt.expr,
			}

			got, err := run(t, e)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	e := &Eval{
		Resolve: resolveFlags{Root: root, Ext: ".dfprop"},
		Path:    "conf/db.dfprop",
		Expr:    "port +",
	}

	_, err := run(t, e)
	assert.Error(t, err)
}

func TestTree(t *testing.T) {
	root := dbTree(t)

	tr := &Tree{
		Resolve: resolveFlags{Root: root, Ext: ".dfprop"},
		Path:    "conf/db.dfprop",
	}

	got, err := run(t, tr)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "conf/db.dfprop", lines[0])

	for _, want := range []string{
		"host = localhost",
		"port = 5432",
		"tags",
		"[0] = a",
		"[1] = b",
		"pool = 8",
	} {
		assert.Contains(t, got, want)
	}
}

type initApp struct {
	Level  string   `default:"info"`
	Pretty bool     `default:"true"`
	Tags   []string `default:"a,b"`
	Empty  string
	Init   Init `cmd:""`
}

func parseInit(t *testing.T, path string, args ...string) context.Context {
	t.Helper()

	var app initApp

	parser, err := kong.New(&app, kong.Vars{ConfigIdentifier: path})
	require.NoError(t, err)

	ktx, err := parser.Parse(append([]string{"init"}, args...))
	require.NoError(t, err)

	return WithContext(context.Background(), ktx)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.dfprop")

	require.NoError(t, (&Init{}).Run(parseInit(t, path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	doc, err := lang.ParseMap(context.Background(), string(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"level", "pretty", "tags"}, doc.Keys())

	level, _ := doc.Get("level")
	assert.Equal(t, "info", level.Str)

	tags, _ := doc.Get("tags")
	assert.Equal(t, "list:{ a ; b }", tags.String())

	err = (&Init{}).Run(parseInit(t, path))
	require.ErrorIs(t, err, ErrWriteConfig)
	assert.ErrorIs(t, err, ErrFileExists)

	require.NoError(t, (&Init{Force: true}).Run(parseInit(t, path, "--force")))
}

func TestFlagValue(t *testing.T) {
	type named string

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "bool", in: false, want: "false"},
		{name: "named string", in: named("json"), want: "json"},
		{name: "int", in: 42, want: "42"},
		{name: "float", in: 1.5, want: "1.5"},
		{name: "strings", in: []string{"x", "y"}, want: "list:{ x ; y }"},
		{name: "ints", in: []int{1, 2}, want: "list:{ 1 ; 2 }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := flagValue(tt.in)
			require.NotNil(t, v)
			assert.Equal(t, tt.want, v.String())
		})
	}

	assert.Nil(t, flagValue(nil))
	assert.Nil(t, flagValue(""))
	assert.Nil(t, flagValue([]string{}))
	assert.Nil(t, flagValue((*int)(nil)))
}

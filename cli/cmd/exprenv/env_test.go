package exprenv

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/dfprop/lang"
)

func document(t *testing.T, text string) *lang.Map {
	t.Helper()

	m, err := lang.ParseMap(context.Background(), text)
	require.NoError(t, err)

	return m
}

func TestMake_ShadowsBuiltins(t *testing.T) {
	env := Make(document(t, "map:{ ; path = /srv ; port = 8080 }"))

	assert.Equal(t, "/srv", env["path"])
	assert.Equal(t, "8080", env["port"])
	assert.Contains(t, env, "mung")

	_, ok := Builtins()["port"]
	assert.False(t, ok, "document entries leaked into builtins")
}

func TestLookup(t *testing.T) {
	env := Make(document(t, "map:{ ; db = map:{ ; host = h ; port = 1 } ; tags = list:{ a } }"))

	tests := []struct {
		path string
		want []string
	}{
		{"db", []string{"host", "port"}},
		{"path", []string{"abs", "cat", "rel"}},
		{"db.host", nil},
		{"missing", nil},
		{"tags", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(env, tt.path))
		})
	}

	assert.Contains(t, Lookup(env, ""), "db")
	assert.Contains(t, Lookup(env, ""), "platform")
}

func TestEval(t *testing.T) {
	env := Make(document(t, `map:{
		; host = db.local
		; port = 5432
		; tags = list:{ a ; b ; c }
		; db = map:{ ; user = admin }
	}`))

	tests := []struct {
		expr string
		want string
	}{
		{`host + ":" + port`, "db.local:5432"},
		{`int(port) + 1`, "5433"},
		{`len(tags)`, "3"},
		{`db.user`, "admin"},
		{`tags[1:]`, "list:{ b ; c }"},
		{`port == "5432"`, "true"},
		{`path.cat("etc", host)`, "etc/db.local"},
		{`nil`, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			out, err := Eval(context.Background(), tt.expr, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(out))
		})
	}
}

func TestEval_Failures(t *testing.T) {
	env := Make(lang.NewMap())

	_, err := Eval(context.Background(), "1 +", env)
	require.ErrorIs(t, err, ErrCompile)

	v, ok := lang.AttrOf(err, "expr")
	require.True(t, ok)
	assert.Equal(t, "1 +", v.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Eval(ctx, "1", env)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMungPrefix(t *testing.T) {
	sep := string(os.PathListSeparator)
	list := strings.Join([]string{"/usr/bin", "/bin"}, sep)

	got := mungPrefix(list, "/opt/bin")

	assert.True(t, strings.HasPrefix(got, "/opt/bin"+sep), got)
	assert.Contains(t, got, "/usr/bin")
}

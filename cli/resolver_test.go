package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	r, err := loadConfig(strings.NewReader(`
		# defaults
		map:{
		    ; log-level = debug
		    ; log = map:{ ; format = json ; pretty = false }
		    ; tags = list:{ a ; b }
		    ; skip = null
		    ; root_dir = /srv
		}`))
	require.NoError(t, err)

	assert.Equal(t, config{
		"log-level":  "debug",
		"log-format": "json",
		"log-pretty": "false",
		"tags":       "a,b",
		"root_dir":   "/srv",
	}, r)
}

func TestLoadConfig_Ignored(t *testing.T) {
	for _, text := range []string{"", "map:{ ; broken", "list:{ a }", "plain"} {
		r, err := loadConfig(strings.NewReader(text))
		require.NoError(t, err, text)
		assert.Empty(t, r, text)
	}
}

func TestConfig_Resolve(t *testing.T) {
	cfg := config{"log-level": "debug", "root_dir": "/srv"}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"root-dir", "/srv"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := &kong.Flag{Value: &kong.Value{Name: tt.flag}}

			got, err := cfg.Resolve(nil, nil, flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.NoError(t, cfg.Validate(nil))
}

type configApp struct {
	Level string   `default:"info"`
	Tags  []string `name:"tags"`
	Root  string   `name:"root-dir"`
}

func TestLoadConfig_Kong(t *testing.T) {
	r, err := loadConfig(strings.NewReader(
		`map:{ ; level = warn ; tags = list:{ x ; y } ; root_dir = /data }`))
	require.NoError(t, err)

	var app configApp

	parser, err := kong.New(&app, kong.Resolvers(r))
	require.NoError(t, err)

	_, err = parser.Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, configApp{Level: "warn", Tags: []string{"x", "y"}, Root: "/data"}, app)

	_, err = parser.Parse([]string{"--level", "error"})
	require.NoError(t, err)
	assert.Equal(t, "error", app.Level)
}

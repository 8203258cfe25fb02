package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dfprop/lang"
	"github.com/ardnew/dfprop/log"
	"github.com/ardnew/dfprop/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// ignoredFlags are flag name prefixes never written to the configuration.
//
//nolint:gochecknoglobals
var ignoredFlags = []string{"help", "version", profile.Tag}

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	doc := configDocument(ktx)

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	err = lang.Format(file, lang.MapOf(doc), lang.WithIndent(defaultConfigIndent))
	if err == nil {
		_, err = fmt.Fprintln(file)
	}

	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("entries", doc.Len()))

	return nil
}

// configDocument collects the application-level flag values into a map.
// Unset and ignored flags are omitted.
func configDocument(ktx *kong.Context) *lang.Map {
	doc := lang.NewMap()

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignoredFlags, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if v := flagValue(ktx.FlagValue(flag)); v != nil {
			doc.Set(flag.Name, v)
		}
	}

	return doc
}

// flagValue converts a parsed flag value into a document value, or nil if
// the flag is empty.
func flagValue(val any) *lang.Value {
	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.Invalid:
		return nil

	case reflect.Bool:
		return lang.String(strconv.FormatBool(rv.Bool()))

	case reflect.String:
		if rv.Len() == 0 {
			return nil
		}

		return lang.String(rv.String())

	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return nil
		}

		elems := make([]*lang.Value, 0, rv.Len())

		for i := range rv.Len() {
			if v := flagValue(rv.Index(i).Interface()); v != nil {
				elems = append(elems, v)
			}
		}

		return lang.List(elems...)

	case reflect.Map, reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil
		}
	}

	return lang.String(fmt.Sprint(val))
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/erp/bizid/internal/application/registration"
	"github.com/erp/bizid/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "abn", opts.Kind)
	assert.Equal(t, 1, opts.Count)
	assert.Empty(t, opts.ACN)
	assert.Zero(t, opts.Seed)
	assert.Equal(t, formatPlain, opts.Format)
	assert.Equal(t, "warn", opts.LogLevel)
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown kind", []string{"-kind", "tfn"}, "invalid -kind"},
		{"zero count", []string{"-count", "0"}, "invalid -count"},
		{"unknown format", []string{"-format", "xml"}, "invalid -format"},
		{"bad log level", []string{"-log-level", "trace"}, "invalid -log-level"},
		{"non-numeric acn", []string{"-acn", "abc"}, "invalid -acn"},
		{"acn with pair", []string{"-kind", "pair", "-acn", "4085616"}, "-acn can only be used"},
		{"acn with count", []string{"-acn", "4085616", "-count", "5"}, "cannot be used with -count 5"},
		{"stray args", []string{"extra"}, "unexpected arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseFlags_ACNWithCountOne(t *testing.T) {
	opts, err := parseFlags([]string{"-acn", "4085616", "-count", "1"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "4085616", opts.ACN)
}

func TestParseFlags_Help(t *testing.T) {
	var usage bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &usage)

	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, usage.String(), "bizgen [flags]")
}

func runWith(t *testing.T, args ...string) (string, error) {
	t.Helper()
	opts, err := parseFlags(args, io.Discard)
	require.NoError(t, err)

	var out bytes.Buffer
	err = run(context.Background(), opts, zap.NewNop(), &out)
	return out.String(), err
}

func TestRun_DeriveABN(t *testing.T) {
	tests := []struct {
		acn    string
		format string
		want   string
	}{
		{"4085616", formatPlain, "53004085616\n"},
		{"004085616", formatDisplay, "53 004 085 616\n"},
		{"0", formatPlain, "99000000000\n"},
		{"999999999", formatPlain, "98999999999\n"},
	}

	for _, tt := range tests {
		out, err := runWith(t, "-acn", tt.acn, "-format", tt.format)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out)
	}
}

func TestRun_DeriveABN_OutOfRange(t *testing.T) {
	_, err := runWith(t, "-acn", "1000000000")

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeInvalidACN, domainErr.Code)
}

func TestRun_CountAboveMax(t *testing.T) {
	_, err := runWith(t, "-count", "1001")

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeInvalidInput, domainErr.Code)
}

func TestRun_Kinds(t *testing.T) {
	out, err := runWith(t, "-kind", "acn", "-count", "4", "-seed", "11")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Len(t, line, 9)
	}

	out, err = runWith(t, "-kind", "pair", "-count", "2", "-seed", "11")
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 2)
		assert.Equal(t, fields[1], fields[0][2:])
	}
}

func TestRun_SeedIsReproducible(t *testing.T) {
	first, err := runWith(t, "-count", "5", "-seed", "42")
	require.NoError(t, err)
	second, err := runWith(t, "-count", "5", "-seed", "42")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_JSON(t *testing.T) {
	out, err := runWith(t, "-kind", "pair", "-count", "3", "-seed", "7", "-format", "json")
	require.NoError(t, err)

	var pairs []registration.PairResponse
	require.NoError(t, json.Unmarshal([]byte(out), &pairs))
	require.Len(t, pairs, 3)
	for _, p := range pairs {
		assert.Equal(t, p.ACN.Value, p.ABN.Value%1_000_000_000)
	}
}

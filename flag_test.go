package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var flagParseErrorTests = []struct {
	in     string
	flag   string
	reason string
}{
	{
		"unknown flag: --nope",
		"--nope",
		"Flag %s is missing.",
	},
	{
		"flag needs an argument: --model",
		"--model",
		"Flag %s needs an argument.",
	},
	{
		"flag needs an argument: 'm' in -m",
		"-m",
		"Flag %s needs an argument.",
	},
	{
		"unknown shorthand flag: 'x' in -x",
		"-x",
		"Short flag %s is missing.",
	},
	{
		`invalid argument "20dd" for "--timeout" flag: time: unknown unit "dd" in duration "20dd"`,
		"--timeout",
		"Flag %s has an invalid argument.",
	},
	{
		`invalid argument "mucho" for "--max-tokens" flag: strconv.ParseInt: parsing "mucho": invalid syntax`,
		"--max-tokens",
		"Flag %s has an invalid argument.",
	},
	{
		`invalid argument "nope" for "-r, --raw" flag: strconv.ParseBool: parsing "nope": invalid syntax`,
		"-r, --raw",
		"Flag %s has an invalid argument.",
	},
}

func TestFlagParseError(t *testing.T) {
	for _, tf := range flagParseErrorTests {
		t.Run(tf.in, func(t *testing.T) {
			err := newFlagParseError(errors.New(tf.in))
			require.Equal(t, tf.flag, err.Flag())
			require.Equal(t, tf.reason, err.ReasonFormat())
			require.Equal(t, tf.in, err.Error())
		})
	}
}

func TestDurationFlag(t *testing.T) {
	var d time.Duration
	f := newDurationFlag(30*time.Second, &d)
	require.Equal(t, 30*time.Second, d)
	require.Equal(t, "duration", f.Type())

	require.NoError(t, f.Set("1m30s"))
	require.Equal(t, 90*time.Second, d)
	require.Equal(t, "1m30s", f.String())

	require.NoError(t, f.Set("1d"))
	require.Equal(t, 24*time.Hour, d)

	require.Error(t, f.Set("pronto"))
}

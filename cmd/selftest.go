package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

var blanks = regexp.MustCompile(` +`)

// Example invocations for a stop.
func examples(stop string) [][]string {
	stop = blanks.ReplaceAllString(stop, " ")
	return [][]string{
		{"--help"},
		{"--stop", stop},
		{"--stop", stop, "--header"},
		{"--stop", stop, "--tablefmt", "rst"},
		{"--stop", stop, "--num-line-groups", "2"},
		{"--stop", stop, "--num-line-groups", "2", "--filter-line", "U"},
	}
}

// Environment for the example runs, carrying over the configuration of
// this one.
func exampleEnv(config *viper.Viper) []string {
	env := os.Environ()
	for _, key := range []string{"url", "stops-file", "timeout", "storage"} {
		name := "VBBVG_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		env = append(env, fmt.Sprintf("%s=%s", name, config.GetString(key)))
	}
	return env
}

// Re-runs this binary with each of the examples, stopping at the first
// failure.
func selfTest(ctx context.Context, out io.Writer, stop string, config *viper.Viper) error {
	if stop == "" {
		red.Fprintln(out, "No stop provided with --stop.")
		return nil
	}

	prog, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}

	for _, args := range examples(stop) {
		bold.Fprintln(out, prog+" "+strings.Join(quote(args), " "))
		fmt.Fprintln(out)

		cmd := exec.CommandContext(ctx, prog, args...)
		cmd.Stdout = out
		cmd.Stderr = out
		cmd.Env = exampleEnv(config)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("running %s: %w", strings.Join(args, " "), err)
		}

		fmt.Fprintln(out)
	}

	return nil
}

func quote(args []string) []string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " ()") {
			a = "'" + a + "'"
		}
		quoted[i] = a
	}
	return quoted
}

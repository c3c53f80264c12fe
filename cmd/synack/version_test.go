package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestVersionCommandExists(t *testing.T) {
	if versionCmd == nil {
		t.Fatal("versionCmd is nil")
	}
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Run == nil {
		t.Error("versionCmd.Run should not be nil")
	}
}

func TestVersionOutput(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	versionCmd.Run(cmd, nil)

	got := out.String()
	if !strings.Contains(got, "Synack "+Version) {
		t.Errorf("version output missing %q:\n%s", "Synack "+Version, got)
	}
	if !strings.Contains(got, "Go Version:") {
		t.Errorf("version output missing Go version:\n%s", got)
	}
}

func TestRootSubcommands(t *testing.T) {
	want := map[string]bool{"parse": false, "batch": false, "serve": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

package inputs

import (
	"errors"
	"strings"
	"testing"

	"eccdeploy/internal/stage"
)

func mapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"access_token": "INPUT_ACCESS_TOKEN",
		"package dir":  "INPUT_PACKAGE_DIR",
		"tags":         "INPUT_TAGS",
	}
	for in, want := range tests {
		if got := EnvKey(in); got != want {
			t.Fatalf("EnvKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFromLookupReadsAndTrims(t *testing.T) {
	in := FromLookup(mapLookup(map[string]string{
		"INPUT_ACCESS_TOKEN":  " token ",
		"INPUT_PACKAGE_DIR":   "packages",
		"INPUT_INSTANCE-NAME": "prod",
		"INPUT_DESCRIPTION":   "release build",
	}))
	if in.AccessToken != "token" {
		t.Fatalf("unexpected token %q", in.AccessToken)
	}
	if in.InstanceName != "prod" {
		t.Fatalf("expected hyphenated key fallback, got %q", in.InstanceName)
	}
	if in.Tags != DefaultTag {
		t.Fatalf("expected default tag, got %q", in.Tags)
	}
	if in.BaseDir != "" {
		t.Fatalf("expected empty base dir, got %q", in.BaseDir)
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestOverrideIgnoresEmptyValues(t *testing.T) {
	base := Inputs{AccessToken: "env-token", PackageDir: "pkgs", Tags: "latest"}
	out := base.Override(map[string]string{
		AccessToken: "",
		Tags:        "v2.0.0",
		"unknown":   "x",
	})
	if out.AccessToken != "env-token" {
		t.Fatalf("expected env token to survive empty override, got %q", out.AccessToken)
	}
	if out.Tags != "v2.0.0" {
		t.Fatalf("expected tag override, got %q", out.Tags)
	}
	if base.Tags != "latest" {
		t.Fatal("override must not mutate the receiver")
	}
}

func TestValidateNamesMissingInputs(t *testing.T) {
	err := Inputs{PackageDir: "pkgs"}.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, stage.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	var missing *MissingError
	if !errors.As(err, &missing) || len(missing.Names) != 2 {
		t.Fatalf("expected two missing names, got %v", err)
	}
	msg := err.Error()
	if msg != "missing required inputs: access_token, instance_name" {
		t.Fatalf("unexpected message %q", msg)
	}
	for _, name := range []string{AccessToken, InstanceName} {
		if !strings.Contains(msg, name) {
			t.Fatalf("expected %q in %q", name, msg)
		}
	}
	if strings.Contains(msg, PackageDir) {
		t.Fatalf("package_dir was provided, got %q", msg)
	}
}

func TestValidateTreatsWhitespaceAsMissing(t *testing.T) {
	err := Inputs{AccessToken: "t", InstanceName: "  ", PackageDir: "p"}.Validate()
	if err == nil || !strings.Contains(err.Error(), "missing required input: instance_name") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestEnvKeysIncludesHyphenatedSpellings(t *testing.T) {
	keys := EnvKeys()
	want := map[string]bool{"INPUT_ACCESS_TOKEN": false, "INPUT_ACCESS-TOKEN": false, "INPUT_TAGS": false}
	for _, key := range keys {
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Fatalf("expected %s in %v", key, keys)
		}
	}
}

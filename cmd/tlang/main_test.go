package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(append([]string{"--color", "never"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "tlang version "+version+"\n" {
		t.Fatalf("got %q", out)
	}
}

func TestBadColor(t *testing.T) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs([]string{"--color", "sometimes", "version"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "--color") {
		t.Fatalf("expected --color error, got %v", err)
	}
}

func TestTokens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.t")
	writeFile(t, path, "int32 x = 1;")

	out, _, err := runCLI(t, "tokens", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"1:1\tPRIMITIVE\t\"int32\"\n",
		"1:7\tIDENT\t\"x\"\n",
		"1:9\t=\t\"=\"\n",
		"1:11\tINT\t\"1\"\n",
		"1:12\t;\t\";\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestTokensLexError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.t")
	writeFile(t, path, "x = \"open;\n")

	_, stderr, err := runCLI(t, "tokens", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(stderr, "TL0001") {
		t.Fatalf("stderr lacks lex code:\n%s", stderr)
	}
}

func TestASTFromManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tlang.toml"), "entry = \"src/app.t\"\n")
	writeFile(t, filepath.Join(dir, "src", "app.t"), "int32 x = 1;\n")
	t.Chdir(dir)

	out, _, err := runCLI(t, "ast")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Program\n  VariableDeclaration x\n") {
		t.Fatalf("unexpected dump:\n%s", out)
	}
}

func TestASTYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.t")
	writeFile(t, path, "int32 x = 1;\n")

	out, _, err := runCLI(t, "ast", "--format", "yaml", path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not yaml: %v\n%s", err, out)
	}
	if doc["kind"] != "program" {
		t.Fatalf("kind = %v", doc["kind"])
	}
}

func TestASTUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.t")
	writeFile(t, path, "int32 x = 1;\n")

	if _, _, err := runCLI(t, "ast", "--format", "json", path); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestASTNoManifest(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, _, err := runCLI(t, "ast"); err == nil || !strings.Contains(err.Error(), "tlang.toml") {
		t.Fatalf("expected missing manifest error, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.t"), "int32 x = 1;\n")
	writeFile(t, filepath.Join(dir, "nested", "b.t"), "namespace n { bool ok = true; }\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not source")

	out, _, err := runCLI(t, "check", dir)
	if err != nil {
		t.Fatal(err)
	}
	if out != "checked 2 files\n" {
		t.Fatalf("got %q", out)
	}
}

func TestCheckReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.t")
	bad := filepath.Join(dir, "bad.t")
	writeFile(t, good, "int32 x = 1;\n")
	writeFile(t, bad, "int32 x = 1\n")

	_, stderr, err := runCLI(t, "check", good, bad)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(stderr, "TP0001") || !strings.Contains(stderr, "bad.t:") {
		t.Fatalf("stderr lacks diagnostic:\n%s", stderr)
	}
	if !strings.Contains(stderr, "1 of 2 files failed") {
		t.Fatalf("stderr lacks summary:\n%s", stderr)
	}
}

func TestCheckMaxDepthFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "tlang.toml")
	writeFile(t, cfg, "[parser]\nmax_depth = 2\n")
	path := filepath.Join(dir, "deep.t")
	writeFile(t, path, "{ { { x = 1; } } }\n")

	_, stderr, err := runCLI(t, "--config", cfg, "check", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(stderr, "TP0002") {
		t.Fatalf("stderr lacks nesting code:\n%s", stderr)
	}
}

func TestFmtStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.t")
	writeFile(t, path, "x=1;")

	out, _, err := runCLI(t, "fmt", path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "x = 1;\n" {
		t.Fatalf("got %q", out)
	}
	b, _ := os.ReadFile(path)
	if string(b) != "x=1;" {
		t.Fatalf("file changed without -w: %q", b)
	}
}

func TestFmtWriteAndList(t *testing.T) {
	dir := t.TempDir()
	messy := filepath.Join(dir, "messy.t")
	clean := filepath.Join(dir, "clean.t")
	writeFile(t, messy, "{x=1;}")
	writeFile(t, clean, "y = 2;\n")
	t.Chdir(dir)

	out, _, err := runCLI(t, "fmt", "-l", "-w")
	if err != nil {
		t.Fatal(err)
	}
	if out != "messy.t\n" {
		t.Fatalf("listed %q", out)
	}
	b, err := os.ReadFile(messy)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  x = 1;\n}\n" {
		t.Fatalf("rewritten to %q", b)
	}
}

func TestFmtUsesManifestIndent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tlang.toml"), "[fmt]\ntabs = true\n")
	writeFile(t, filepath.Join(dir, "x.t"), "{x=1;}")
	t.Chdir(dir)

	out, _, err := runCLI(t, "fmt", "x.t")
	if err != nil {
		t.Fatal(err)
	}
	if out != "{\n\tx = 1;\n}\n" {
		t.Fatalf("got %q", out)
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")

	out, _, err := runCLI(t, "init", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "tlang.toml") || !strings.Contains(out, "main.t") {
		t.Fatalf("unexpected output %q", out)
	}

	b, err := os.ReadFile(filepath.Join(dir, "tlang.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `name = "demo"`) || !strings.Contains(string(b), `entry = "main.t"`) {
		t.Fatalf("manifest:\n%s", b)
	}

	// The generated project checks cleanly through its manifest.
	t.Chdir(dir)
	if _, stderr, err := runCLI(t, "check"); err != nil {
		t.Fatalf("check failed: %v\n%s", err, stderr)
	}

	if _, _, err := runCLI(t, "init"); err == nil {
		t.Fatal("expected an error when the manifest exists")
	}
	if _, _, err := runCLI(t, "init", "--force", "--name", "other"); err != nil {
		t.Fatal(err)
	}
	b, _ = os.ReadFile("tlang.toml")
	if !strings.Contains(string(b), `name = "other"`) {
		t.Fatalf("manifest not overwritten:\n%s", b)
	}
}

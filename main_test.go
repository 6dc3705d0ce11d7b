package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"bvh-raytracer"}, args...))
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"room whitted", []string{"--scene", "room"}},
		{"mirrors path", []string{"--scene", "mirrors", "--integrator", "path", "--hemisphere", "cosine"}},
		{"triangles aa", []string{"--scene", "triangles", "--aa", "--split", "midpoint"}},
		{"room normals", []string{"--scene", "room", "--integrator", "normal", "--time", "1.5"}},
		{"yaml scene", []string{"--scene", "file", "--scene-file", "scenes/glass-box.yaml", "--integrator", "path"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "img", "out.png")
			args := append([]string{"render", "--width", "24", "--height", "16", "--frames", "2", "--out", out}, tt.args...)
			stdout, err := runApp(t, args...)
			if err != nil {
				t.Fatalf("render failed: %v\n%s", err, stdout)
			}

			f, err := os.Open(out)
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("output is not a PNG: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
				t.Errorf("expected 24x16 image, got %v", b)
			}
		})
	}
}

func TestRenderCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "cfg.png")
	cfg := filepath.Join(dir, "render.toml")
	content := "width = 8\nheight = 8\nframes = 1\nscene = \"mirrors\"\noutput = \"" + filepath.ToSlash(out) + "\"\n"
	if err := os.WriteFile(cfg, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runApp(t, "render", "--config", cfg); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output at %s: %v", out, err)
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"--scene", "nonexistent"}},
		{"unknown integrator", []string{"--integrator", "bdpt"}},
		{"file scene without file", []string{"--scene", "file"}},
		{"missing texture", []string{"--texture", "does-not-exist.png"}},
		{"missing config", []string{"--config", "does-not-exist.toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "--width", "4", "--height", "4", "--frames", "1",
				"--out", filepath.Join(t.TempDir(), "x.png")}, tt.args...)
			if _, err := runApp(t, args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestInspectCommand(t *testing.T) {
	out, err := runApp(t, "inspect", "--scene", "triangles", "--seed", "3")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{"midpoint", "sah", "SAH cost", "Max depth", "65 bounded primitives"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestScenesCommand(t *testing.T) {
	dir := t.TempDir()
	content := "# Scene: Glass Box\n# Description: a box\nname: glass-box\n"
	if err := os.WriteFile(filepath.Join(dir, "glass-box.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "scenes", dir)
	if err != nil {
		t.Fatalf("scenes failed: %v", err)
	}
	for _, want := range []string{"room", "mirrors", "triangles", "Glass Box", "file:glass-box"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

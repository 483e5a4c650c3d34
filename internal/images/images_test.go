// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"reflect"
	"testing"

	"github.com/spf13/afero"
	"golang.org/x/image/tiff"
)

func TestDiscover(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := []string{"S2.tif", "S1.tif", "S10.TIF", "T1.tif", "S3.png", "notes.txt"}
	for _, f := range files {
		if err := afero.WriteFile(fs, "/data/"+f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := fs.MkdirAll("/data/S4.tif", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/data/sub/S5.tif", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(fs, "/data", DefaultPrefix, DefaultExt)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"S1.tif", "S10.TIF", "S2.tif"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Discover = %v, want %v", got, want)
	}
}

func TestDiscover_Empty(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("/data", 0o755)
	got, err := Discover(fs, "/data", "S", ".tif")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no images, got %v, %v", got, err)
	}
}

func TestDiscover_MissingDir(t *testing.T) {
	if _, err := Discover(afero.NewMemMapFs(), "/nope", "S", ".tif"); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestDescribe(t *testing.T) {
	fs := afero.NewMemMapFs()
	img := image.NewGray(image.Rect(0, 0, 7, 5))
	img.Set(1, 1, color.White)

	var tb bytes.Buffer
	if err := tiff.Encode(&tb, img, nil); err != nil {
		t.Fatal(err)
	}
	var pb bytes.Buffer
	if err := png.Encode(&pb, img); err != nil {
		t.Fatal(err)
	}
	_ = afero.WriteFile(fs, "/d/S1.tif", tb.Bytes(), 0o644)
	_ = afero.WriteFile(fs, "/d/S2.png", pb.Bytes(), 0o644)
	_ = afero.WriteFile(fs, "/d/S3.tif", []byte("not an image"), 0o644)

	cases := []struct {
		path   string
		w, h   int
		format string
		size   int64
	}{
		{"/d/S1.tif", 7, 5, "tiff", int64(tb.Len())},
		{"/d/S2.png", 7, 5, "png", int64(pb.Len())},
		{"/d/S3.tif", 0, 0, "", 12},
	}
	for _, tc := range cases {
		info, err := Describe(fs, tc.path)
		if err != nil {
			t.Fatalf("Describe(%s): %v", tc.path, err)
		}
		if info.Width != tc.w || info.Height != tc.h || info.Format != tc.format || info.Size != tc.size {
			t.Errorf("Describe(%s) = %+v", tc.path, info)
		}
	}

	if _, err := Describe(fs, "/d/missing.tif"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTitle(t *testing.T) {
	if got := Title("S12.tif"); got != "Biopsy name: S12" {
		t.Fatalf("Title = %q", got)
	}
	if got := Title("noext"); got != "Biopsy name: noext" {
		t.Fatalf("Title = %q", got)
	}
}

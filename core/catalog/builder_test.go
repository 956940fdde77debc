package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"javiradio/core/probe"
	"javiradio/model"
	"javiradio/repository"
)

type stubProber struct {
	results map[string]probe.Result
	err     error
}

func (s *stubProber) Probe(path string) (probe.Result, error) {
	if s.err != nil {
		return probe.Result{}, s.err
	}
	if res, ok := s.results[filepath.Base(path)]; ok {
		return res, nil
	}
	return probe.Result{}, errors.New("unknown file")
}

func writeMP3(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("fake mp3"), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestBuilder(t *testing.T, prober probe.Prober) (*Builder, repository.CatalogRepository, string) {
	t.Helper()
	tmp := t.TempDir()
	repo := repository.NewFileCatalogRepository(filepath.Join(tmp, "song_data.json"))
	audioDir := filepath.Join(tmp, "javiradio")
	if err := os.Mkdir(audioDir, 0755); err != nil {
		t.Fatal(err)
	}
	return NewBuilder(repo, prober), repo, audioDir
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Sunset Drive.mp3", "sunset_drive"},
		{"already_lower.mp3", "already_lower"},
		{"MiXeD CaSe Song.mp3", "mixed_case_song"},
		{"no extension", "no_extension"},
		{"two  spaces.mp3", "two__spaces"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.filename); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestRebuild(t *testing.T) {
	prober := &stubProber{results: map[string]probe.Result{
		"Sunset Drive.mp3": {Duration: 245, CoverArt: "data:image/jpeg;base64,QQ=="},
		"Night Rain.mp3":   {Duration: 190},
	}}

	t.Run("scans mp3 files only", func(t *testing.T) {
		builder, _, dir := newTestBuilder(t, prober)
		writeMP3(t, dir, "Sunset Drive.mp3")
		writeMP3(t, dir, "Night Rain.mp3")
		writeMP3(t, dir, "notes.txt")

		catalog := builder.Rebuild(dir)
		if len(catalog) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(catalog))
		}

		song := catalog["sunset_drive"]
		if song == nil {
			t.Fatal("expected sunset_drive")
		}
		if song.Title != "Sunset Drive" {
			t.Errorf("title: got %q", song.Title)
		}
		if song.Artist != "JaviRadio" {
			t.Errorf("artist: got %q", song.Artist)
		}
		if song.Duration != 245 {
			t.Errorf("duration: got %d", song.Duration)
		}
		if song.CoverArt == "" {
			t.Error("expected probed cover art")
		}
	})

	t.Run("probe failure falls back to 180", func(t *testing.T) {
		builder, _, dir := newTestBuilder(t, &stubProber{err: errors.New("boom")})
		writeMP3(t, dir, "Broken.mp3")

		catalog := builder.Rebuild(dir)
		if got := catalog["broken"].Duration; got != 180 {
			t.Errorf("expected fallback duration 180, got %d", got)
		}
	})

	t.Run("merge preserves counters", func(t *testing.T) {
		builder, repo, dir := newTestBuilder(t, prober)
		writeMP3(t, dir, "Sunset Drive.mp3")

		builder.Rebuild(dir)
		repo.Replace(func(prev model.Catalog) model.Catalog {
			prev["sunset_drive"].PlayCount = 7
			prev["sunset_drive"].TotalListenTime = 350
			return prev
		})

		catalog := builder.Rebuild(dir)
		song := catalog["sunset_drive"]
		if song.PlayCount != 7 {
			t.Errorf("playCount: got %d, want 7", song.PlayCount)
		}
		if song.TotalListenTime != 350 {
			t.Errorf("totalListenTime: got %d, want 350", song.TotalListenTime)
		}
	})

	t.Run("rebuild is idempotent for counters", func(t *testing.T) {
		builder, repo, dir := newTestBuilder(t, prober)
		writeMP3(t, dir, "Night Rain.mp3")

		builder.Rebuild(dir)
		repo.Replace(func(prev model.Catalog) model.Catalog {
			prev["night_rain"].PlayCount = 3
			return prev
		})

		builder.Rebuild(dir)
		catalog := builder.Rebuild(dir)
		if got := catalog["night_rain"].PlayCount; got != 3 {
			t.Errorf("playCount changed across rebuilds: got %d, want 3", got)
		}
	})

	t.Run("prior cover art survives a failed probe", func(t *testing.T) {
		okProber := &stubProber{results: map[string]probe.Result{
			"Sunset Drive.mp3": {Duration: 245, CoverArt: "data:image/jpeg;base64,QQ=="},
		}}
		builder, repo, dir := newTestBuilder(t, okProber)
		writeMP3(t, dir, "Sunset Drive.mp3")
		builder.Rebuild(dir)

		failing := NewBuilder(repo, &stubProber{err: errors.New("boom")})
		catalog := failing.Rebuild(dir)
		if got := catalog["sunset_drive"].CoverArt; got != "data:image/jpeg;base64,QQ==" {
			t.Errorf("expected preserved cover art, got %q", got)
		}
	})

	t.Run("removed files drop out", func(t *testing.T) {
		builder, _, dir := newTestBuilder(t, prober)
		writeMP3(t, dir, "Sunset Drive.mp3")
		writeMP3(t, dir, "Night Rain.mp3")
		builder.Rebuild(dir)

		if err := os.Remove(filepath.Join(dir, "Night Rain.mp3")); err != nil {
			t.Fatal(err)
		}
		catalog := builder.Rebuild(dir)
		if _, ok := catalog["night_rain"]; ok {
			t.Error("expected night_rain to drop out after file removal")
		}
	})

	t.Run("missing directory yields empty catalog", func(t *testing.T) {
		builder, _, _ := newTestBuilder(t, prober)
		catalog := builder.Rebuild(filepath.Join(t.TempDir(), "does-not-exist"))
		if len(catalog) != 0 {
			t.Errorf("expected empty catalog, got %d entries", len(catalog))
		}
	})
}

package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"javiradio/core/probe"
	"javiradio/logger"
	"javiradio/model"
	"javiradio/repository"
)

const (
	audioExtension = ".mp3"
	// defaultDuration is used when the probe cannot read a file.
	defaultDuration = 180
	defaultArtist   = "JaviRadio"
)

// Builder derives the song catalog from an audio directory and merges
// it with the persisted catalog so counters survive rebuilds.
type Builder struct {
	repo   repository.CatalogRepository
	prober probe.Prober
}

// NewBuilder creates a catalog builder.
func NewBuilder(repo repository.CatalogRepository, prober probe.Prober) *Builder {
	return &Builder{repo: repo, prober: prober}
}

// NormalizeKey derives a song id from an audio filename: extension
// stripped, spaces replaced with underscores, lowercased. Two files can
// normalize to the same key; the one scanned later wins, and directory
// enumeration order is not guaranteed across filesystems.
func NormalizeKey(filename string) string {
	key := strings.TrimSuffix(filename, audioExtension)
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ToLower(key)
}

// Rebuild scans dir, probes every MP3 and replaces the persisted
// catalog with the result, carrying forward playCount, totalListenTime
// and previously extracted cover art for songs that already existed.
// Songs whose files are gone drop out of the catalog.
func (b *Builder) Rebuild(dir string) model.Catalog {
	scanned := b.scan(dir)

	return b.repo.Replace(func(prev model.Catalog) model.Catalog {
		for key, song := range scanned {
			old, ok := prev[key]
			if !ok {
				continue
			}
			song.PlayCount = old.PlayCount
			song.TotalListenTime = old.TotalListenTime
			if song.CoverArt == "" && old.CoverArt != "" {
				song.CoverArt = old.CoverArt
			}
		}
		return scanned
	})
}

func (b *Builder) scan(dir string) model.Catalog {
	songs := model.Catalog{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("audio directory unreadable", logger.String("dir", dir), logger.ErrorField(err))
		return songs
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, audioExtension) {
			continue
		}

		key := NormalizeKey(name)
		if _, dup := songs[key]; dup {
			logger.Warn("song key collision, later file wins",
				logger.String("key", key), logger.String("file", name))
		}

		song := &model.Song{
			Title:    strings.TrimSuffix(name, audioExtension),
			Artist:   defaultArtist,
			Filename: name,
			Duration: defaultDuration,
		}

		result, err := b.prober.Probe(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("probe failed, using default duration",
				logger.String("file", name), logger.ErrorField(err))
		} else if result.Duration > 0 {
			song.Duration = result.Duration
		}
		song.CoverArt = result.CoverArt

		songs[key] = song
	}
	return songs
}

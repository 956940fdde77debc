package probe

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/bogem/id3v2"

	"javiradio/logger"
)

// Result is what a probe extracts from one audio file.
type Result struct {
	Duration int    // seconds
	CoverArt string // data URI, empty when the file embeds no front cover
}

// Prober extracts duration and cover art from an audio file. The
// catalog builder falls back to a fixed default duration when a probe
// fails.
type Prober interface {
	Probe(path string) (Result, error)
}

// MP3Prober reads duration via ffprobe and cover art from the ID3v2
// front-cover frame.
type MP3Prober struct {
	ffprobePath string
}

// NewMP3Prober creates a prober using the given ffprobe binary.
func NewMP3Prober(ffprobePath string) *MP3Prober {
	return &MP3Prober{ffprobePath: ffprobePath}
}

// Probe returns duration and cover art for path. Cover art extraction
// is best effort either way; the returned error reports only a failed
// duration probe.
func (p *MP3Prober) Probe(path string) (Result, error) {
	res := Result{CoverArt: p.coverArt(path)}

	duration, err := p.duration(path)
	if err != nil {
		return res, err
	}
	res.Duration = duration
	return res, nil
}

// duration shells out to ffprobe and parses its JSON output.
func (p *MP3Prober) duration(path string) (int, error) {
	cmd := exec.Command(p.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_entries", "format=duration",
		path,
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var probeData struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out.Bytes(), &probeData); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output for %s: %w", path, err)
	}
	if probeData.Format.Duration == "" {
		return 0, fmt.Errorf("duration not found in ffprobe output for %s", path)
	}
	duration, err := strconv.ParseFloat(probeData.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q for %s: %w", probeData.Format.Duration, path, err)
	}
	return int(duration), nil
}

// coverArt returns the embedded front cover as a data URI, or empty.
func (p *MP3Prober) coverArt(path string) string {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		logger.Debug("no readable ID3 tag", logger.String("file", path), logger.ErrorField(err))
		return ""
	}
	defer tag.Close()

	for _, framer := range tag.GetFrames(tag.CommonID("Attached picture")) {
		picture, ok := framer.(id3v2.PictureFrame)
		if !ok || picture.PictureType != id3v2.PTFrontCover {
			continue
		}
		encoded := base64.StdEncoding.EncodeToString(picture.Picture)
		return fmt.Sprintf("data:%s;base64,%s", picture.MimeType, encoded)
	}
	return ""
}

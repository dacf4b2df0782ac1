// Package videos assembles still images into an MP4 with ffmpeg.
package videos

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hitminer/bucket-sync/bash"
	"github.com/rs/zerolog"
)

// FFmpeg is the ffmpeg binary used by CreateFromImages.
var FFmpeg = "ffmpeg"

const DefaultFPS = 5

var ErrNoImages = errors.New("no images")

// CreateFromImages writes the images as consecutive frames of the MP4 at out,
// fps frames per second. When sorted is set the frames are ordered by path.
// Progress is logged to the zerolog logger carried by ctx.
func CreateFromImages(ctx context.Context, imgs []string, out string, fps int, sorted bool) error {
	log := zerolog.Ctx(ctx)
	if len(imgs) == 0 {
		return ErrNoImages
	}
	if fps <= 0 {
		return fmt.Errorf("invalid frame rate %d", fps)
	}
	if sorted {
		imgs = append([]string(nil), imgs...)
		sort.Strings(imgs)
	}
	log.Info().Int("frames", len(imgs)).Str("out", out).Msg("creating video")

	list, err := concatList(imgs, fps)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp("", "frames-*.txt")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(list); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	if _, err := bash.Exec(ctx, FFmpeg, ffmpegArgs(f.Name(), out, fps)...); err != nil {
		return fmt.Errorf("create video %s: %w", out, err)
	}
	log.Info().Str("out", out).Msg("video saved")
	return nil
}

// concatList renders the ffmpeg concat script showing every image for one
// frame. The last image is repeated since ffmpeg ignores the final duration.
func concatList(imgs []string, fps int) (string, error) {
	duration := strconv.FormatFloat(1/float64(fps), 'f', -1, 64)
	var b strings.Builder
	b.WriteString("ffconcat version 1.0\n")
	var last string
	for _, img := range imgs {
		abs, err := filepath.Abs(img)
		if err != nil {
			return "", err
		}
		last = quote(abs)
		fmt.Fprintf(&b, "file %s\nduration %s\n", last, duration)
	}
	fmt.Fprintf(&b, "file %s\n", last)
	return b.String(), nil
}

func quote(path string) string {
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

func ffmpegArgs(list, out string, fps int) []string {
	return []string{
		"-y",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", list,
		"-r", strconv.Itoa(fps),
		"-c:v", "mpeg4",
		"-pix_fmt", "yuv420p",
		out,
	}
}

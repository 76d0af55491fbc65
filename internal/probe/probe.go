// Package probe extracts technical metadata from media files with ffprobe.
// Probing is best-effort: a missing binary or unreadable file yields empty
// fields, never an error that fails the surrounding parse.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/torrentforge/internal/media"
)

// Info holds the fields read from the file itself. These reflect ground
// truth and take precedence over filename-derived values.
type Info struct {
	Resolution    string `json:"resolution"`
	VideoCodec    string `json:"video_codec"`
	AudioCodec    string `json:"audio_codec"`
	FileSize      string `json:"file_size"`
	Duration      string `json:"duration"`
	BitDepth      string `json:"bit_depth"`
	HDRFormat     string `json:"hdr_format"`
	AudioChannels string `json:"audio_channels"`
}

// runner executes ffprobe and returns its stdout. Swapped out in tests.
type runner func(ctx context.Context, bin string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, bin string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).Output()
}

// Prober invokes ffprobe.
type Prober struct {
	bin     string
	timeout time.Duration
	run     runner
	logger  *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithBinary sets the ffprobe binary path.
func WithBinary(bin string) Option {
	return func(p *Prober) { p.bin = bin }
}

// WithTimeout sets the per-file probe timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) { p.timeout = d }
}

// New creates a Prober.
func New(logger *slog.Logger, opts ...Option) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Prober{
		bin:     "ffprobe",
		timeout: 10 * time.Second,
		run:     execRunner,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe inspects a media file. The returned Info always carries the file
// size when the file is statable; stream fields are filled only when
// ffprobe succeeds.
func (p *Prober) Probe(ctx context.Context, path string) Info {
	var info Info

	if st, err := os.Stat(path); err == nil {
		info.FileSize = media.FormatSize(st.Size())
	} else {
		p.logger.Warn("stat failed", "path", path, "error", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.run(ctx, p.bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)
	if err != nil {
		p.logger.Debug("ffprobe unavailable or failed", "path", path, "error", err)
		return info
	}

	var raw ffprobeOutput
	if err := json.Unmarshal(out, &raw); err != nil {
		p.logger.Warn("ffprobe output unparseable", "path", path, "error", err)
		return info
	}

	applyStreams(&info, &raw)
	return info
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeStream struct {
	CodecType     string `json:"codec_type"`
	CodecName     string `json:"codec_name"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	CodedWidth    int    `json:"coded_width"`
	CodedHeight   int    `json:"coded_height"`
	PixFmt        string `json:"pix_fmt"`
	ColorTransfer string `json:"color_transfer"`
	ColorSpace    string `json:"color_space"`
	Channels      int    `json:"channels"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

func applyStreams(info *Info, raw *ffprobeOutput) {
	var video, audio *ffprobeStream
	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch {
		case s.CodecType == "video" && video == nil:
			video = s
		case s.CodecType == "audio" && audio == nil:
			audio = s
		}
	}

	if video != nil {
		info.Resolution = classifyResolution(video)
		info.VideoCodec = displayVideoCodec(video.CodecName)
		info.BitDepth = classifyBitDepth(video.PixFmt)
		info.HDRFormat = classifyHDR(video, info.BitDepth)
	}
	if audio != nil {
		info.AudioCodec = displayAudioCodec(audio.CodecName)
		info.AudioChannels = channelLayout(audio.Channels)
	}
	if raw.Format.Duration != "" {
		info.Duration = formatDuration(raw.Format.Duration)
	}
}

// classifyResolution uses coded dimensions as fallback since some containers
// report cropped height (letterboxed 1080p content stores height < 1080).
// The width-derived tier disambiguates: a true 1080p encode keeps its full
// width even when the stored height is reduced.
func classifyResolution(v *ffprobeStream) string {
	width, height := v.CodedWidth, v.CodedHeight
	if width == 0 {
		width = v.Width
	}
	if height == 0 {
		height = v.Height
	}
	if width == 0 || height == 0 {
		return ""
	}

	byWidth := width * 9 / 16 // assume 16:9 reference
	effective := max(height, byWidth)

	switch {
	case effective >= 2160:
		return "2160p"
	case effective >= 1440:
		return "1440p"
	case effective >= 1080:
		return "1080p"
	case effective >= 720:
		return "720p"
	case effective >= 576:
		return "576p"
	case effective >= 480:
		return "480p"
	default:
		return fmt.Sprintf("%dp", effective)
	}
}

func displayVideoCodec(name string) string {
	switch name {
	case "":
		return ""
	case "h264":
		return "x264"
	case "hevc":
		return "x265"
	case "av1":
		return "AV1"
	case "vp9":
		return "VP9"
	default:
		return strings.ToUpper(name)
	}
}

func displayAudioCodec(name string) string {
	switch name {
	case "":
		return ""
	case "aac":
		return "AAC"
	case "ac3":
		return "AC3"
	case "eac3":
		return "EAC3"
	case "dts":
		return "DTS"
	case "truehd":
		return "TrueHD"
	case "flac":
		return "FLAC"
	case "opus":
		return "Opus"
	case "vorbis":
		return "Vorbis"
	default:
		return strings.ToUpper(name)
	}
}

func classifyBitDepth(pixFmt string) string {
	switch {
	case pixFmt == "":
		return ""
	case strings.Contains(pixFmt, "10le"), strings.Contains(pixFmt, "10be"):
		return "10-bit"
	case strings.Contains(pixFmt, "12le"), strings.Contains(pixFmt, "12be"):
		return "12-bit"
	default:
		return "8-bit"
	}
}

func classifyHDR(v *ffprobeStream, bitDepth string) string {
	transfer := strings.ToLower(v.ColorTransfer)
	space := strings.ToLower(v.ColorSpace)
	switch {
	case strings.Contains(transfer, "smpte2084"):
		return "HDR10"
	case strings.Contains(transfer, "arib-std-b67"):
		return "HLG"
	case strings.Contains(space, "bt2020") && bitDepth == "10-bit":
		return "HDR"
	default:
		return ""
	}
}

func channelLayout(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "1.0"
	case 2:
		return "2.0"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%d.0", channels)
	}
}

func formatDuration(s string) string {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}
	total := int(secs)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

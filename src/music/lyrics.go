package music

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// LyricLine is a single line of synced lyrics with its playback position.
type LyricLine struct {
	At   time.Duration
	Text string
}

// Lyrics is the result of one provider query. Synced lyrics carry per-line
// timestamps in Lines; plain lyrics carry the raw text in Text. A nil
// *Lyrics means no lyrics were found.
type Lyrics struct {
	Synced bool
	Lines  []LyricLine
	Text   string
}

// NewPlain wraps raw lyric text in a plain result. Empty text yields nil.
func NewPlain(text string) *Lyrics {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return &Lyrics{Text: text}
}

// NewSynced wraps timestamped lines in a synced result. No lines yields nil.
func NewSynced(lines []LyricLine) *Lyrics {
	if len(lines) == 0 {
		return nil
	}
	return &Lyrics{Synced: true, Lines: lines}
}

// lrcStampRe matches "[mm:ss]" and "[mm:ss.xx]" timestamps at line start.
var lrcStampRe = regexp.MustCompile(`^\[(\d+):(\d{1,2}(?:\.\d+)?)\]\s?(.*)$`)

// ParseLRC parses LRC-formatted text into timestamped lines. Metadata tags
// like [ar:...] and lines without a timestamp are skipped; a timestamped
// line with no text is kept as an empty entry.
func ParseLRC(text string) []LyricLine {
	var lines []LyricLine
	for _, raw := range strings.Split(text, "\n") {
		m := lrcStampRe.FindStringSubmatch(strings.TrimRight(raw, "\r"))
		if m == nil {
			continue
		}
		minutes, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		seconds, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		at := time.Duration((float64(minutes)*60 + seconds) * float64(time.Second))
		lines = append(lines, LyricLine{At: at, Text: m[3]})
	}
	return lines
}

// FormatLRC serializes timestamped lines into LRC text, one "[mm:ss.xx]text"
// entry per line in input order. Timestamps are rendered with centisecond
// precision.
func FormatLRC(lines []LyricLine) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(FormatLRCStamp(line.At))
		b.WriteString(line.Text)
	}
	return b.String()
}

// FormatLRCStamp renders a playback position as "[mm:ss.xx]".
func FormatLRCStamp(at time.Duration) string {
	if at < 0 {
		at = 0
	}
	centis := int64(at.Round(10*time.Millisecond) / (10 * time.Millisecond))
	minutes := centis / 6000
	centis -= minutes * 6000
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, centis/100, centis%100)
}

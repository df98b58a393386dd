package samples

import (
	"fmt"
	"strings"
)

// Format identifies an audio container/codec that the library knows how to
// locate and decode.
type Format string

const (
	// FormatOpus is Ogg-encapsulated Opus, the preferred CDN format.
	FormatOpus Format = "opus"
	// FormatMP3 is MPEG-1 Layer III.
	FormatMP3 Format = "mp3"
	// FormatFLAC is the lossless format and the resolver's last resort.
	FormatFLAC Format = "flac"
	// FormatOgg is Ogg Vorbis.
	FormatOgg Format = "ogg"
	// FormatWAV is uncompressed RIFF/WAVE, usually only hosted locally.
	FormatWAV Format = "wav"
)

// FallbackFormat is the lossless format used when every probe misses.
const FallbackFormat = FormatFLAC

// Ext returns the file extension for the format, without a leading dot.
func (f Format) Ext() string {
	return string(f)
}

// Valid reports whether f is a format the decoder set supports.
func (f Format) Valid() bool {
	switch f {
	case FormatOpus, FormatMP3, FormatFLAC, FormatOgg, FormatWAV:
		return true
	}
	return false
}

// UnmarshalText parses a Format from config and environment values.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFormat converts a user-supplied string into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// CDNURL builds the jsDelivr-style URL for a sample in the given format.
// The release tag is appended to the repo segment when present, matching the
// gh/<user>/<repo>@<tag> path convention.
func (c *Config) CDNURL(format Format, directory, fileName string) string {
	repo := c.Repo
	if c.ReleaseTag != "" {
		repo += "@" + c.ReleaseTag
	}
	return fmt.Sprintf("https://%s/gh/%s/%s/%s/samples/%s/%s.%s",
		c.CDNHost, c.Username, repo, format, directory, fileName, format.Ext())
}

// LocalURL builds the local-path URL for a sample in the given format.
func (c *Config) LocalURL(format Format, directory, fileName string) string {
	return fmt.Sprintf("%s%s/samples/%s/%s.%s",
		c.LocalBasePath, format, directory, fileName, format.Ext())
}

// FallbackURL is the hard-coded local lossless path returned when no probe
// succeeds for any configured format.
func (c *Config) FallbackURL(directory, fileName string) string {
	return c.LocalURL(FallbackFormat, directory, fileName)
}

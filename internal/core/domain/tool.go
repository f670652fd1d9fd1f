package domain

import "strings"

// Placeholders expanded in tool argument templates.
const (
	PlaceholderInput   = "{input}"
	PlaceholderOutput  = "{output}"
	PlaceholderBitrate = "{bitrate}"
)

// DefaultToolName is the transcoder used when the configuration names none.
const DefaultToolName = "ffmpeg"

// DefaultConvertArgs force-overwrites the output at the configured bitrate.
var DefaultConvertArgs = []string{"-y", "-i", PlaceholderInput, "-b:a", PlaceholderBitrate, PlaceholderOutput}

// DefaultValidateArgs decodes the input into the null muxer.
var DefaultValidateArgs = []string{"-v", "error", "-i", PlaceholderInput, "-f", "null", "-"}

// Tool describes the external conversion tool and its argument templates.
type Tool struct {
	Name         string
	ConvertArgs  []string
	ValidateArgs []string
}

// ConvertCommand returns the full command line that transcodes src into dst.
func (t Tool) ConvertCommand(src, dst, bitrate string) []string {
	r := strings.NewReplacer(PlaceholderInput, src, PlaceholderOutput, dst, PlaceholderBitrate, bitrate)
	return t.expand(t.ConvertArgs, r)
}

// ValidateCommand returns the full command line that checks path is decodable.
func (t Tool) ValidateCommand(path string) []string {
	r := strings.NewReplacer(PlaceholderInput, path)
	return t.expand(t.ValidateArgs, r)
}

func (t Tool) expand(args []string, r *strings.Replacer) []string {
	cmd := make([]string, 0, len(args)+1)
	cmd = append(cmd, t.Name)
	for _, arg := range args {
		cmd = append(cmd, r.Replace(arg))
	}
	return cmd
}

// Package deps reports the availability of the external encoder and
// tagging tools a conversion run shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-multierror"

	"flacmirror/internal/encoder"
)

// Requirement defines an external tool a conversion run relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of one requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForFormat returns the tool requirements for one output format. Only
// vorbiscomment is optional: OGG tags transfer inline during encode,
// so without it just album art embedding is lost. neroAacTag is
// required because AAC tagging runs through it after every encode.
func ForFormat(format string) []Requirement {
	flac := Requirement{
		Name:        "FLAC decoder",
		Command:     "flac",
		Description: "decodes source audio for the encoder pipeline",
	}
	switch format {
	case encoder.FormatAAC:
		return []Requirement{
			flac,
			{Name: "Nero AAC encoder", Command: "neroAacEnc", Description: "encodes decoded audio to AAC"},
			{Name: "Nero AAC tagger", Command: "neroAacTag", Description: "writes MP4 tags and cover art"},
		}
	case encoder.FormatOGG:
		return []Requirement{
			{Name: "Ogg Vorbis encoder", Command: "oggenc", Description: "encodes source audio to Ogg Vorbis"},
			{Name: "Vorbis comment editor", Command: "vorbiscomment", Description: "embeds cover art blocks", Optional: true},
		}
	case encoder.FormatMP3:
		return []Requirement{
			flac,
			{Name: "LAME encoder", Command: "lame", Description: "encodes decoded audio to MP3"},
		}
	default:
		return nil
	}
}

// CheckBinaries evaluates the provided requirements and reports
// availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Verify checks the tool chain for format and returns one error per
// missing required tool. Missing optional tools are reported through
// the returned statuses only.
func Verify(format string) ([]Status, error) {
	statuses := CheckBinaries(ForFormat(format))
	var errs *multierror.Error
	for _, status := range statuses {
		if status.Available || status.Optional {
			continue
		}
		errs = multierror.Append(errs, fmt.Errorf("%s (%s): %s", status.Name, status.Command, status.Detail))
	}
	return statuses, errs.ErrorOrNil()
}

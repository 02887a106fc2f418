package config

import (
	"errors"
	"fmt"

	"github.com/tauraamui/motiongrid/pkg/log"
	"gopkg.in/dealancer/validate.v2"
)

var ErrHelpRequested = errors.New("help requested")

const Usage = `Usage: motiongrid [--raw | [[--grid8x8] [--occupancy]]] videoPath
  --help and -h will output this help message.
  --raw will prevent motion vectors from being arranged in matrices.
  --grid8x8 will force fine 8x8 grid.
  --occupancy will append occupancy matrix after motion vector matrices.
  --quiet will suppress debug output.
`

// Values is the effective run configuration: optional file-provided
// defaults overlaid with command line flags. Flags can only switch
// behavior on, so they always win over the file.
type Values struct {
	VideoPath        string `json:"-" validate:"empty=false"`
	RawVectors       bool   `json:"raw"`
	FineGrid         bool   `json:"grid8x8"`
	IncludeOccupancy bool   `json:"occupancy"`
	Quiet            bool   `json:"quiet"`
	VideoBackend     string `json:"video_backend"`
}

// ParseArgs applies command line arguments on top of the current
// values. Any argument which is not a recognized flag is taken as the
// video path, last one winning.
func (v *Values) ParseArgs(args []string) error {
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			return ErrHelpRequested
		case "--raw":
			v.RawVectors = true
		case "--grid8x8":
			v.FineGrid = true
		case "--occupancy":
			v.IncludeOccupancy = true
		case "--quiet", "-q":
			v.Quiet = true
		default:
			v.VideoPath = arg
		}
	}
	return nil
}

func (v Values) RunValidate() error {
	if err := validate.Validate(&v); err != nil {
		return err
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %w"
	switch v.VideoBackend {
	case "", "mock", "ffmpeg":
		return nil
	}
	return fmt.Errorf(validationErrorHeader, errors.New("unknown video backend"))
}

// Resolve produces the run configuration from the optional defaults
// file plus the given args. A broken defaults file is reported and
// skipped rather than aborting the run.
func Resolve(args []string) (Values, error) {
	values, err := loadDefaults()
	if err != nil {
		log.Warn("ignoring defaults file: %s", err.Error())
		values = Values{}
	}

	if err := values.ParseArgs(args); err != nil {
		return Values{}, err
	}

	if err := values.RunValidate(); err != nil {
		return Values{}, err
	}

	return values, nil
}

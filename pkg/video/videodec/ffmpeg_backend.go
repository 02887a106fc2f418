package videodec

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tauraamui/motiongrid/pkg/log"
	"github.com/tauraamui/motiongrid/pkg/motion"
	"github.com/tauraamui/xerror"
)

// The default backend leans on two external ffmpeg-family tools rather
// than linking libav directly: ffprobe for per-frame metadata and an
// extract_mvs style dumper for the exported motion vector table. Both
// are consumed as line streams so decoding stays pull-driven.
const (
	defaultProbeBin  = "ffprobe"
	defaultMVToolBin = "extract_mvs"

	probeBinEnv  = "MOTIONGRID_FFPROBE"
	mvToolBinEnv = "MOTIONGRID_MVTOOL"
)

type ffmpegToolsBackend struct{}

func (b *ffmpegToolsBackend) Open(ctx context.Context, path string) (Stream, error) {
	probeBin := resolveBin(probeBinEnv, defaultProbeBin)
	mvToolBin := resolveBin(mvToolBinEnv, defaultMVToolBin)

	dims, err := probeDimensions(ctx, probeBin, path)
	if err != nil {
		return nil, err
	}

	stream := ffmpegToolsStream{uuid: uuid.NewString(), dims: dims}
	if err := stream.start(ctx, probeBin, mvToolBin, path); err != nil {
		return nil, err
	}

	log.Debug("opened decode stream [%s] for %s (%dx%d)", stream.uuid, path, dims.W, dims.H)
	return &stream, nil
}

func resolveBin(env, fallback string) string {
	if bin := os.Getenv(env); len(bin) > 0 {
		return bin
	}
	return fallback
}

type probedStreams struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
}

func probeDimensions(ctx context.Context, probeBin, path string) (Dimensions, error) {
	cmd := exec.CommandContext(ctx, probeBin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return Dimensions{}, xerror.Errorf("unable to probe %s: %w", path, err)
	}

	parsed, err := parseProbedDimensions(out)
	if err != nil {
		return Dimensions{}, err
	}
	return parsed, nil
}

func parseProbedDimensions(probeOutput []byte) (Dimensions, error) {
	var probed probedStreams
	if err := json.Unmarshal(probeOutput, &probed); err != nil {
		return Dimensions{}, errors.Wrap(err, "parsing stream probe output")
	}

	if len(probed.Streams) == 0 {
		return Dimensions{}, ErrNoVideoStream
	}

	first := probed.Streams[0]
	if first.Width <= 0 || first.Height <= 0 {
		return Dimensions{}, ErrNoVideoStream
	}
	return Dimensions{W: first.Width, H: first.Height}, nil
}

type ffmpegToolsStream struct {
	uuid string
	dims Dimensions

	probeCmd    *exec.Cmd
	probeWaited bool
	frames      *csv.Reader

	mvCmd   *exec.Cmd
	mvs     *csv.Reader
	mvAhead []string
	mvsDone bool

	frameCount int
	closed     bool
}

func (s *ffmpegToolsStream) start(ctx context.Context, probeBin, mvToolBin, path string) error {
	s.probeCmd = exec.CommandContext(ctx, probeBin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "frame=pts,pict_type",
		"-of", "csv=p=0",
		path,
	)

	frameOut, err := s.probeCmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "attaching to frame metadata stream")
	}

	if err := s.probeCmd.Start(); err != nil {
		return errors.Wrap(err, "starting frame metadata probe")
	}

	s.frames = csv.NewReader(frameOut)
	s.frames.FieldsPerRecord = -1

	s.mvCmd = exec.CommandContext(ctx, mvToolBin, path)
	mvOut, err := s.mvCmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "attaching to motion vector stream")
	}

	if err := s.mvCmd.Start(); err != nil {
		return errors.Wrap(err, "starting motion vector dumper")
	}

	s.mvs = csv.NewReader(mvOut)
	s.mvs.FieldsPerRecord = -1
	s.mvs.TrimLeadingSpace = true

	return nil
}

func (s *ffmpegToolsStream) UUID() string { return s.uuid }

func (s *ffmpegToolsStream) Dimensions() Dimensions { return s.dims }

func (s *ffmpegToolsStream) Next() (Frame, error) {
	record, err := s.frames.Read()
	if err == io.EOF {
		s.probeWaited = true
		if werr := s.probeCmd.Wait(); werr != nil {
			return Frame{}, errors.Wrap(werr, "frame metadata probe failed")
		}
		return Frame{}, ErrStreamDrained
	}
	if err != nil {
		return Frame{}, errors.Wrap(err, "reading frame metadata")
	}

	if len(record) < 2 {
		return Frame{}, xerror.Errorf("malformed frame metadata record: %v", record)
	}

	s.frameCount++

	// a pts ffprobe could not resolve sorts behind everything already
	// seen and gets dropped by the caller's skip policy
	pts, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		pts = -1
	}

	pictType := byte('?')
	if len(record[1]) > 0 {
		pictType = record[1][0]
	}

	return Frame{
		PTS:      pts,
		PictType: pictType,
		Vectors:  s.vectorsFor(s.frameCount),
	}, nil
}

// vectorsFor drains the motion vector table up to and including frame
// n. The dumper emits rows in frame order and omits frames without
// exported vectors entirely, so a single read-ahead row is enough to
// know when to stop.
func (s *ffmpegToolsStream) vectorsFor(n int) []motion.Vector {
	var vectors []motion.Vector
	for !s.mvsDone {
		if s.mvAhead == nil {
			record, err := s.mvs.Read()
			if err != nil {
				s.mvsDone = true
				break
			}
			if len(record) < 8 {
				continue
			}
			if _, err := strconv.Atoi(record[0]); err != nil {
				// header row
				continue
			}
			s.mvAhead = record
		}

		frameNum, _ := strconv.Atoi(s.mvAhead[0])
		if frameNum > n {
			break
		}

		record := s.mvAhead
		s.mvAhead = nil
		if frameNum < n {
			continue
		}

		if v, ok := parseVectorRecord(record); ok {
			vectors = append(vectors, v)
		}
	}
	return vectors
}

// parseVectorRecord reads one row of the dumper's
// framenum,source,blockw,blockh,srcx,srcy,dstx,dsty,flags table.
func parseVectorRecord(record []string) (motion.Vector, bool) {
	fields := make([]int, 4)
	for i, col := range []int{4, 5, 6, 7} {
		parsed, err := strconv.Atoi(record[col])
		if err != nil {
			return motion.Vector{}, false
		}
		fields[i] = parsed
	}
	return motion.Vector{
		SrcX: fields[0], SrcY: fields[1],
		DstX: fields[2], DstY: fields[3],
	}, true
}

func (s *ffmpegToolsStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	reap := func(cmd *exec.Cmd, waited bool) {
		if cmd == nil || cmd.Process == nil || waited {
			return
		}
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}

	reap(s.probeCmd, s.probeWaited)
	reap(s.mvCmd, false)

	log.Debug("closed decode stream [%s]", s.uuid)
	return nil
}

package videodec

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"
	"github.com/tauraamui/motiongrid/pkg/motion"
)

func TestParseProbedDimensions(t *testing.T) {
	is := is.New(t)

	dims, err := parseProbedDimensions([]byte(`{"streams":[{"width":1280,"height":720}]}`))
	is.NoErr(err)
	is.Equal(dims, Dimensions{W: 1280, H: 720})
}

func TestParseProbedDimensionsWithoutVideoStream(t *testing.T) {
	is := is.New(t)

	_, err := parseProbedDimensions([]byte(`{"streams":[]}`))
	is.Equal(err, ErrNoVideoStream)

	_, err = parseProbedDimensions([]byte(`{"streams":[{"width":0,"height":0}]}`))
	is.Equal(err, ErrNoVideoStream)
}

func TestParseProbedDimensionsRejectsGarbage(t *testing.T) {
	is := is.New(t)
	_, err := parseProbedDimensions([]byte("not json at all"))
	is.True(err != nil)
}

func TestParseVectorRecord(t *testing.T) {
	is := is.New(t)

	v, ok := parseVectorRecord([]string{"2", "-1", "16", "16", "8", "8", "12", "10", "0x0"})
	is.True(ok)
	is.Equal(v, motion.Vector{SrcX: 8, SrcY: 8, DstX: 12, DstY: 10})

	_, ok = parseVectorRecord([]string{"2", "-1", "16", "16", "x", "8", "12", "10", "0x0"})
	is.True(!ok)
}

func mvTableReader(table string) *csv.Reader {
	r := csv.NewReader(strings.NewReader(table))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r
}

func TestVectorsForGroupsDumperRowsByFrameNumber(t *testing.T) {
	table := "framenum,source,blockw,blockh,srcx,srcy,dstx,dsty,flags\n" +
		"2,-1,16,16, 8, 8,12,10,0x0\n" +
		"2,-1,16,16,24, 8,28,12,0x0\n" +
		"4,-1,16,16, 8, 8, 9, 9,0x0\n"

	stream := ffmpegToolsStream{mvs: mvTableReader(table)}

	require.Empty(t, stream.vectorsFor(1))
	require.Equal(t, []motion.Vector{
		{SrcX: 8, SrcY: 8, DstX: 12, DstY: 10},
		{SrcX: 24, SrcY: 8, DstX: 28, DstY: 12},
	}, stream.vectorsFor(2))
	require.Empty(t, stream.vectorsFor(3))
	require.Equal(t, []motion.Vector{
		{SrcX: 8, SrcY: 8, DstX: 9, DstY: 9},
	}, stream.vectorsFor(4))
	require.Empty(t, stream.vectorsFor(5))
}

func TestVectorsForDiscardsRowsBehindTheFrameCursor(t *testing.T) {
	is := is.New(t)

	table := "1,-1,16,16,8,8,12,10,0x0\n" +
		"3,-1,16,16,8,8,16,16,0x0\n"

	stream := ffmpegToolsStream{mvs: mvTableReader(table)}
	vectors := stream.vectorsFor(3)
	is.Equal(len(vectors), 1)
	is.Equal(vectors[0], motion.Vector{SrcX: 8, SrcY: 8, DstX: 16, DstY: 16})
}

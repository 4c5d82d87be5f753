package region

import (
	"bufio"
	"io"
	"strings"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/epierr"
)

// ReadPairs parses a fastq-like paired-track stream into RegionPairs: a
// '@name[$$$aux]' header starts a record, lines up to a '+' line are
// base characters, and each line after '+' is one more binary track
// column-string. Records alternate S1, S2 of successive pairs; a blank
// line or EOF ends the stream.
//
// The scanning style (line-at-a-time with an explicit flush-on-boundary
// state machine) follows a ParseFASTA/ParseFASTQ-style reader.
func ReadPairs(r io.Reader) ([]*RegionPair, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var regions []*Region
	var cur *builder
	lineNum := 0

	flush := func() error {
		if cur == nil {
			return nil
		}
		reg, err := cur.build()
		if err != nil {
			return err
		}
		regions = append(regions, reg)
		cur = nil
		return nil
	}

	seenHeader := false
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if len(strings.TrimSpace(line)) == 0 {
			break
		}

		if strings.HasPrefix(line, "@") {
			seenHeader = true
			if err := flush(); err != nil {
				return nil, err
			}
			name, aux := splitHeader(line[1:])
			cur = &builder{name: name, aux: aux, lineNum: lineNum}
			continue
		}

		if !seenHeader {
			return nil, &epierr.MalformedInput{Line: lineNum, Reason: "input does not start with a '@' header"}
		}
		if cur == nil {
			return nil, &epierr.MalformedInput{Line: lineNum, Reason: "data line outside of any record"}
		}

		if line == "+" {
			if cur.inTracks {
				return nil, &epierr.MalformedInput{Line: lineNum, Reason: "duplicate '+' line"}
			}
			cur.inTracks = true
			continue
		}

		if !cur.inTracks {
			cur.bases.WriteString(strings.ToUpper(line))
		} else {
			cur.tracks = append(cur.tracks, []byte(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(regions)%2 != 0 {
		last := regions[len(regions)-1]
		return nil, &epierr.UnpairedInput{Name: last.Name}
	}

	pairs := make([]*RegionPair, 0, len(regions)/2)
	for i := 0; i+1 < len(regions); i += 2 {
		s1, s2 := regions[i], regions[i+1]
		if s1.Name != s2.Name {
			return nil, &epierr.MalformedInput{Reason: "paired records " + s1.Name + " and " + s2.Name + " do not share a name"}
		}
		if s1.K() != s2.K() {
			return nil, &epierr.InconsistentTrackArity{Name: s1.Name, Expected: s1.K(), Actual: s2.K()}
		}
		pairs = append(pairs, &RegionPair{Name: s1.Name, S1: s1, S2: s2})
	}
	return pairs, nil
}

// splitHeader separates a header's region name from its opaque
// "$$$n1$n2..." auxiliary suffix, if present.
func splitHeader(header string) (name, aux string) {
	if i := strings.Index(header, "$$$"); i >= 0 {
		return header[:i], header[i:]
	}
	return header, ""
}

// builder accumulates one record's lines before they are folded into
// an immutable Region.
type builder struct {
	name     string
	aux      string
	lineNum  int
	bases    strings.Builder
	inTracks bool
	tracks   [][]byte
}

func (b *builder) build() (*Region, error) {
	reg := &Region{
		Name:   b.name,
		Aux:    b.aux,
		Bases:  b.bases.String(),
		Tracks: b.tracks,
	}
	if err := reg.validate(); err != nil {
		if tle, ok := err.(*trackLengthError); ok {
			return nil, &epierr.TrackLengthMismatch{Name: tle.Name, Track: tle.Track, Expected: tle.Expected, Actual: tle.Actual}
		}
		return nil, &epierr.MalformedInput{Line: b.lineNum, Reason: err.Error()}
	}
	return reg, nil
}

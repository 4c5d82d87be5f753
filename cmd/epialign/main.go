// Command epialign aligns paired query/target regions under the TKF
// DNA+epigenome evolutionary model and reports, per pair, the
// semi-global alignment score, endpoint, start-point, and optionally
// the score vector and traceback.
//
// Flag layout and "validate, then report and exit" control flow follow
// kortschak-loopy/cmd/catch/catch.go's flat package-level flags: this
// command has one operation, not several, so it takes no subcommands.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/align"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/internal/epierr"
	"github.com/Zhong-Lab-UCSD/EpiAlignment-WebApp/pkg/epialign"
)

var (
	paramsPath  = flag.String("e", "", "evolutionary parameter file (required)")
	workers     = flag.Int("p", 1, "number of worker goroutines")
	summaryPath = flag.String("o", "", "summary output file (required)")
	scorePath   = flag.String("O", "", "score vector output file (enables score-vector mode)")
	tracePath   = flag.String("r", "", "traceback output file (enables traceback mode)")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	code := run()
	os.Exit(code)
}

func run() int {
	if flag.NArg() < 1 {
		log.Print((&epierr.NoInput{}).Error())
		return (&epierr.NoInput{}).ExitCode()
	}
	inputPath := flag.Arg(0)

	if *paramsPath == "" || *summaryPath == "" {
		log.Print("both -e and -o are required")
		return (&epierr.NoInput{}).ExitCode()
	}

	inputFile, err := os.Open(inputPath)
	if err != nil {
		return reportOpenError(inputPath, err)
	}
	defer inputFile.Close()

	paramsFile, err := os.Open(*paramsPath)
	if err != nil {
		return reportOpenError(*paramsPath, err)
	}
	defer paramsFile.Close()

	log.Printf("reading parameters from %s", *paramsPath)
	p, err := epialign.LoadParams(paramsFile)
	if err != nil {
		return reportAlignmentError(err)
	}

	log.Printf("reading region pairs from %s", inputPath)
	pairs, err := epialign.ReadPairs(inputFile)
	if err != nil {
		return reportAlignmentError(err)
	}
	log.Printf("read %d region pairs", len(pairs))

	m := epialign.BuildModel(p)

	opts := align.Options{
		ScoreVector: *scorePath != "",
		Traceback:   *tracePath != "",
	}

	log.Printf("dispatching to %d workers", *workers)
	if err := epialign.AlignAll(m, p, pairs, *workers, opts); err != nil {
		return reportAlignmentError(err)
	}

	summaryFile, err := os.Create(*summaryPath)
	if err != nil {
		return reportOpenError(*summaryPath, err)
	}
	defer summaryFile.Close()
	if err := epialign.WriteSummary(summaryFile, pairs); err != nil {
		log.Printf("writing summary: %v", err)
		return 1
	}
	log.Printf("wrote summary to %s", *summaryPath)

	if opts.ScoreVector {
		scoreFile, err := os.Create(*scorePath)
		if err != nil {
			return reportOpenError(*scorePath, err)
		}
		defer scoreFile.Close()
		if err := epialign.WriteScoreVectors(scoreFile, pairs); err != nil {
			log.Printf("writing score vectors: %v", err)
			return 1
		}
		log.Printf("wrote score vectors to %s", *scorePath)
	}

	if opts.Traceback {
		traceFile, err := os.Create(*tracePath)
		if err != nil {
			return reportOpenError(*tracePath, err)
		}
		defer traceFile.Close()
		if err := epialign.WriteTraceback(traceFile, pairs); err != nil {
			log.Printf("writing traceback: %v", err)
			return 1
		}
		log.Printf("wrote traceback to %s", *tracePath)
	}

	return 0
}

func reportOpenError(path string, err error) int {
	bft := &epierr.BadFileType{Path: path, Reason: err.Error()}
	log.Print(bft.Error())
	return bft.ExitCode()
}

func reportAlignmentError(err error) int {
	var ae epierr.AlignmentError
	if errors.As(err, &ae) {
		log.Print(ae.Error())
		return ae.ExitCode()
	}
	log.Print(err)
	return 1
}

// Command gradecli runs the grading pipeline once from the command line:
// parse an answer key, grade one submission or a directory of them, and
// print student reports and/or a gradebook CSV.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AhmedHAlshaer/mathgrader/internal/answerkey"
	"github.com/AhmedHAlshaer/mathgrader/internal/config"
	"github.com/AhmedHAlshaer/mathgrader/internal/docio"
	"github.com/AhmedHAlshaer/mathgrader/internal/grading"
	"github.com/AhmedHAlshaer/mathgrader/internal/submission"
)

func main() {
	var (
		keyPath   = flag.String("key", "", "path to the answer-key document (required)")
		subPath   = flag.String("submission", "", "path to a single submission document")
		subsDir   = flag.String("dir", "", "directory of submission documents")
		studentID = flag.String("student", "", "student id override for -submission")
		csvOut    = flag.Bool("csv", false, "print gradebook CSV instead of student reports")
		noCache   = flag.Bool("no-cache", false, "bypass the answer-key parse cache")
	)
	flag.Parse()

	if *keyPath == "" || (*subPath == "" && *subsDir == "") {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	reader := docio.NewFSReader()

	opts := []answerkey.ParserOption{answerkey.WithCourse(cfg.Course)}
	if !*noCache {
		cache, err := answerkey.NewCache(cfg.KeyCacheDir)
		if err != nil {
			log.Fatalf("key cache: %v", err)
		}
		opts = append(opts, answerkey.WithCache(cache))
	}
	keyParser := answerkey.NewParser(reader, opts...)

	key, err := keyParser.Parse(*keyPath)
	if err != nil {
		log.Fatalf("parsing answer key: %v", err)
	}
	log.Printf("parsed %s: %d questions, %g total points", key.AssignmentID, len(key.Questions), key.TotalPoints)

	subParser := submission.NewParser(reader)
	var subs []submission.Submission
	if *subPath != "" {
		sub, err := subParser.Parse(*subPath, key, *studentID)
		if err != nil {
			log.Fatalf("parsing submission: %v", err)
		}
		subs = append(subs, sub)
	} else {
		subs, err = subParser.ParseBatch(*subsDir, key)
		if err != nil {
			log.Fatalf("parsing submissions: %v", err)
		}
	}

	engine := grading.NewEngine(
		grading.WithComparator(grading.NewComparator(grading.WithTolerance(cfg.NumericTolerance))),
		grading.WithExtractionThreshold(cfg.ExtractionThreshold),
		grading.WithComparisonThreshold(cfg.ComparisonThreshold),
	)
	results := engine.GradeBatch(subs, key)

	if *csvOut {
		cw := csv.NewWriter(os.Stdout)
		_ = cw.Write([]string{"student_id", "assignment_id", "score", "possible", "percentage", "letter_grade", "needs_review"})
		for i := range results {
			row := results[i].GradebookRow()
			_ = cw.Write([]string{
				row.StudentID,
				row.AssignmentID,
				fmt.Sprintf("%g", row.Score),
				fmt.Sprintf("%g", row.Possible),
				row.Percentage,
				row.LetterGrade,
				row.NeedsReview,
			})
		}
		cw.Flush()
		return
	}

	for i := range results {
		fmt.Println(grading.StudentReport(&results[i]))
	}
}

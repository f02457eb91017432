package main

import (
	"fmt"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"io/ioutil"
	"os"
	"pdfdigest/internal/keywords"
	"pdfdigest/internal/pdf"
	"pdfdigest/internal/text"
	"strings"
	"text/tabwriter"
)

var (
	app  = kingpin.New("keywords", "consume a pdf or text file and show keyword candidates next to the filtered keywords")
	args = struct {
		input     *string
		fileType  *string
		generator *string
		count     *int
		maxLength *int
		all       *bool
	}{
		input:     app.Flag("in", "input file to process").Short('i').Required().ExistingFile(),
		fileType:  app.Flag("type", "input file type (pdf, txt)").Short('x').Default("pdf").Enum("pdf", "txt"),
		generator: app.Flag("generator", "rake, textrank, prose or frequency").Short('g').Default(keywords.GeneratorRAKE).String(),
		count:     app.Flag("count", "number of keywords to keep").Short('n').Default("10").Int(),
		maxLength: app.Flag("max-length", "longest accepted keyword").Default(fmt.Sprint(keywords.DefaultMaxLength)).Int(),
		all:       app.Flag("all", "list every candidate, not only the over-fetched ones").Short('a').Bool(),
	}
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	logrus.Infof("input: %s", *args.input)

	var doc string
	if *args.fileType == "pdf" {
		s, err := pdf.ExtractText(*args.input)
		if err != nil {
			logrus.Fatal(err)
		}
		doc = s
	} else {
		b, err := ioutil.ReadFile(*args.input)
		if err != nil {
			logrus.Fatal(err)
		}
		doc = string(b)
	}

	gen, err := keywords.NewGenerator(*args.generator)
	if err != nil {
		logrus.Fatal(err)
	}
	filter := keywords.NewFilter(keywords.WithLengthBounds(keywords.DefaultMinLength, *args.maxLength))

	topN := *args.count * 3
	if *args.all {
		topN = 0
	}
	candidates, err := gen.Candidates(text.StripNoise(doc, keywords.DefaultSites), topN)
	if err != nil {
		logrus.Fatal(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	_, _ = fmt.Fprintf(w, "Candidate\tScore\tValid\n")
	for _, c := range candidates {
		_, _ = fmt.Fprintf(w, "%s\t%.4f\t%v\n", c.Text, c.Score, filter.IsValid(c.Text))
	}
	_ = w.Flush()

	kept := filter.FilterAndDedupe(candidates, *args.count)
	fmt.Printf("\nKeywords (%d of %d candidates): %s\n", len(kept), len(candidates), strings.Join(kept, ", "))
}

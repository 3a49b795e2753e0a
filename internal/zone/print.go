package zone

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize/english"
)

func PrintGrouped(w io.Writer, view GroupedView) {
	fmt.Fprintf(w, "Grouped domains (%s)\n", english.Plural(len(view.Paired), "item", ""))
	for _, p := range view.Paired {
		fmt.Fprintln(w, strings.ToUpper(p.Key))
		for _, e := range []Entry{p.Base, p.API} {
			fmt.Fprintf(w, "   %s\n", e.Label())
			printRecords(w, e)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Other domains (%s)\n", english.Plural(len(view.Other), "item", ""))
	for _, e := range view.Other {
		fmt.Fprintln(w, e.Label())
		printRecords(w, e)
		fmt.Fprintln(w)
	}
}

func printRecords(w io.Writer, e Entry) {
	for _, rec := range e.Records {
		fmt.Fprintf(w, "      %s => %s\n", rec.Type, rec.Target)
	}
}

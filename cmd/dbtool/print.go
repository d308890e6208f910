package main

import (
	"fmt"
	"hotspot-finder-service/internal/domain"
	"io"
	"strings"
	"text/tabwriter"
)

func printRanked(out io.Writer, res domain.RankResult) {
	fmt.Fprintf(out, "outcome=%s candidates=%d shown=%d\n", res.Outcome, res.Candidates, len(res.Hotspots))
	if len(res.Hotspots) == 0 {
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tLOC ID\tNAME\tDIST KM\tSPECIES")
	for i, r := range res.Hotspots {
		dist := "?"
		if r.DistanceKnown() {
			dist = fmt.Sprintf("%.2f", r.DistanceKm)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1, r.Hotspot.ID, r.Hotspot.DisplayName(), dist, strings.Join(r.Species, ", "))
	}
	_ = tw.Flush()
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/verte-zerg/keyseq/internal/model"
)

const historyTimeLayout = "2006-01-02 15:04"

func writeSessions(w io.Writer, sessions []model.SessionSummary) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "SESSION\tSTARTED\tPLACED\tSAVES\tORDERED\tRANKING"); err != nil {
		return err
	}
	for _, s := range sessions {
		_, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d/%d\t%s\n",
			s.ID,
			s.StartedAt.Local().Format(historyTimeLayout),
			s.Placed,
			s.Saves,
			s.LastOrdered,
			s.Universe,
			s.RankingPath,
		)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeEvents(w io.Writer, events []model.PlacementEvent) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No events found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "TIME\tACTION\tSEQ\tPOSITION\tORDERED"); err != nil {
		return err
	}
	for _, e := range events {
		seq := "-"
		if !e.Seq.IsEmpty() {
			seq = e.Seq.String()
		}
		_, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			e.At.Local().Format("15:04:05"),
			e.Action,
			seq,
			e.Position,
			e.Ordered,
		)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SgtClickClack/DojoPool-sub003/internal/config"
	"github.com/SgtClickClack/DojoPool-sub003/internal/dojo"
	"github.com/SgtClickClack/DojoPool-sub003/internal/tui"
)

// resolveMode maps the --output flag onto a rendering mode. "json" never
// reaches here; callers write it straight out without mode detection.
func resolveMode(requested string) tui.OutputMode {
	switch requested {
	case "table":
		return tui.OutputPlain
	case "styled":
		return tui.OutputStyled
	case "tui":
		return tui.OutputInteractive
	default:
		return tui.DetectOutputMode("")
	}
}

// runProgram runs a screen model full-screen with the configured options.
var runProgram = func(model tea.Model) error {
	ui := config.Current().UI
	opts := []tea.ProgramOption{}
	if ui.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if ui.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(model, opts...).Run()
	return err
}

// writeJSON renders v as indented JSON, the pipe-friendly output.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTournamentsTable(w io.Writer, ts []dojo.Tournament) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVENUE\tFORMAT\tSTATUS\tPLAYERS\tPRIZE\tSTARTS")
	for _, t := range ts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\t%d DC\t%s\n",
			t.Name, t.VenueName, t.Format.Label(), t.Status.Label(),
			t.Participants, t.MaxParticipants, t.PrizePool,
			t.StartsAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func renderClansTable(w io.Writer, cs []dojo.Clan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tNAME\tRATING\tW-L\tMEMBERS\tDOJOS")
	for _, c := range cs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d-%d\t%d/%d\t%d\n",
			c.Tag, c.Name, c.Rating, c.Wins, c.Losses,
			c.MemberCount, c.MaxMembers, c.ControlledDojos)
	}
	return tw.Flush()
}

func renderVenuesTable(w io.Writer, vs []dojo.Venue) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tADDRESS\tTABLES\tRATE\tRATING\tHELD BY")
	for _, v := range vs {
		owner := v.OwnerClan
		if owner == "" {
			owner = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%d DC/hr\t%.1f\t%s\n",
			v.Name, v.Address, v.TablesFree, v.Tables, v.HourlyRate, v.Rating, owner)
	}
	return tw.Flush()
}

func renderChatTranscript(w io.Writer, msgs []dojo.ChatMessage) {
	for _, m := range msgs {
		author := m.Author
		if m.System {
			author = "*"
		}
		fmt.Fprintf(w, "%s %-18s %s\n", m.SentAt.Format("15:04"), author, m.Body)
	}
}

// renderSnapshot prints the non-interactive dashboard overview.
func renderSnapshot(w io.Writer, snap dojo.Snapshot) {
	var open, live int
	for _, t := range snap.Tournaments {
		switch t.Status {
		case dojo.StatusRegistration:
			open++
		case dojo.StatusInProgress:
			live++
		}
	}
	var free int
	for _, v := range snap.Venues {
		free += v.TablesFree
	}

	fmt.Fprintf(w, "Gateway:     %s v%s (%s, %dms)\n",
		snap.Info.Name, snap.Info.APIVersion, snap.Health.State, snap.Health.Latency.Milliseconds())
	fmt.Fprintf(w, "Tournaments: %d (%d open, %d live)\n", len(snap.Tournaments), open, live)
	fmt.Fprintf(w, "Clans:       %d\n", len(snap.Clans))
	fmt.Fprintf(w, "Venues:      %d (%d tables free)\n", len(snap.Venues), free)
	fmt.Fprintf(w, "Chat:        %d recent messages\n", len(snap.Chat))
}

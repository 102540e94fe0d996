package services

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"investor-lookup/models"
)

// Printer renders lookup results for a terminal.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the lookup outcome followed by the platform snapshot. An empty
// query prints only the snapshot.
func (p *Printer) Print(res models.LookupResult, snap models.PlatformSnapshot) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(p.w, "\n\033[1;36m%s\033[0m\n", sep)
	fmt.Fprintf(p.w, "\033[1;36m  INVESTOR LOOKUP & DEAL SUMMARY\033[0m\n")
	fmt.Fprintf(p.w, "\033[1;36m%s\033[0m\n\n", sep)

	switch {
	case res.Empty:
		// nothing asked, nothing to say
	case res.NotFound:
		fmt.Fprintf(p.w, "  \033[33mNo investor found. Please check the email or ID and try again.\033[0m\n\n")
	default:
		// Profile
		fmt.Fprintf(p.w, "\033[1;33m  Investor Profile\033[0m\n")
		fmt.Fprintf(p.w, "  %s\n", thin)
		width := 0
		for _, c := range res.Investor.Record.Columns {
			if n := utf8.RuneCountInString(c); n > width {
				width = n
			}
		}
		if width > 30 {
			width = 30
		}
		for i, c := range res.Investor.Record.Columns {
			v := res.Investor.Record.Get(i)
			if v == "" {
				continue
			}
			fmt.Fprintf(p.w, "  %-*s : %s\n", width, truncate(c, width), v)
		}
		fmt.Fprintln(p.w)

		// Deal Summary
		fmt.Fprintf(p.w, "\033[1;33m  Deal Summary\033[0m\n")
		fmt.Fprintf(p.w, "  %s\n", thin)
		fmt.Fprintf(p.w, "  Total Deals          : \033[1m%d\033[0m\n", res.Deals.Count)
		fmt.Fprintf(p.w, "  Total Invested (SGD) : \033[1;32m%s\033[0m\n", FormatSGD(res.Deals.TotalInvested))
		fmt.Fprintln(p.w)
	}

	// Platform Snapshot
	fmt.Fprintf(p.w, "\033[1;33m  Platform Snapshot\033[0m\n")
	fmt.Fprintf(p.w, "  %s\n", thin)
	fmt.Fprintf(p.w, "  Total Projects          : \033[1m%d\033[0m\n", snap.ProjectCount)
	if snap.CrowdfundedSGD != nil {
		fmt.Fprintf(p.w, "  Total Crowdfunded (SGD) : \033[1;32m%s\033[0m\n", FormatSGD(*snap.CrowdfundedSGD))
	}
	if snap.CrowdfundedIDR != nil {
		fmt.Fprintf(p.w, "  Total Crowdfunded (IDR) : \033[1;32m%s\033[0m\n", FormatIDR(*snap.CrowdfundedIDR))
	}

	fmt.Fprintf(p.w, "\n\033[1;36m%s\033[0m\n\n", sep)
}

// truncate shortens s to max runes, ending in "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// Package utils holds the shared types, constants and helpers of shootdesk, plus the colored
// console rendering used by the CLI. Diagnostics go through logrus; the functions below only
// render user-facing summaries.
package utils

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

var colorGreen = color.New(color.FgGreen).Add(color.Bold).SprintFunc()
var colorYellow = color.New(color.FgYellow).Add(color.Bold).SprintFunc()
var colorBlue = color.New(color.FgBlue).Add(color.Bold).SprintFunc()
var colorCyan = color.New(color.FgCyan).SprintFunc()
var colorMagenta = color.New(color.FgMagenta).Add(color.Bold).SprintFunc()

// Success prints a success line
func Success(w io.Writer, success interface{}) {
	fmt.Fprintf(w, "%s %s %s\n", time.Now().Format("2006/01/02 15:04:05"), colorGreen(`[SUCCESS]`), colorCyan(success))
}

// Warning prints a warning line
func Warning(w io.Writer, warning interface{}) {
	fmt.Fprintf(w, "%s %s %s\n", time.Now().Format("2006/01/02 15:04:05"), colorYellow(`[WARNING]`), colorYellow(warning))
}

// Pretty disassembles variables and displays their structs and values
func Pretty(w io.Writer, variable ...interface{}) {
	cfg := spew.ConfigState{Indent: "    ", DisablePointerAddresses: true, DisableCapacities: true}
	fmt.Fprintf(w, "%s", colorYellow("----------------------------------\n"))
	for _, each := range variable {
		cfg.Fdump(w, each)
	}
	fmt.Fprintf(w, "%s", colorYellow("----------------------------------\n"))
}

/**************************************************************************************************
** PrintShoots renders the library: the totals line, then one line per shoot with its position,
** name, file count and identifier.
**
** @param w - Destination writer
** @param shoots - Shoots in creation order
** @param stats - Library totals
**************************************************************************************************/
func PrintShoots(w io.Writer, shoots []TShoot, stats TLibraryStats) {
	fmt.Fprintf(w, "%s %d photo(s) au total, %s\n", colorMagenta(`[LIBRARY]`), stats.Files, stats.SizeLabel)
	for i, shoot := range shoots {
		label := fmt.Sprintf("%d photos importées", len(shoot.Files))
		if len(shoot.Files) == 0 && len(shoot.Results) > 0 {
			label = fmt.Sprintf("%d résultats", len(shoot.Results))
		}
		fmt.Fprintf(w, "  %s %s (%s) %s\n", colorBlue(fmt.Sprintf("#%d", i+1)), shoot.Name, label, colorCyan(shoot.ID))
	}
}

/**************************************************************************************************
** PrintHistory renders past submissions, most recent first: mode, tags, quoted text query and
** at most three image names followed by the count of the remaining ones.
**
** @param w - Destination writer
** @param entries - History entries, most recent first
**************************************************************************************************/
func PrintHistory(w io.Writer, entries []THistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Aucune recherche pour l’instant.")
		return
	}
	for _, entry := range entries {
		line := colorBlue(string(entry.Mode))
		if len(entry.Tags) > 0 {
			line += " " + colorCyan(strings.Join(entry.Tags, ", "))
		}
		if entry.TextQuery != "" {
			line += fmt.Sprintf(" “%s”", entry.TextQuery)
		}
		if n := len(entry.BaseImages); n > 0 {
			names := make([]string, 0, 3)
			for _, img := range entry.BaseImages[:min(n, 3)] {
				names = append(names, img.DisplayName)
			}
			line += " [" + strings.Join(names, ", ")
			if n > 3 {
				line += fmt.Sprintf(" +%d", n-3)
			}
			line += "]"
		}
		fmt.Fprintln(w, line)
	}
}

package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitfleet/infrastructure/workspace"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"

	maxPathWidth = 60
	maxURLWidth  = 70
)

type repositoryRow struct {
	Path     string `json:"path"             yaml:"path"`
	URL      string `json:"url"              yaml:"url"`
	Branch   string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Forge    string `json:"forge,omitempty"  yaml:"forge,omitempty"`
	Protocol string `json:"protocol"         yaml:"protocol"`
	Cloned   bool   `json:"cloned"           yaml:"cloned"`
}

func toRows(statuses []workspace.Status) []repositoryRow {
	rows := make([]repositoryRow, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, repositoryRow{
			Path:     s.Repository.DestinationPath,
			URL:      s.Repository.CloneURL,
			Branch:   s.Repository.DefaultBranch,
			Forge:    s.Forge,
			Protocol: s.Protocol,
			Cloned:   s.Cloned,
		})
	}
	return rows
}

func render(w io.Writer, format string, statuses []workspace.Status) error {
	rows := toRows(statuses)
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(rows)
	case formatTable, "":
		printTable(w, rows)
		return nil
	default:
		return fmt.Errorf("unknown output format %q, use %s, %s or %s", format, formatTable, formatJSON, formatYAML)
	}
}

func printTable(w io.Writer, rows []repositoryRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No repositories found.")
		return
	}

	pathW := len("Path")
	urlW := len("URL")
	branchW := len("Branch")
	forgeW := len("Forge")
	protoW := len("Protocol")
	for _, r := range rows {
		pathW = max(pathW, len(r.Path))
		urlW = max(urlW, len(r.URL))
		branchW = max(branchW, len(r.Branch))
		forgeW = max(forgeW, len(r.Forge))
		protoW = max(protoW, len(r.Protocol))
	}
	pathW = min(pathW, maxPathWidth)
	urlW = min(urlW, maxURLWidth)

	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %-*s  %-*s  %s\n",
		pathW, "Path",
		urlW, "URL",
		branchW, "Branch",
		forgeW, "Forge",
		protoW, "Protocol",
		"Cloned")
	fmt.Fprintln(w, strings.Repeat("-", pathW+urlW+branchW+forgeW+protoW+len("Cloned")+10)) //nolint:mnd // column gaps

	for _, r := range rows {
		cloned := "no"
		if r.Cloned {
			cloned = "yes"
		}
		branch := r.Branch
		if branch == "" {
			branch = "-"
		}
		forge := r.Forge
		if forge == "" {
			forge = "-"
		}
		fmt.Fprintf(w, "%-*s  %-*s  %-*s  %-*s  %-*s  %s\n",
			pathW, truncate(r.Path, pathW),
			urlW, truncate(r.URL, urlW),
			branchW, branch,
			forgeW, forge,
			protoW, r.Protocol,
			cloned)
	}
	fmt.Fprintf(w, "\n%d repositories\n", len(rows))
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 { //nolint:mnd // room for the ellipsis
		return s[:width]
	}
	return s[:width-3] + "..."
}

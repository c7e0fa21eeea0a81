package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"records_portal_backend/internal/search/transport"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func parseFormat(value string) (string, error) {
	switch strings.ToLower(value) {
	case formatTable, "":
		return formatTable, nil
	case formatJSON:
		return formatJSON, nil
	case formatYAML, "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", value)
	}
}

func renderResponse(w io.Writer, resp transport.SearchResponse, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, resp)
	case formatYAML:
		return writeYAML(w, resp)
	}

	header := color.New(color.Bold)
	header.Fprintf(w, "%d result(s) for %q", resp.TotalCount, resp.Query)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tTITLE\tSUBTITLE\tSCORE\tMATCHED")
	for _, r := range resp.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			r.Type, r.Title, r.Subtitle, r.RelevanceScore, strings.Join(r.MatchedFields, ","))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, warning := range resp.Warnings {
		color.New(color.FgYellow).Fprintf(w, "warning: %s results unavailable", warning)
		fmt.Fprintln(w)
	}
	if resp.HasMore {
		color.New(color.Faint).Fprint(w, "more results available, use --offset")
		fmt.Fprintln(w)
	}
	return nil
}

func renderCatalog(w io.Writer, catalog transport.FilterCatalogResponse, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, catalog)
	case formatYAML:
		return writeYAML(w, catalog)
	}

	sections := []struct {
		name   string
		values []string
	}{
		{"project statuses", catalog.ProjectStatuses},
		{"project stages", catalog.ProjectStages},
		{"company types", catalog.CompanyTypes},
		{"contact roles", catalog.ContactRoles},
		{"document types", catalog.DocumentTypes},
	}
	for _, s := range sections {
		color.New(color.Bold).Fprint(w, s.name)
		fmt.Fprintf(w, ": %s\n", strings.Join(s.values, ", "))
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML goes through JSON so result metadata keeps its JSON field names.
func writeYAML(w io.Writer, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

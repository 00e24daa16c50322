// Copyright (c) 2026 Mikhail Vasilenko.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Row is one processed snapshot in the run report.
type Row struct {
	Instance string `json:"instance" yaml:"instance"`
	Snapshot string `json:"snapshot" yaml:"snapshot"`
	Status   string `json:"status" yaml:"status"`
	Size     string `json:"size" yaml:"size"`
	Created  string `json:"created" yaml:"created"`
}

// Report summarizes a share or copy run.
type Report struct {
	Command  string `json:"command" yaml:"command"`
	Expected int    `json:"expected" yaml:"expected"`
	Ready    int    `json:"ready" yaml:"ready"`
	Rows     []Row  `json:"snapshots" yaml:"snapshots"`
}

// NewRow builds a Row from an RDS snapshot. Sizes are reported in IEC
// units (AllocatedStorage is in GiB); ages are humanized.
func NewRow(snap types.DBSnapshot) Row {
	row := Row{
		Instance: awsv2.ToString(snap.DBInstanceIdentifier),
		Snapshot: awsv2.ToString(snap.DBSnapshotIdentifier),
		Status:   awsv2.ToString(snap.Status),
	}

	if alloc := awsv2.ToInt32(snap.AllocatedStorage); alloc > 0 {
		row.Size = humanize.IBytes(uint64(alloc) * humanize.GiByte)
	}
	if snap.SnapshotCreateTime != nil {
		row.Created = humanize.Time(*snap.SnapshotCreateTime)
	}

	return row
}

// Spit renders the report to w in the requested format.
func Spit(w io.Writer, format string, r Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(r)
	case "text", "":
		spitText(w, r)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func spitText(w io.Writer, r Report) {
	if len(r.Rows) > 0 {
		var rows [][]string
		for _, row := range r.Rows {
			rows = append(rows, []string{row.Instance, row.Snapshot, row.Status, row.Size, row.Created})
		}

		t := table.New().
			BorderBottom(false).
			BorderTop(false).
			BorderLeft(false).
			BorderRight(false).
			Border(lipgloss.HiddenBorder()).
			Rows(rows...)

		t = t.Headers("Instance", "Snapshot", "Status", "Size", "Created").BorderHeader(false)

		fmt.Fprintln(w, t)
	}

	fmt.Fprintf(w, "%s: %d of %d expected snapshot(s) ready\n", r.Command, r.Ready, r.Expected)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/global/database"
	"facility-work-tracker/internal/metrics"
	"facility-work-tracker/internal/report"
	"facility-work-tracker/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var reportFlags struct {
	format  string
	months  int
	college string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print dashboard, performance and trend statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		db, err := database.Open(cfg)
		if err != nil {
			return err
		}
		opts := report.OptionsFrom(cfg, time.Now())
		if reportFlags.months > 0 {
			opts.TrendMonths = reportFlags.months
		}
		opts.CollegeID = reportFlags.college

		snap, err := store.NewGormStores(db).Source().Load(context.Background(), report.Parts(opts.Policy))
		if err != nil {
			return err
		}
		rep := report.Build(metrics.NewCalculator(cfg.WorkEntry.Rates), snap, opts)
		return writeReport(cmd.OutOrStdout(), rep, reportFlags.format)
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportFlags.format, "format", "f", "json", "json or yaml")
	f.IntVar(&reportFlags.months, "months", 0, "trend months (default from config)")
	f.StringVar(&reportFlags.college, "college", "", "limit performance ranking to one college id")
}

// writeReport yaml 输出先经 json 转换，字段名与 HTTP 接口一致
func writeReport(w io.Writer, rep report.Report, format string) error {
	raw, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

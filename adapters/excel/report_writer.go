package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"multicomp/domain/study"
	"multicomp/ports"
)

const (
	resultsSheet = "Results"
	auditSheet   = "Sampling Audit"
)

// ReportWriter exports a study report to an Excel workbook: one sheet of
// scenario results, one of the optional sampling audit.
type ReportWriter struct {
	path string
}

// NewReportWriter creates a writer targeting the given .xlsx path
func NewReportWriter(path string) *ReportWriter {
	return &ReportWriter{path: path}
}

var _ ports.ReportSinkPort = (*ReportWriter)(nil)

// WriteReport writes the workbook. Existing files at the path are replaced.
func (w *ReportWriter) WriteReport(ctx context.Context, report *study.StudyReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(resultsSheet)
	if err != nil {
		return fmt.Errorf("create results sheet: %w", err)
	}
	f.SetActiveSheet(index)

	header := []interface{}{
		"Scenario", "Procedure", "Groups", "Alpha", "Effective Alpha",
		"Trials", "Positives", "Empirical Rate", "Theoretical Rate", "Std Error",
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return err
	}

	for i, res := range report.Results {
		s := res.Scenario
		row := []interface{}{
			s.Name, string(s.Procedure), s.Groups, s.Alpha, s.EffectiveAlpha(),
			res.Trials, res.Positives, res.EmpiricalRate, res.TheoreticalRate, res.StdError,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return err
		}
	}

	if len(report.Audit) > 0 {
		if err := w.writeAudit(f, report.Audit); err != nil {
			return err
		}
	}

	// Metadata lives on the default sheet.
	if err := f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Study ID", report.StudyID.String()}); err != nil {
		return err
	}
	if err := f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Seed", report.Seed}); err != nil {
		return err
	}
	if err := f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Created", report.CreatedAt.Time().Format("2006-01-02 15:04:05")}); err != nil {
		return err
	}
	if err := f.SetSheetName("Sheet1", "Study"); err != nil {
		return err
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (w *ReportWriter) writeAudit(f *excelize.File, audit []study.GroupMoments) error {
	if _, err := f.NewSheet(auditSheet); err != nil {
		return err
	}

	header := []interface{}{"Group", "N", "Mean", "StdDev", "Min", "Median", "Max"}
	if err := f.SetSheetRow(auditSheet, "A1", &header); err != nil {
		return err
	}

	for i, m := range audit {
		row := []interface{}{m.Group, m.N, m.Mean, m.StdDev, m.Min, m.Median, m.Max}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(auditSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

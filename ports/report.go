package ports

import (
	"context"

	"multicomp/domain/study"
)

// ReportSinkPort persists or renders a completed study report
type ReportSinkPort interface {
	WriteReport(ctx context.Context, report *study.StudyReport) error
}

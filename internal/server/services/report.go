package services

import (
	"fmt"

	"github.com/avilov/fieldsync/internal/server/models"
)

// BuildReport aggregates per-candidate outcomes into a SyncReport. Details
// keep the order in which candidates were discovered. A run with zero
// failures succeeded even when nothing new was imported.
func BuildReport(outcomes []models.SyncOutcome) *models.SyncReport {
	report := &models.SyncReport{
		TotalDiscovered: len(outcomes),
		Details:         outcomes,
	}

	for _, o := range outcomes {
		switch o.Status {
		case models.StatusImported:
			report.Imported++
		case models.StatusAlreadyPresent:
			report.AlreadyPresent++
		case models.StatusFailed:
			report.Failed++
		}
	}

	report.Succeeded = report.Failed == 0
	report.Summary = fmt.Sprintf("%d discovered, %d already present, %d imported, %d failed",
		report.TotalDiscovered, report.AlreadyPresent, report.Imported, report.Failed)

	return report
}

package cron

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/payroll"
)

const refreshPaymentsJob = "refresh_payments"

// PayrollJobs keeps payment records in step with summaries that changed
// after the pay rate was last set.
type PayrollJobs struct {
	payrollService payroll.PayrollService
	interval       time.Duration
}

func NewPayrollJobs(payrollService payroll.PayrollService, interval time.Duration) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		interval:       interval,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(refreshPaymentsJob, j.interval, j.payrollService.RefreshPayments)
}

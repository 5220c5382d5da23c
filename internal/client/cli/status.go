package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/tourplan/internal/client/snapshot"
	"github.com/iudanet/tourplan/internal/client/sync"
	"github.com/iudanet/tourplan/internal/models"
)

// StatusReport сводка по загруженному плану
type StatusReport struct {
	Failed     map[string]string `yaml:"failed,omitempty"`
	DriveTime  string            `yaml:"drive_time"`
	Days       []DayStatus       `yaml:"days"`
	Unassigned []int64           `yaml:"unassigned_clients,omitempty"`
	Warnings   []string          `yaml:"warnings,omitempty"`
	Visits     int               `yaml:"visits"`
}

// DayStatus туры одного дня
type DayStatus struct {
	Day   string       `yaml:"day"`
	Tours []TourStatus `yaml:"tours"`
}

// TourStatus краткая информация о туре
type TourStatus struct {
	Name      string   `yaml:"name"`
	DriveTime string   `yaml:"drive_time"`
	Workers   []string `yaml:"workers"`
	ID        int64    `yaml:"id"`
	Visits    int      `yaml:"visits"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Fetch the schedule and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := rootOpts.Logger(deps.Stderr)
			svc, err := rootOpts.newService(cmd, deps, logger)
			if err != nil {
				return err
			}

			fetchReport, err := svc.Fetch(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to fetch schedule: %w", err)
			}

			report := buildStatus(svc.Working(), fetchReport)
			if rootOpts.Format == "yaml" {
				return writeYAML(deps.IO, report)
			}
			printStatus(deps, report)
			return nil
		},
	}
}

func buildStatus(working *snapshot.Snapshot, fetched *sync.FetchReport) *StatusReport {
	report := &StatusReport{
		Visits:    working.CountVisits(),
		DriveTime: working.TotalDriveTime().String(),
	}

	byDay := working.ToursByDay()
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	slices.Sort(days)

	for _, day := range days {
		ds := DayStatus{Day: day}
		for _, tour := range byDay[day] {
			ds.Tours = append(ds.Tours, tourStatus(working, tour))
		}
		report.Days = append(report.Days, ds)
	}

	for _, c := range working.UnassignedClients() {
		report.Unassigned = append(report.Unassigned, c.ID)
	}

	if fetched != nil {
		failed := make(map[string]string)
		for kind, err := range fetched.Failed {
			failed[kind.String()] = err.Error()
		}
		if fetched.BaseLocationErr != nil {
			failed["baselocation"] = fetched.BaseLocationErr.Error()
		}
		if fetched.DrivingTimesErr != nil {
			failed["drivingtimematrix"] = fetched.DrivingTimesErr.Error()
		}
		if len(failed) > 0 {
			report.Failed = failed
		}
	}

	for _, violation := range working.Verify() {
		report.Warnings = append(report.Warnings, violation.Error())
	}
	return report
}

func tourStatus(working *snapshot.Snapshot, tour *models.Tour) TourStatus {
	ts := TourStatus{ID: tour.ID, Name: tour.Name, Workers: []string{}}
	for _, w := range working.WorkersOfTour(tour) {
		ts.Workers = append(ts.Workers, w.Name)
	}

	var drive time.Duration
	for _, el := range working.ElementsOfTour(tour.ID) {
		switch el.Type {
		case models.TourElementVisit:
			ts.Visits++
		case models.TourElementDrive:
			drive += el.Duration()
		}
	}
	ts.DriveTime = drive.String()
	return ts
}

func printStatus(deps Deps, report *StatusReport) {
	deps.IO.Println("=== Schedule ===")
	if len(report.Days) == 0 {
		deps.IO.Println("No days planned")
	}
	for _, day := range report.Days {
		deps.IO.Println()
		deps.IO.Printf("%s (%d tours)\n", day.Day, len(day.Tours))
		for _, tour := range day.Tours {
			workers := "-"
			if len(tour.Workers) > 0 {
				workers = strings.Join(tour.Workers, ", ")
			}
			deps.IO.Printf("  #%d %s  workers: %s  visits: %d  drive: %s\n",
				tour.ID, tour.Name, workers, tour.Visits, tour.DriveTime)
		}
	}

	deps.IO.Println()
	deps.IO.Printf("Visits: %d\n", report.Visits)
	deps.IO.Printf("Drive time: %s\n", report.DriveTime)

	if len(report.Unassigned) > 0 {
		ids := make([]string, len(report.Unassigned))
		for i, id := range report.Unassigned {
			ids[i] = fmt.Sprint(id)
		}
		deps.IO.Printf("Unassigned clients: %s\n", strings.Join(ids, ", "))
	}

	if len(report.Failed) > 0 {
		deps.IO.Println()
		deps.IO.Println("⚠️  Failed to fetch:")
		names := make([]string, 0, len(report.Failed))
		for name := range report.Failed {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			deps.IO.Printf("  %s: %s\n", name, report.Failed[name])
		}
	}

	if len(report.Warnings) > 0 {
		deps.IO.Println()
		deps.IO.Println("⚠️  Warnings:")
		for _, w := range report.Warnings {
			deps.IO.Printf("  %s\n", w)
		}
	}
}

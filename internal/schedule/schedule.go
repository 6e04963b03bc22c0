// Package schedule provides the static pesticide calendar and the next-task
// recommendation.
package schedule

import (
	"strings"
	"time"
)

// Task is one pesticide application in a crop's calendar.
type Task struct {
	DaysAfterSowing int    `json:"days_after_sowing"`
	Pesticide       string `json:"pesticide"`
	Note            string `json:"note"`
}

// Calendars are listed in application order, ascending days after sowing.
var schedules = map[string][]Task{
	"Wheat": {
		{DaysAfterSowing: 10, Pesticide: "Herbicide A", Note: "Weed control"},
		{DaysAfterSowing: 25, Pesticide: "Fungicide B", Note: "Rust prevention"},
		{DaysAfterSowing: 40, Pesticide: "Insecticide C", Note: "Aphid control"},
	},
	"Rice": {
		{DaysAfterSowing: 15, Pesticide: "Herbicide R1", Note: "Weed control"},
		{DaysAfterSowing: 30, Pesticide: "Fungicide R2", Note: "Blast prevention"},
	},
}

// ForCrop returns the calendar for crop in application order. Unknown or
// blank crops fall back to Wheat's calendar.
func ForCrop(crop string) []Task {
	crop = strings.TrimSpace(crop)
	if crop == "" {
		crop = "Wheat"
	}
	if s, ok := schedules[crop]; ok {
		return s
	}
	return schedules["Wheat"]
}

// Recommendation is the next due task, or just a message once the calendar
// has run out.
type Recommendation struct {
	DueDate         string `json:"due_date,omitempty"`
	DaysAfterSowing int    `json:"days_after_sowing,omitempty"`
	Pesticide       string `json:"pesticide,omitempty"`
	Note            string `json:"note,omitempty"`
	Message         string `json:"message,omitempty"`
}

// NoUpcomingTasks is the sentinel message returned when every task in the
// calendar is already past due.
const NoUpcomingTasks = "No upcoming tasks in schedule"

// NextRecommendation returns the first task whose due date falls on or
// after fromDate. Sowing is assumed to have happened exactly 7 days before
// fromDate; the system has no real sowing-date input.
func NextRecommendation(crop string, fromDate time.Time) Recommendation {
	return next(ForCrop(crop), fromDate)
}

func next(tasks []Task, fromDate time.Time) Recommendation {
	sowing := fromDate.AddDate(0, 0, -7)
	for _, task := range tasks {
		due := sowing.AddDate(0, 0, task.DaysAfterSowing)
		if !due.Before(fromDate) {
			return Recommendation{
				DueDate:         due.Format("2006-01-02"),
				DaysAfterSowing: task.DaysAfterSowing,
				Pesticide:       task.Pesticide,
				Note:            task.Note,
			}
		}
	}
	return Recommendation{Message: NoUpcomingTasks}
}

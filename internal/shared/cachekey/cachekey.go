package cachekey

import "fmt"

const TeamList = "teams:all"

// TeamCalendar is a redis hash holding one field per requested date window,
// so deleting the key drops every cached window of the team at once.
func TeamCalendar(teamID string) string {
	return fmt.Sprintf("vacations:calendar:%s", teamID)
}

func TeamCalendarField(from, to string) string {
	if from == "" {
		from = "-"
	}
	if to == "" {
		to = "-"
	}
	return from + ":" + to
}

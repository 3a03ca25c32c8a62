// Package catalog holds the fixed audit checklists and the zones assigned to
// each auditor. Every lookup returns a fresh copy; unknown keys yield an empty
// list rather than an error.
package catalog

import (
	"sort"
	"strings"
)

var answerOptions = []string{"Yes", "No", "N/A"}

// assignments maps a lowercased auditor name to their food production zones.
// "Hot Kitchen" has no matching checklist key and therefore no questions.
var assignments = map[string][]string{
	"callistus kyire": {"Old Lay-up", "Tray Set-up", "Bakery", "Cooked Food Fridge", "Dish Wash-Up Bay"},
	"iddriss nyande":  {"Entrance", "Receiving Bay", "Loading Bay", "Old Lay-up Holding Room"},
	"lovia":           {"Dry Goods Store", "Hot Kitchen", "Dishing Room", "Butchery", "Pots and Pans Washing Bay"},
	"felix":           {"Blast Freezers", "Deep Freezer", "Cold Room"},
}

func Locations() []string {
	return clone(locations)
}

// AnswerOptions lists the selectable answers, first one preselected.
func AnswerOptions() []string {
	return clone(answerOptions)
}

// QuestionsForLocation returns the checklist for Exterior or Interior. Any
// other name is looked up as a food production zone.
func QuestionsForLocation(location string) []string {
	if qs, ok := locationQuestions[location]; ok {
		return clone(qs)
	}
	return QuestionsForZone(location)
}

func QuestionsForZone(zone string) []string {
	return clone(zoneQuestions[zone])
}

// AssignedZones returns the zones assigned to auditor, matched case-insensitively.
func AssignedZones(auditor string) []string {
	return clone(assignments[strings.ToLower(auditor)])
}

// Auditors returns the lowercased names of every auditor with an assignment,
// sorted.
func Auditors() []string {
	names := make([]string, 0, len(assignments))
	for name := range assignments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

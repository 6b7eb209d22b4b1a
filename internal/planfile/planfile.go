// Package planfile reads training plan definitions from YAML files and
// imports them through the storage layer.
package planfile

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is one plan definition document.
type File struct {
	Name          string `yaml:"name"`
	DurationWeeks int    `yaml:"duration_weeks"`
	Days          []Day  `yaml:"days"`
}

// Day is one recurring training day within a plan definition.
type Day struct {
	Name      string         `yaml:"name"`
	Weekday   Weekday        `yaml:"weekday"`
	Exercises []ExerciseSpec `yaml:"exercises"`
}

// ExerciseSpec is the progression seed for one exercise. WeightIncrement is
// only consulted when the exercise does not exist in the library yet.
type ExerciseSpec struct {
	Name            string  `yaml:"name"`
	Sets            int     `yaml:"sets"`
	Reps            int     `yaml:"reps"`
	Weight          float64 `yaml:"weight"`
	WeightIncrement float64 `yaml:"weight_increment"`
	MinReps         int     `yaml:"min_reps"`
	MaxReps         int     `yaml:"max_reps"`
	RestSeconds     int     `yaml:"rest_seconds"`
}

// Weekday is a day of the week, 0 = Sunday .. 6 = Saturday. YAML accepts
// either the number or an English day name.
type Weekday int

var weekdayNames = map[string]int{
	"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3,
	"thursday": 4, "friday": 5, "saturday": 6,
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *Weekday) UnmarshalYAML(value *yaml.Node) error {
	var n int
	if err := value.Decode(&n); err == nil {
		*w = Weekday(n)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("weekday must be a number or day name: %w", err)
	}
	n, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return fmt.Errorf("unknown weekday %q", s)
	}
	*w = Weekday(n)
	return nil
}

// Parse decodes and validates one plan definition.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("plan name is required")
	}
	if len(f.Days) == 0 {
		return fmt.Errorf("plan %q has no days", f.Name)
	}
	for _, day := range f.Days {
		if strings.TrimSpace(day.Name) == "" {
			return fmt.Errorf("plan %q has a day without a name", f.Name)
		}
		if day.Weekday < 0 || day.Weekday > 6 {
			return fmt.Errorf("day %q: weekday %d out of range", day.Name, day.Weekday)
		}
		if len(day.Exercises) == 0 {
			return fmt.Errorf("day %q has no exercises", day.Name)
		}
		for _, ex := range day.Exercises {
			if err := ex.validate(day.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ex ExerciseSpec) validate(dayName string) error {
	if strings.TrimSpace(ex.Name) == "" {
		return fmt.Errorf("day %q has an exercise without a name", dayName)
	}
	if ex.Sets < 1 {
		return fmt.Errorf("%s: sets must be at least 1", ex.Name)
	}
	if ex.Reps < 1 {
		return fmt.Errorf("%s: reps must be at least 1", ex.Name)
	}
	if ex.Weight < 0 {
		return fmt.Errorf("%s: weight must not be negative", ex.Name)
	}
	if ex.WeightIncrement < 0 {
		return fmt.Errorf("%s: weight_increment must not be negative", ex.Name)
	}
	if ex.MinReps < 0 || ex.MaxReps < 0 {
		return fmt.Errorf("%s: rep range must not be negative", ex.Name)
	}
	if ex.MinReps > 0 && ex.MaxReps > 0 && ex.MinReps > ex.MaxReps {
		return fmt.Errorf("%s: min_reps %d exceeds max_reps %d", ex.Name, ex.MinReps, ex.MaxReps)
	}
	return nil
}

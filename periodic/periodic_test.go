package periodic

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestYearly(t *testing.T) {
	monthly := MonthlyCounts{
		"2018-01": 100,
		"2018-02": 200,
		"2020-01": 300,
	}
	now := time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC)

	want := []PeriodCount{
		{Period: "2018", Count: 300},
		{Period: "2019", Count: 0},
		{Period: "2020", Count: 300},
		{Period: "2021", Count: 0},
	}
	if diff := cmp.Diff(want, Yearly(monthly, now)); diff != "" {
		t.Errorf("Yearly aggregation mismatch (-want +got):\n%s", diff)
	}
}

func TestQuarterly(t *testing.T) {
	monthly := MonthlyCounts{
		"2021-01": 10,
		"2021-02": 20,
		"2021-03": 30,
		"2021-07": 5,
	}
	now := time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC)

	// 2022Q1 is the current quarter and is chopped off as incomplete.
	want := []PeriodCount{
		{Period: "2021Q1", Count: 60},
		{Period: "2021Q2", Count: 0},
		{Period: "2021Q3", Count: 5},
		{Period: "2021Q4", Count: 0},
	}
	if diff := cmp.Diff(want, Quarterly(monthly, now)); diff != "" {
		t.Errorf("Quarterly aggregation mismatch (-want +got):\n%s", diff)
	}
}

func TestQuarterlyPreservesTotalCount(t *testing.T) {
	monthly := MonthlyCounts{
		"2020-01": 1, "2020-02": 2, "2020-03": 3,
		"2020-04": 4, "2020-05": 5, "2020-06": 6,
		"2020-09": 7, "2020-12": 8,
	}
	now := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)

	counts := Quarterly(monthly, now)
	sum := 0.0
	for _, pc := range counts {
		sum += pc.Count
	}
	if sum != 36 {
		t.Errorf("Quarterly counts should sum to the monthly total 36, got %g", sum)
	}
}

func TestQuarterlySkipsBadKeys(t *testing.T) {
	monthly := MonthlyCounts{
		"2021-01":  10,
		"2021-1":   99,  // malformed
		"garbage":  99,  // malformed
		"2021-13":  99,  // invalid month
		"3021-01":  99,  // future year
		"2021-12":  99,  // later this year than now
	}
	now := time.Date(2021, time.July, 1, 0, 0, 0, 0, time.UTC)

	counts := Quarterly(monthly, now)
	sum := 0.0
	for _, pc := range counts {
		sum += pc.Count
	}
	if sum != 10 {
		t.Errorf("Expected only the well-formed key to count, got sum %g", sum)
	}
}

func TestQuarterlyEmpty(t *testing.T) {
	if got := Quarterly(MonthlyCounts{}, time.Now()); got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}
}

func TestToSeries(t *testing.T) {
	counts := []PeriodCount{
		{Period: "2021Q1", Count: 60},
		{Period: "2021Q2", Count: 0},
		{Period: "2021Q3", Count: 5},
	}

	labels, series := ToSeries(counts, "mxf")
	if diff := cmp.Diff([]string{"2021Q1", "2021Q2", "2021Q3"}, labels); diff != "" {
		t.Errorf("Labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{60, 0, 5}, series.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 1, 2}, series.Times); diff != "" {
		t.Errorf("Times mismatch (-want +got):\n%s", diff)
	}
	if series.Name != "mxf" {
		t.Errorf("Expected series name mxf, got %q", series.Name)
	}
}

func TestNextQuarterRollsOver(t *testing.T) {
	if got := nextQuarter("2021Q4"); got != "2022Q1" {
		t.Errorf("Expected 2022Q1, got %s", got)
	}
	if got := nextQuarter("2021Q2"); got != "2021Q3" {
		t.Errorf("Expected 2021Q3, got %s", got)
	}
}

// Package periodic aggregates monthly usage counts into coarser periods.
package periodic

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/driftwatch/gobass/timeseries"
)

// PeriodCount is a usage count for one labelled period, e.g. "2014Q3".
type PeriodCount struct {
	Period string
	Count  float64
}

// MonthlyCounts maps "YYYY-MM" period keys to usage counts for one format.
type MonthlyCounts map[string]float64

var monthKey = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Quarterly aggregates monthly counts into time-sorted quarterly counts.
// Quarters with no observations between the first and last count are
// zero-filled, so the result is a gapless per-quarter series. The quarter
// containing now is dropped: its counts may still be incomplete. Malformed
// or future-dated period keys are skipped with a warning.
func Quarterly(monthly MonthlyCounts, now time.Time) []PeriodCount {
	keys := sortedKeys(monthly, now)

	var counts []PeriodCount
	for _, key := range keys {
		year, _ := strconv.Atoi(key[:4])
		month, _ := strconv.Atoi(key[5:])
		label := fmt.Sprintf("%dQ%d", year, (month+2)/3)

		if len(counts) == 0 {
			counts = append(counts, PeriodCount{Period: label})
		}
		// Zero-fill the quarters between the last seen one and this one.
		for counts[len(counts)-1].Period != label {
			counts = append(counts, PeriodCount{Period: nextQuarter(counts[len(counts)-1].Period)})
		}
		counts[len(counts)-1].Count += monthly[key]
	}
	if len(counts) == 0 {
		return nil
	}

	// Extend with zero-count quarters up to the current one, then chop
	// the current quarter off.
	current := fmt.Sprintf("%dQ%d", now.Year(), (int(now.Month())+2)/3)
	for counts[len(counts)-1].Period != current {
		counts = append(counts, PeriodCount{Period: nextQuarter(counts[len(counts)-1].Period)})
	}
	return counts[:len(counts)-1]
}

// Yearly aggregates monthly counts into time-sorted yearly counts,
// zero-filling gap years and appending a zero count for the year after the
// last observation.
func Yearly(monthly MonthlyCounts, now time.Time) []PeriodCount {
	keys := sortedKeys(monthly, now)

	var counts []PeriodCount
	for _, key := range keys {
		label := key[:4]
		if len(counts) == 0 {
			counts = append(counts, PeriodCount{Period: label})
		}
		for counts[len(counts)-1].Period != label {
			counts = append(counts, PeriodCount{Period: nextYear(counts[len(counts)-1].Period)})
		}
		counts[len(counts)-1].Count += monthly[key]
	}
	if len(counts) == 0 {
		return nil
	}

	counts = append(counts, PeriodCount{Period: nextYear(counts[len(counts)-1].Period)})
	return counts
}

// ToSeries converts labelled period counts to a usage series on an
// implicit 0..n-1 time axis, returning the labels alongside for reporting.
func ToSeries(counts []PeriodCount, name string) ([]string, *timeseries.Series) {
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, pc := range counts {
		labels[i] = pc.Period
		values[i] = pc.Count
	}
	s := timeseries.New(values)
	s.Name = name
	return labels, s
}

// sortedKeys returns the well-formed, non-future month keys in ascending
// order.
func sortedKeys(monthly MonthlyCounts, now time.Time) []string {
	keys := make([]string, 0, len(monthly))
	for key := range monthly {
		if !monthKey.MatchString(key) {
			slog.Warn("skipping period key not formatted YYYY-MM", "key", key)
			continue
		}
		month, _ := strconv.Atoi(key[5:])
		if month < 1 || month > 12 {
			slog.Warn("skipping period key with invalid month", "key", key)
			continue
		}
		if key > now.Format("2006-01") {
			slog.Warn("skipping period key in the future", "key", key)
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func nextQuarter(period string) string {
	year, _ := strconv.Atoi(period[:4])
	quarter, _ := strconv.Atoi(period[5:])
	if quarter == 4 {
		return fmt.Sprintf("%dQ1", year+1)
	}
	return fmt.Sprintf("%dQ%d", year, quarter+1)
}

func nextYear(period string) string {
	year, _ := strconv.Atoi(period)
	return strconv.Itoa(year + 1)
}

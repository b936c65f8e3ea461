// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/constraints"
)

const day = 24 * time.Hour

// convertInt performs a checked conversion between integer widths. It
// fails instead of wrapping or truncating.
func convertInt[To, From constraints.Integer](v From) (To, error) {
	out := To(v)
	if From(out) != v || (v < 0) != (out < 0) {
		return 0, newError(CodeNumericOverflow, fmt.Sprintf("%d does not fit in %T", v, out))
	}
	return out, nil
}

// scaleDuration multiplies a unit count by unit, failing when the result
// does not fit in a time.Duration.
func scaleDuration[T constraints.Unsigned](n T, unit time.Duration) (time.Duration, error) {
	limit := uint64(math.MaxInt64 / int64(unit))
	if uint64(n) > limit {
		return 0, newError(CodeNumericOverflow, fmt.Sprintf("%d x %s overflows a duration", n, unit))
	}
	return time.Duration(n) * unit, nil
}

// splitDuration divides d into whole units, failing for negative
// durations and for remainders.
func splitDuration(d, unit time.Duration, what string) (uint64, error) {
	if d < 0 {
		return 0, newError(CodeNumericOverflow, fmt.Sprintf("negative %s %s", what, d))
	}
	if d%unit != 0 {
		return 0, newError(CodeNumericOverflow, fmt.Sprintf("%s %s is not a whole multiple of %s", what, d, unit))
	}
	return uint64(d / unit), nil
}

func dateToDays(d Date) (uint32, error) {
	days, err := splitDuration(time.Duration(d), day, "date")
	if err != nil {
		return 0, err
	}
	return convertInt[uint32](days)
}

func daysToDate(days uint32) (Date, error) {
	d, err := scaleDuration(days, day)
	return Date(d), err
}

func dateTimeToSeconds(d DateTime) (uint32, error) {
	secs, err := splitDuration(time.Duration(d), time.Second, "datetime")
	if err != nil {
		return 0, err
	}
	return convertInt[uint32](secs)
}

func secondsToDateTime(secs uint32) (DateTime, error) {
	d, err := scaleDuration(secs, time.Second)
	return DateTime(d), err
}

func timestampToMicros(t Timestamp) (uint64, error) {
	return splitDuration(time.Duration(t), time.Microsecond, "timestamp")
}

func microsToTimestamp(us uint64) (Timestamp, error) {
	d, err := scaleDuration(us, time.Microsecond)
	return Timestamp(d), err
}

func intervalToNanos(i Interval) (int64, error) {
	if i.Duration < 0 {
		return 0, newError(CodeNumericOverflow, fmt.Sprintf("negative interval magnitude %s", i.Duration))
	}
	switch i.Sign {
	case Plus:
		return int64(i.Duration), nil
	case Minus:
		return -int64(i.Duration), nil
	default:
		return 0, newError(CodeCustom, fmt.Sprintf("invalid interval sign %d", i.Sign))
	}
}

func nanosToInterval(ns int64) (Interval, error) {
	if ns == math.MinInt64 {
		return Interval{}, newError(CodeNumericOverflow, fmt.Sprintf("interval magnitude of %d overflows a duration", ns))
	}
	if ns < 0 {
		return Interval{Sign: Minus, Duration: time.Duration(-ns)}, nil
	}
	return Interval{Sign: Plus, Duration: time.Duration(ns)}, nil
}

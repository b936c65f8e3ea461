// Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package conformance provides the fixtures of the YDB value codec
// conformance suite. [Samples] lists values covering every [ydbvalue.Kind],
// nested containers, empty containers with non-trivial witnesses and the
// numeric and time boundaries. [Run] pushes each sample through
// [RoundTrip] and collects a [Report].
//
// [SampleResultSet] builds a multi-row wire result set used by the
// conformance binary and the codec benchmarks.
package conformance

// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/feed", "200"))
	RecordAPIRequest("GET", "/api/feed", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/feed", "200"))

	if after-before != 1 {
		t.Errorf("APIRequestsTotal delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != start+1 {
		t.Errorf("active = %v, want %v", got, start+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("active = %v, want %v", got, start)
	}
}

func TestRecordSourceFetch(t *testing.T) {
	c := SourceFetches.WithLabelValues("youtube", "error")
	before := testutil.ToFloat64(c)
	RecordSourceFetch("youtube", "error", time.Second)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("SourceFetches = %v, want %v", got, before+1)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("candidates"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("candidates"))

	RecordCacheLookup("candidates", true)
	RecordCacheLookup("candidates", false)
	RecordCacheLookup("candidates", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("candidates")); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("candidates")); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

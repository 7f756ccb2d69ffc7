// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"sync"
	"time"
)

// DefaultDailyQuota is the advisory daily budget for primary-API calls.
const DefaultDailyQuota = 90

// Quota counts primary-API calls per calendar day. It is purely advisory:
// nothing blocks when the budget is exhausted; the count feeds the
// developer display.
type Quota struct {
	mu        sync.Mutex
	limit     int
	used      int
	lastReset string

	now func() time.Time
}

// Usage is a point-in-time quota snapshot.
type Usage struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// NewQuota returns a tracker with the given daily limit (default 90).
func NewQuota(limit int) *Quota {
	if limit <= 0 {
		limit = DefaultDailyQuota
	}
	q := &Quota{limit: limit, now: time.Now}
	q.lastReset = q.today()
	return q
}

func (q *Quota) today() string {
	return q.now().Format("2006-01-02")
}

// checkResetLocked zeroes the counter when the local calendar day changes.
func (q *Quota) checkResetLocked() {
	if today := q.today(); q.lastReset != today {
		q.used = 0
		q.lastReset = today
	}
}

// RecordRequest counts one primary-API call.
func (q *Quota) RecordRequest() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.checkResetLocked()
	q.used++
}

// Restore seeds the counter, e.g. from today's rows in the search log.
func (q *Quota) Restore(used int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.checkResetLocked()
	if used > q.used {
		q.used = used
	}
}

// GetUsage returns the current day's usage.
func (q *Quota) GetUsage() Usage {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.checkResetLocked()
	return Usage{Used: q.used, Limit: q.limit, Remaining: q.limit - q.used}
}

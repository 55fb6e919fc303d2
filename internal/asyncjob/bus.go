// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package asyncjob implements the core async façade described by the
// specification: the Notification Bus (A), Job Latch (B), Fingerprint
// Cache (C), Progress Relay (D), Worker Dispatcher (E) and Credential
// Holder (F). It is the Go-native equivalent of gitui's asyncgit crate,
// grounded in structure (not API) on the teacher's internal/gitcmd
// executor and pkg/watch's goroutine-plus-channel style, generalized with
// Go generics for the result types each job produces.
package asyncjob

import "sync"

// Kind discriminates the notifications the bus carries (spec §4.A, §6).
// It is a closed set.
type Kind int

const (
	KindStatus Kind = iota
	KindLogChanged
	KindCommitFilesReady
	KindPushProgress
	KindPushFinished
	KindFetchProgress
	KindFetchFinished
	KindTagsPushed
	KindBlameReady
	KindDiffReady
	KindSyntaxHighlightingProgress
	KindSyntaxHighlightingDone
)

// Notification is the small discriminated value carried by the bus. It
// intentionally has no payload: the UI re-reads authoritative state from
// the relevant Job Latch after waking (spec §4.A).
type Notification struct {
	Kind Kind
}

// Bus is a many-producer, many-consumer notification channel that never
// blocks a sender. Each subscriber independently coalesces back-pressure:
// a burst of notifications of the same Kind collapses to the most recent
// one, but no Kind's latest notification is ever dropped (spec §4.A, §5).
type Bus struct {
	mu          sync.Mutex
	subscribers []*subscription
}

type subscription struct {
	mu      sync.Mutex
	pending map[Kind]struct{}
	wake    chan struct{}
}

// NewBus creates an empty notification bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new consumer and returns a handle to drain it. The
// returned Subscription is independent of all others: each consumer sees
// every Kind at least once, coalesced independently.
func (b *Bus) Subscribe() *Subscription {
	sub := &subscription{
		pending: make(map[Kind]struct{}),
		wake:    make(chan struct{}, 1),
	}
	b.mu.Lock()
	b.subscribers = append(b.subscribers, sub)
	b.mu.Unlock()
	return &Subscription{sub: sub}
}

// Publish posts a notification of the given kind to every subscriber.
// Never blocks: each subscriber's wake channel is sent to non-blockingly,
// and repeated kinds before the consumer drains collapse into one pending
// entry (spec §4.A).
func (b *Bus) Publish(kind Kind) {
	b.mu.Lock()
	subs := append([]*subscription(nil), b.subscribers...)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		sub.pending[kind] = struct{}{}
		sub.mu.Unlock()

		select {
		case sub.wake <- struct{}{}:
		default:
		}
	}
}

// Subscription is one consumer's view of the Bus.
type Subscription struct {
	sub *subscription
}

// Wake returns the channel the UI event loop selects on to know a drain is
// worthwhile. Receiving from it does not by itself clear pending state;
// call Drain for that.
func (s *Subscription) Wake() <-chan struct{} {
	return s.sub.wake
}

// Drain returns and clears the set of kinds that have notified since the
// last Drain call. Ordering across kinds is not meaningful (spec §4.A);
// the UI should re-read canonical state per kind from the owning Job Latch.
func (s *Subscription) Drain() []Kind {
	s.sub.mu.Lock()
	defer s.sub.mu.Unlock()

	if len(s.sub.pending) == 0 {
		return nil
	}
	kinds := make([]Kind, 0, len(s.sub.pending))
	for k := range s.sub.pending {
		kinds = append(kinds, k)
		delete(s.sub.pending, k)
	}
	return kinds
}

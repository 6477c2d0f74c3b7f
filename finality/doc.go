// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package finality implements the quorum aggregator (§4.6): given a
// batch of EOTS submissions for one block, verify each against its
// committed pub-rand and signature, sum voting power from an oracle,
// and decide finality at the two-thirds threshold.
//
// Aggregation is deliberately linear today: EOTSSubmission is a plain
// struct, one per signer, with no batching or signature aggregation
// (§1 Non-goals, §9 "No aggregation"). If a future version adds
// MuSig-style aggregated submissions, that variant should join
// EOTSSubmission behind a small interface (an `Aggregated` case
// alongside today's `Individual` one) rather than replace it — the
// aggregator's iteration and threshold logic do not need to change,
// only how a submission's voting power and validity are read off it.
package finality

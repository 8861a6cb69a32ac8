// Package repository defines the match-record store interface and its
// in-memory implementation. Durable engines live behind the same interface
// outside this module; the core only ever reads immutable snapshots.
package repository

import (
	"context"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
)

// Store provides read/write access to persisted match records.
type Store interface {
	// Put stores a match record, replacing any prior record for the same
	// match and team (a re-scout supersedes the original).
	Put(ctx context.Context, rec model.MatchRecord) error

	// TeamRecords returns all records for a team in insertion order.
	// An unknown team yields an empty slice, not an error.
	TeamRecords(ctx context.Context, teamNumber int) ([]model.MatchRecord, error)

	// MatchRecords returns all records for a match across both alliances.
	MatchRecords(ctx context.Context, matchKey string) ([]model.MatchRecord, error)

	// Teams returns the distinct team numbers with at least one record.
	Teams(ctx context.Context) ([]int, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) int
}

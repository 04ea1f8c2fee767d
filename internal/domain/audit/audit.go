// Package audit defines the change-history contract for business documents.
// The postgres implementation compresses payloads before storage.
package audit

import (
	"context"
	"time"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
)

// Actions recorded in the audit trail.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionStatus = "status_change"
)

// Entry is one recorded change to a business document.
type Entry struct {
	ID         id.ID     `db:"id" json:"id"`
	Entity     string    `db:"entity" json:"entity"`
	EntityID   id.ID     `db:"entity_id" json:"entityId"`
	Action     string    `db:"action" json:"action"`
	ActorID    string    `db:"actor_id" json:"actorId"`
	Payload    any       `db:"-" json:"payload,omitempty"`
	RecordedAt time.Time `db:"recorded_at" json:"recordedAt"`
}

// Trail records document changes. Implementations must be safe to call
// inside an ambient transaction.
type Trail interface {
	Record(ctx context.Context, entry Entry) error
	ListByEntity(ctx context.Context, entity string, entityID id.ID) ([]Entry, error)
}

// NopTrail discards all entries. Used in tests.
type NopTrail struct{}

func (NopTrail) Record(ctx context.Context, entry Entry) error { return nil }

func (NopTrail) ListByEntity(ctx context.Context, entity string, entityID id.ID) ([]Entry, error) {
	return nil, nil
}

var _ Trail = NopTrail{}

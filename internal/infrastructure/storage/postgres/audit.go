package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/xinnxz/sim4lon-sub000/internal/core/id"
	"github.com/xinnxz/sim4lon-sub000/internal/domain/audit"
)

// CompressionAlgo specifies the compression algorithm used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

const auditTable = "sys_audit"

// Compile-time check that AuditStore implements the domain trail.
var _ audit.Trail = (*AuditStore)(nil)

// AuditStore persists document change history. Large payloads are
// zstd-compressed before storage.
type AuditStore struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int // bytes, default 10KB
}

// NewAuditStore creates a new audit store.
func NewAuditStore(txManager *TxManager) (*AuditStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditStore{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record inserts one audit entry. Joins the ambient transaction when one is
// active, so the trail commits or rolls back with the document it describes.
func (s *AuditStore) Record(ctx context.Context, entry audit.Entry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	var compressed []byte
	algo := CompressionNone
	if len(payload) > s.compressThreshold {
		compressed = s.encoder.EncodeAll(payload, nil)
		payload = nil
		algo = CompressionZstd
	}

	sql := `
		INSERT INTO sys_audit (
			id, entity, entity_id, action, actor_id,
			payload, payload_compressed, compression_algo, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	querier := s.txManager.GetQuerier(ctx)
	_, err = querier.Exec(ctx, sql,
		entry.ID, entry.Entity, entry.EntityID, entry.Action, entry.ActorID,
		payload, compressed, algo, entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByEntity retrieves the change history of one document, newest first.
func (s *AuditStore) ListByEntity(ctx context.Context, entity string, entityID id.ID) ([]audit.Entry, error) {
	sql := `
		SELECT id, entity, entity_id, action, actor_id,
			   payload, payload_compressed, compression_algo, recorded_at
		FROM sys_audit
		WHERE entity = $1 AND entity_id = $2
		ORDER BY recorded_at DESC
	`

	rows, err := s.txManager.GetQuerier(ctx).Query(ctx, sql, entity, entityID)
	if err != nil {
		return nil, fmt.Errorf("query audit history: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			e          audit.Entry
			payload    []byte
			compressed []byte
			algo       CompressionAlgo
		)
		err := rows.Scan(
			&e.ID, &e.Entity, &e.EntityID, &e.Action, &e.ActorID,
			&payload, &compressed, &algo, &e.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		if algo == CompressionZstd && len(compressed) > 0 {
			payload, err = s.decoder.DecodeAll(compressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress audit payload: %w", err)
			}
		}
		if len(payload) > 0 {
			e.Payload = json.RawMessage(payload)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

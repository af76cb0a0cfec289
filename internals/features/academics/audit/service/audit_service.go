package service

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"acadattend_backend/internals/features/academics/audit/model"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// Append writes one audit entry on the caller's transaction. Corrective
// writes and their audit record are one unit: callers must roll back
// the correction when Append fails.
func (s *Service) Append(tx *gorm.DB, entry *model.AuditLogEntryModel) error {
	db := s.DB
	if tx != nil {
		db = tx
	}
	return db.Create(entry).Error
}

// Entry builds an audit record with before/after snapshots serialized
// to JSONB. A snapshot that fails to marshal fails the entry, and with
// it the correction it documents.
func Entry(op, compositeKey string, strategy *string, actor uuid.UUID, studentID *uuid.UUID, before, after interface{}) (*model.AuditLogEntryModel, error) {
	e := &model.AuditLogEntryModel{
		AuditOperation:    op,
		AuditCompositeKey: compositeKey,
		AuditStrategy:     strategy,
		AuditActorID:      actor,
		AuditStudentID:    studentID,
	}
	if before != nil {
		b, err := sonic.Marshal(before)
		if err != nil {
			return nil, err
		}
		e.AuditBefore = b
	}
	if after != nil {
		a, err := sonic.Marshal(after)
		if err != nil {
			return nil, err
		}
		e.AuditAfter = a
	}
	return e, nil
}

// ListByCompositeKey returns the feed for one class, newest first.
func (s *Service) ListByCompositeKey(ctx context.Context, compositeKey string, limit, offset int) ([]model.AuditLogEntryModel, int64, error) {
	return s.list(ctx, "audit_composite_key = ?", compositeKey, limit, offset)
}

// ListByActor returns the feed for one actor, newest first.
func (s *Service) ListByActor(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]model.AuditLogEntryModel, int64, error) {
	return s.list(ctx, "audit_actor_id = ?", actorID, limit, offset)
}

func (s *Service) list(ctx context.Context, cond string, arg interface{}, limit, offset int) ([]model.AuditLogEntryModel, int64, error) {
	var total int64
	if err := s.DB.WithContext(ctx).
		Model(&model.AuditLogEntryModel{}).
		Where(cond, arg).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.AuditLogEntryModel
	if err := s.DB.WithContext(ctx).
		Where(cond, arg).
		Order("audit_created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

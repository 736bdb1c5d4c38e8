package mapper

import (
	"encoding/json"

	"ai-renamer-be/internal/entity"
	"ai-renamer-be/internal/model"

	"gorm.io/datatypes"
)

type RenameRecordMapper struct{}

func NewRenameRecordMapper() *RenameRecordMapper {
	return &RenameRecordMapper{}
}

func (m *RenameRecordMapper) ToEntity(r *model.RenameRecord) *entity.RenameRecord {
	if r == nil {
		return nil
	}
	var meta entity.RenameMetadata
	if len(r.Metadata) > 0 {
		// A malformed blob only loses the reasoning, not the record.
		_ = json.Unmarshal(r.Metadata, &meta)
	}
	return &entity.RenameRecord{
		Id:            r.Id,
		UserId:        r.UserId,
		Folder:        r.Folder,
		OldName:       r.OldName,
		RequestedName: r.RequestedName,
		FinalName:     r.FinalName,
		Mode:          r.Mode,
		Metadata:      meta,
		CreatedAt:     r.CreatedAt,
	}
}

func (m *RenameRecordMapper) ToModel(r *entity.RenameRecord) *model.RenameRecord {
	if r == nil {
		return nil
	}
	raw, _ := json.Marshal(r.Metadata)
	return &model.RenameRecord{
		Id:            r.Id,
		UserId:        r.UserId,
		Folder:        r.Folder,
		OldName:       r.OldName,
		RequestedName: r.RequestedName,
		FinalName:     r.FinalName,
		Mode:          r.Mode,
		Metadata:      datatypes.JSON(raw),
		CreatedAt:     r.CreatedAt,
	}
}

func (m *RenameRecordMapper) ToEntities(records []*model.RenameRecord) []*entity.RenameRecord {
	out := make([]*entity.RenameRecord, 0, len(records))
	for _, r := range records {
		out = append(out, m.ToEntity(r))
	}
	return out
}

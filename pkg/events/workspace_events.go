package events

import "time"

const (
	TypeFileRenamed    = "FILE_RENAMED"
	TypeBatchProcessed = "BATCH_PROCESSED"
	TypeBatchRenamed   = "BATCH_RENAMED"
)

// Every workspace event payload carries user_id so consumers can route it.

func FileRenamed(userID, folder, oldName, finalName string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeFileRenamed,
		Data: map[string]interface{}{
			"user_id":    userID,
			"folder":     folder,
			"old_name":   oldName,
			"final_name": finalName,
		},
		OccurredAt: at,
	}
}

func BatchProcessed(userID, folder string, total, succeeded, failed int, at time.Time) BaseEvent {
	return batch(TypeBatchProcessed, userID, folder, total, succeeded, failed, at)
}

func BatchRenamed(userID, folder string, total, succeeded, failed int, at time.Time) BaseEvent {
	return batch(TypeBatchRenamed, userID, folder, total, succeeded, failed, at)
}

func batch(typ, userID, folder string, total, succeeded, failed int, at time.Time) BaseEvent {
	return BaseEvent{
		Type: typ,
		Data: map[string]interface{}{
			"user_id":   userID,
			"folder":    folder,
			"total":     total,
			"succeeded": succeeded,
			"failed":    failed,
		},
		OccurredAt: at,
	}
}

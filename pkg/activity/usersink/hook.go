package usersink

import (
	"context"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-catalog-admin/pkg/activity"
)

// Sink is the go-users activity recorder the hook writes into.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook adapts console activity events into go-users activity records.
// Identifier fields that are not valid uuids map to the zero uuid rather
// than failing the mutation that produced the event.
type Hook struct {
	Sink Sink
}

// Notify implements activity.Hook.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil || !evt.Valid() {
		return nil
	}
	record := types.ActivityRecord{
		ActorID:    parseID(evt.ActorID),
		UserID:     parseID(evt.UserID),
		TenantID:   parseID(evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
		Data:       map[string]any{},
	}
	for k, v := range evt.Metadata {
		record.Data[k] = v
	}
	if evt.DefinitionCode != "" {
		record.Data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		record.Data["recipients"] = append([]string(nil), evt.Recipients...)
	}
	return h.Sink.Log(ctx, record)
}

func parseID(value string) uuid.UUID {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}

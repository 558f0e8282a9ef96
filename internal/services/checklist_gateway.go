package services

import (
  "context"
  "encoding/json"
  "errors"
  "github.com/google/uuid"
  "github.com/centenniallife/wellness-backend/internal/checklist"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/requestdata"
  "github.com/centenniallife/wellness-backend/internal/types"
)

// serviceGateway adapts ChecklistService to the checklist.Gateway contract so
// an AutoSaver can persist through the same code path the HTTP handlers use.
type serviceGateway struct {
  log                *logger.Logger
  checklistService   ChecklistService
}

func NewChecklistGateway(log *logger.Logger, checklistService ChecklistService) checklist.Gateway {
  gatewayLog := log.With("service", "ChecklistGateway")
  return &serviceGateway{log: gatewayLog, checklistService: checklistService}
}

func (sg *serviceGateway) Fetch(ctx context.Context, userID uuid.UUID, date string) (*checklist.Record, error) {
  ctx = requestdata.WithRequestData(ctx, &requestdata.RequestData{UserID: userID})
  record, err := sg.checklistService.GetChecklist(ctx, date)
  if err != nil {
    return nil, checklist.NewGatewayError(classifyGatewayError(err), err)
  }
  if record == nil {
    return nil, nil
  }
  return recordFromModel(record), nil
}

func (sg *serviceGateway) Save(ctx context.Context, userID uuid.UUID, date string, snap checklist.Snapshot) (*checklist.Record, error) {
  ctx = requestdata.WithRequestData(ctx, &requestdata.RequestData{UserID: userID})
  reflection := snap.Reflection
  record, err := sg.checklistService.UpsertChecklist(ctx, date, snap.Items, &reflection)
  if err != nil {
    return nil, checklist.NewGatewayError(classifyGatewayError(err), err)
  }
  return recordFromModel(record), nil
}

// Context failures and database errors are worth retrying; malformed input is
// not. Unauthenticated never originates here because the gateway injects its
// own request identity.
func classifyGatewayError(err error) checklist.ErrorKind {
  if errors.Is(err, ErrInvalidDate) {
    return checklist.KindValidation
  }
  return checklist.KindTransient
}

func recordFromModel(model *types.DailyChecklist) *checklist.Record {
  record := &checklist.Record{
    Items:                make(map[string]bool, len(model.ChecklistData)),
    TotalItems:           model.TotalItems,
    CompletedItems:       model.CompletedItems,
    CompletionPercentage: model.CompletionPercentage,
  }
  for id, value := range model.ChecklistData {
    if completed, ok := value.(bool); ok {
      record.Items[id] = completed
    }
  }
  if len(model.ReflectionData) > 0 {
    var reflection checklist.Reflection
    if err := json.Unmarshal(model.ReflectionData, &reflection); err == nil {
      record.Reflection = reflection
    }
  }
  return record
}

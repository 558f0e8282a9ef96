package checklist

import (
  "context"
  "errors"
  "fmt"
  "github.com/google/uuid"
)

type ErrorKind int

const (
  KindUnknown ErrorKind = iota
  KindUnauthenticated
  KindValidation
  KindTransient
)

func (k ErrorKind) String() string {
  switch k {
  case KindUnauthenticated:
    return "unauthenticated"
  case KindValidation:
    return "validation"
  case KindTransient:
    return "transient"
  default:
    return "unknown"
  }
}

// GatewayError is the closed failure taxonomy of the persistence boundary.
// Callers branch on Kind, never on message text.
type GatewayError struct {
  Kind  ErrorKind
  Err   error
}

func (e *GatewayError) Error() string {
  if e.Err == nil {
    return fmt.Sprintf("checklist gateway: %s", e.Kind)
  }
  return fmt.Sprintf("checklist gateway: %s: %v", e.Kind, e.Err)
}

func (e *GatewayError) Unwrap() error {
  return e.Err
}

func NewGatewayError(kind ErrorKind, err error) *GatewayError {
  return &GatewayError{Kind: kind, Err: err}
}

// KindOf extracts the failure kind from any error; non-gateway errors are
// classified as unknown.
func KindOf(err error) ErrorKind {
  var ge *GatewayError
  if errors.As(err, &ge) {
    return ge.Kind
  }
  return KindUnknown
}

// Gateway translates between in-memory state and durable storage. Exactly one
// network round trip per call; no implicit retries.
type Gateway interface {
  // Fetch returns the record for (user, date), or (nil, nil) when no record
  // exists yet for that day.
  Fetch(ctx context.Context, userID uuid.UUID, date string) (*Record, error)
  // Save upserts the snapshot for (user, date) and returns the confirmed
  // record with recomputed totals.
  Save(ctx context.Context, userID uuid.UUID, date string, snap Snapshot) (*Record, error)
}

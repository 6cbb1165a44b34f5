// Package mongo provides the best-effort audit-log sink. Writes never
// fail the primary operation; a nil AuditLog is a valid no-op sink for
// deployments without Mongo configured.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/drawvault/workspace-api/internal/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const shareLogCollection = "workspace-share-logs"

// AuditAction identifies what a share audit entry records.
type AuditAction string

const (
	ActionCreateInvite AuditAction = "CREATE_INVITE"
	ActionJoin         AuditAction = "JOIN"
	ActionUpdate       AuditAction = "UPDATE"
	ActionDelete       AuditAction = "DELETE"
)

// AuditEntry is a single audit record.
type AuditEntry struct {
	Action       AuditAction `bson:"action"`
	UserID       string      `bson:"userId"`
	CollectionID string      `bson:"collectionId,omitempty"`
	ShareID      string      `bson:"shareId,omitempty"`
	InviteCode   string      `bson:"inviteCode,omitempty"`
	Message      string      `bson:"message,omitempty"`
	CreatedAt    time.Time   `bson:"createdAt"`
}

// AuditLog writes share audit entries to MongoDB.
type AuditLog struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the audit-log sink. Returns (nil, nil) when no URI is
// configured, which disables audit logging.
func Connect(ctx context.Context, cfg config.MongoConfig) (*AuditLog, error) {
	if cfg.URI == "" {
		log.Warn().Msg("MONGO_URI not set, audit logging disabled")
		return nil, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &AuditLog{client: client, db: client.Database(cfg.Database)}, nil
}

// Close disconnects the sink
func (a *AuditLog) Close(ctx context.Context) error {
	if a == nil || a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}

// Record writes one audit entry. Failures are logged and swallowed; the
// sink must never fail the operation being audited.
func (a *AuditLog) Record(ctx context.Context, entry AuditEntry) {
	if a == nil || a.db == nil {
		return
	}

	entry.CreatedAt = time.Now()

	doc, err := bson.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal audit entry")
		return
	}

	if _, err := a.db.Collection(shareLogCollection).InsertOne(ctx, doc); err != nil {
		log.Error().Err(err).Str("action", string(entry.Action)).Msg("failed to write audit entry")
	}
}

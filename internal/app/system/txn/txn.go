// internal/app/system/txn/txn.go

// Package txn runs local Mongo writes inside a session transaction when the
// deployment supports one (replica set / sharded cluster), and falls back to
// running the function directly on standalone servers.
//
// Remote platform calls never belong inside the callback: the transaction
// boundary covers local persistence only, and a remote mutation that already
// succeeded is not compensated if the local transaction later fails.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Runner executes a unit of local persistence work, transactionally when the
// backend supports it. Services depend on this instead of *mongo.Database so
// tests can substitute Direct.
type Runner func(ctx context.Context, fn func(ctx context.Context) error) error

// MongoRunner returns a Runner backed by Run against db.
func MongoRunner(db *mongo.Database, log *zap.Logger) Runner {
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		return Run(ctx, db, log, fn)
	}
}

// Direct runs fn without any transaction. Used in tests and by in-memory
// backends.
func Direct(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Run executes fn inside a Mongo transaction. If the server reports that
// transactions are not supported, fn is retried once outside a transaction
// so single-node dev/test deployments keep working.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		if log != nil {
			log.Warn("transactions not supported by deployment; running without transaction", zap.Error(err))
		}
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions (standalone server, old wire version, etc.).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	if ce, ok := err.(mongo.CommandError); ok {
		switch ce.Code {
		case 20, 51, 263: // IllegalOperation, transaction numbers, API mismatch
			return true
		}
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "transaction") &&
		(strings.Contains(s, "replica set") || strings.Contains(s, "session") || strings.Contains(s, "illegal operation")) {
		return true
	}
	if strings.Contains(s, "session") && strings.Contains(s, "not supported") {
		return true
	}
	return false
}

// Package objectstore publishes finished audiobooks to a NATS JetStream object store.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const connectTimeout = 10 * time.Second

// NatsObjectStore stores audio files in a NATS JetStream object store bucket.
type NatsObjectStore struct {
	bucket string
	store  nats.ObjectStore
}

// New creates the bucket, or binds to it when it already exists.
func New(jetstreamContext nats.JetStreamContext, bucketName string) (*NatsObjectStore, error) {
	store, err := jetstreamContext.CreateObjectStore(&nats.ObjectStoreConfig{
		Bucket:      bucketName,
		Description: fmt.Sprintf("Audiobooks stored in the %s bucket.", bucketName),
		Storage:     nats.FileStorage,
		Replicas:    1,
	})
	if err != nil {
		if !errors.Is(err, jetstream.ErrBucketExists) && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
			return nil, fmt.Errorf("failed to create object store bucket '%s': %w", bucketName, err)
		}
		store, err = jetstreamContext.ObjectStore(bucketName)
		if err != nil {
			return nil, fmt.Errorf("failed to bind to existing object store bucket '%s': %w", bucketName, err)
		}
	}

	return &NatsObjectStore{bucket: bucketName, store: store}, nil
}

// UploadFile streams the file at path into the store under key and checks
// that the stored object has the file's size.
func (n *NatsObjectStore) UploadFile(ctx context.Context, key, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(path) // #nosec G304 -- path is the run's own output file
	if err != nil {
		return fmt.Errorf("failed to open %s for upload: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s for upload: %w", path, err)
	}

	if _, err = n.store.Put(&nats.ObjectMeta{Name: key}, f); err != nil {
		return fmt.Errorf("failed to put object '%s' to bucket '%s': %w", key, n.bucket, err)
	}

	info, err := n.store.GetInfo(key)
	if err != nil {
		return fmt.Errorf("failed to get info for object '%s': %w", key, err)
	}
	if info.Size != uint64(stat.Size()) { // #nosec G115 -- file sizes are non-negative
		return fmt.Errorf("object '%s' stored %d bytes, file has %d", key, info.Size, stat.Size())
	}
	return nil
}

// Publisher owns a NATS connection and the object store bound over it
type Publisher struct {
	*NatsObjectStore
	conn *nats.Conn
}

// Connect dials the NATS server at url and binds the bucket
func Connect(url, bucket string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("audiobook"), nats.Timeout(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	store, err := New(js, bucket)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{NatsObjectStore: store, conn: conn}, nil
}

// Close drains and closes the NATS connection
func (p *Publisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}

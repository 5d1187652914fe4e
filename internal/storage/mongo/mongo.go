// mongo — реализация storage.CredentialStore поверх MongoDB.
// Истечение обеспечивается TTL-индексом по expires_at и проверкой при чтении,
// так как TTL-монитор MongoDB удаляет документы с задержкой.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Anees44/trae-dating-project/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	credentialsCollection = "credentials"
	defaultDBName         = "portal"
)

type credentialDoc struct {
	Key       string     `bson:"_id"`
	Value     string     `bson:"value"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

type CredentialStore struct {
	client *mongodriver.Client
	coll   *mongodriver.Collection
	now    func() time.Time
}

// New подключается к MongoDB, проверяет соединение и создаёт TTL-индекс.
func New(ctx context.Context, uri string) (*CredentialStore, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &CredentialStore{
		client: cli,
		coll:   cli.Database(databaseFromURI(uri)).Collection(credentialsCollection),
		now:    time.Now,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

// ensureIndexes: TTL по expires_at (expireAfterSeconds=0 -> срок берётся из документа).
func (s *CredentialStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetName("ttl_expires_at").SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}

	return nil
}

func (s *CredentialStore) Credential(ctx context.Context, key string) (string, error) {
	const op = "storage/mongo/Credential"

	if key == "" {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidKey)
	}

	var doc credentialDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if doc.ExpiresAt != nil && !s.now().Before(*doc.ExpiresAt) {
		return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return doc.Value, nil
}

func (s *CredentialStore) SaveCredential(ctx context.Context, key, value string, ttl time.Duration) error {
	const op = "storage/mongo/SaveCredential"

	if key == "" {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidKey)
	}

	now := s.now().UTC()
	doc := credentialDoc{Key: key, Value: value, UpdatedAt: now}
	if ttl > 0 {
		exp := now.Add(ttl)
		doc.ExpiresAt = &exp
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *CredentialStore) DeleteCredential(ctx context.Context, key string) error {
	const op = "storage/mongo/DeleteCredential"

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *CredentialStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.client.Disconnect(ctx)
}

// databaseFromURI извлекает имя базы из пути mongodb URI, иначе "portal".
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}

var _ storage.CredentialStore = (*CredentialStore)(nil)

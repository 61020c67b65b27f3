// Package mongostore keeps listings in a MongoDB collection and their
// uploaded photos in a GridFS bucket.
package mongostore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amaralimoveis/vitrine/internal/model"
)

// Collection and bucket names.
const (
	ListingsCollection = "imoveis"
	PhotosBucket       = "fotos"
)

// Connect opens a client for uri and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return client, nil
}

// Listings stores one document per listing, keyed by listing ID.
type Listings struct {
	Coll *mongo.Collection
}

// NewListings returns a listing store over the listings collection of db.
func NewListings(db *mongo.Database) *Listings {
	return &Listings{Coll: db.Collection(ListingsCollection)}
}

// EnsureIndexes creates the index backing newest-first listing.
func (s *Listings) EnsureIndexes(ctx context.Context) error {
	_, err := s.Coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("creating listing index: %w", err)
	}
	return nil
}

// List returns every listing, newest first.
func (s *Listings) List(ctx context.Context) ([]model.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.Coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing listings: %w", err)
	}

	var listings []model.Listing
	if err := cur.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("decoding listings: %w", err)
	}
	return listings, nil
}

// Get returns a listing by ID, or nil if it does not exist.
func (s *Listings) Get(ctx context.Context, id string) (*model.Listing, error) {
	l := &model.Listing{}
	err := s.Coll.FindOne(ctx, bson.M{"_id": id}).Decode(l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting listing: %w", err)
	}
	return l, nil
}

// Upsert inserts the listing or replaces the stored document with the same ID.
func (s *Listings) Upsert(ctx context.Context, l model.Listing) error {
	if l.ID == "" {
		return fmt.Errorf("upserting listing: empty id")
	}

	_, err := s.Coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upserting listing: %w", err)
	}
	return nil
}

// Delete removes a listing. Deleting a missing listing is not an error.
func (s *Listings) Delete(ctx context.Context, id string) error {
	if _, err := s.Coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}
	return nil
}

// Photos stores processed photos as GridFS files named by their ID.
type Photos struct {
	DB *mongo.Database
}

// NewPhotos returns a photo store over the photos bucket of db.
func NewPhotos(db *mongo.Database) *Photos {
	return &Photos{DB: db}
}

// bucket opens a fresh bucket per call; a gridfs.Bucket keeps per-stream
// buffers and must not be shared between requests.
func (s *Photos) bucket() (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(s.DB, options.GridFSBucket().SetName(PhotosBucket))
	if err != nil {
		return nil, fmt.Errorf("opening photo bucket: %w", err)
	}
	return bucket, nil
}

type photoFile struct {
	Metadata struct {
		ContentType string `bson:"content_type"`
	} `bson:"metadata"`
}

// SavePhoto stores image data and returns its new ID.
func (s *Photos) SavePhoto(ctx context.Context, data []byte, mime string) (string, error) {
	bucket, err := s.bucket()
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	opts := options.GridFSUpload().SetMetadata(bson.M{"content_type": mime})

	stream, err := bucket.OpenUploadStreamWithID(id, id, opts)
	if err != nil {
		return "", fmt.Errorf("opening photo upload: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		stream.SetWriteDeadline(deadline)
	}

	if _, err := io.Copy(stream, bytes.NewReader(data)); err != nil {
		stream.Abort()
		return "", fmt.Errorf("writing photo: %w", err)
	}
	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("finishing photo upload: %w", err)
	}
	return id, nil
}

// GetPhoto returns a photo's data and MIME type. Data is nil when the
// photo does not exist.
func (s *Photos) GetPhoto(ctx context.Context, id string) ([]byte, string, error) {
	bucket, err := s.bucket()
	if err != nil {
		return nil, "", err
	}

	cur, err := bucket.FindContext(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, "", fmt.Errorf("finding photo: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		return nil, "", cur.Err()
	}
	var file photoFile
	if err := cur.Decode(&file); err != nil {
		return nil, "", fmt.Errorf("decoding photo metadata: %w", err)
	}

	var buf bytes.Buffer
	if _, err := bucket.DownloadToStream(id, &buf); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("reading photo: %w", err)
	}
	return buf.Bytes(), file.Metadata.ContentType, nil
}

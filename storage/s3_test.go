package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnconfiguredStorageDegradesGracefully(t *testing.T) {
	s := NewS3Storage(context.Background(), Credentials{})

	assert.False(t, s.Available())

	_, err := s.Put(context.Background(), "properties/1.jpg", []byte("x"), "image/jpeg")
	assert.ErrorIs(t, err, ErrUnavailable)

	// Deletes soft-succeed so record cleanup is never blocked on blobs.
	assert.True(t, s.Delete(context.Background(), "properties/1.jpg"))

	_, err = s.SignedReadURL(context.Background(), "properties/1.jpg", time.Hour)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPartialCredentialsStillDegrade(t *testing.T) {
	s := NewS3Storage(context.Background(), Credentials{Region: "us-east-1", Bucket: "listings"})

	assert.False(t, s.Available())
}

package hashing

import (
	"context"
	"crypto/md5" //nolint:gosec // content addressing, not security
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"os"

	"signaldedup/internal/discovery"
	"signaldedup/internal/logging"
)

// DefaultChunkSize is the read buffer size used when none is configured.
const DefaultChunkSize = 4096

// Size is the digest length in bytes.
const Size = md5.Size

// Digest is an MD5 content fingerprint.
type Digest [Size]byte

// String returns the lowercase hex encoding.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText encodes the digest as hex so JSON output stays readable.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// New returns a fresh MD5 state, for callers that re-hash copies.
func New() hash.Hash {
	return md5.New() //nolint:gosec
}

// FileUnreadableError reports a file that could not be opened or fully read.
type FileUnreadableError struct {
	Path string
	Err  error
}

func (e *FileUnreadableError) Error() string {
	return fmt.Sprintf("file unreadable: %s: %v", e.Path, e.Err)
}

func (e *FileUnreadableError) Unwrap() error {
	return e.Err
}

// Hasher streams files into digests using a fixed buffer size.
type Hasher struct {
	chunkSize int
	logger    *slog.Logger
}

// NewHasher builds a Hasher. A non-positive chunkSize selects DefaultChunkSize.
func NewHasher(chunkSize int, logger *slog.Logger) *Hasher {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Hasher{
		chunkSize: chunkSize,
		logger:    logging.NewComponentLogger(logger, "hashing"),
	}
}

// HashReader digests everything r yields.
func (h *Hasher) HashReader(r io.Reader) (Digest, error) {
	var d Digest
	sum := md5.New() //nolint:gosec
	buf := make([]byte, h.chunkSize)
	if _, err := io.CopyBuffer(writerOnly{sum}, readerOnly{r}, buf); err != nil {
		return d, err
	}
	copy(d[:], sum.Sum(nil))
	return d, nil
}

// HashFile digests the file at path. The handle is closed on every return.
func (h *Hasher) HashFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, &FileUnreadableError{Path: path, Err: err}
	}
	defer f.Close()

	d, err := h.HashReader(f)
	if err != nil {
		return Digest{}, &FileUnreadableError{Path: path, Err: err}
	}
	return d, nil
}

// HashAll digests records in order and stops at the first failure. The
// returned slice is index-aligned with records.
func (h *Hasher) HashAll(ctx context.Context, records []discovery.FileRecord) ([]Digest, error) {
	digests := make([]Digest, 0, len(records))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, err := h.HashFile(rec.Path)
		if err != nil {
			var unreadable *FileUnreadableError
			if errors.As(err, &unreadable) {
				h.logger.ErrorContext(ctx, "hash failed",
					logging.String(logging.FieldPath, rec.Path),
					logging.String(logging.FieldEventType, "file_unreadable"),
					logging.Error(unreadable.Err),
				)
			}
			return nil, err
		}
		h.logger.DebugContext(ctx, "hashed file",
			logging.String(logging.FieldPath, rec.Rel),
			logging.String(logging.FieldDigest, d.String()),
			logging.Int64("bytes", rec.Size),
		)
		digests = append(digests, d)
	}
	return digests, nil
}

// readerOnly and writerOnly hide ReadFrom/WriteTo so io.CopyBuffer honors
// the configured buffer size.
type readerOnly struct{ io.Reader }

type writerOnly struct{ io.Writer }

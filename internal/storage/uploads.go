package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MaxProofSize caps proof-of-payment uploads at 1 MiB.
const MaxProofSize = 1 << 20

// Uploads stores payment proof attachments on local disk.
type Uploads struct {
	Dir string
}

// NewUploads ensures the uploads directory exists.
func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &Uploads{Dir: dir}, nil
}

// SaveProof writes an uploaded proof file under a fresh uuid name and returns
// the stored path. Oversized files are rejected.
func (u *Uploads) SaveProof(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxProofSize {
		return "", fmt.Errorf("file exceeds %d bytes", MaxProofSize)
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dest := filepath.Join(u.Dir, name)
	if err := c.SaveFile(file, dest); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	return dest, nil
}

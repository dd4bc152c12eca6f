package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

// MaxAvatarBytes caps avatar uploads at 5 MiB.
const MaxAvatarBytes = 5 << 20

var avatarExtByMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// SniffImageType detects the content type from the file bytes, never from the
// client-supplied filename. Returns the extension to store the file under and
// whether the type is an accepted avatar format.
func SniffImageType(data []byte) (string, bool) {
	detected := mimetype.Detect(data)
	for mime, ext := range avatarExtByMIME {
		if detected.Is(mime) {
			return ext, true
		}
	}
	return "", false
}

// SaveAvatar validates and persists an uploaded avatar for one user,
// replacing prevPath best-effort. It returns the new path relative to the
// uploads root. Validation failures come back as ServiceError; directory and
// write failures stay wrapped so the caller can tell the two tiers apart.
func SaveAvatar(uploadsRoot, userID string, body io.Reader, declaredSize int64, prevPath *string) (string, error) {
	if declaredSize > MaxAvatarBytes {
		return "", ErrBadRequest("File too large (max 5MB)")
	}
	data, err := io.ReadAll(io.LimitReader(body, MaxAvatarBytes+1))
	if err != nil {
		return "", ErrBadRequest("Upload error")
	}
	if len(data) > MaxAvatarBytes {
		return "", ErrBadRequest("File too large (max 5MB)")
	}
	ext, ok := SniffImageType(data)
	if !ok {
		return "", ErrBadRequest("Invalid file type")
	}

	userDir := filepath.Join(uploadsRoot, "avatars", userID)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", WrapError(err, "create upload directory")
	}

	// Stale-file cleanup is best-effort: a leftover file must never block a
	// new upload.
	if prevPath != nil && *prevPath != "" {
		oldPath := filepath.Join(uploadsRoot, filepath.FromSlash(*prevPath))
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).WithField("path", *prevPath).Warn("could not delete previous avatar")
		}
	}

	filename := fmt.Sprintf("avatar_%d.%s", time.Now().Unix(), ext)
	target := filepath.Join(userDir, filename)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", WrapError(err, "save avatar")
	}
	return filepath.ToSlash(filepath.Join("avatars", userID, filename)), nil
}

package utils

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// --- Image Validation ---

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveImageWithThumb stores an uploaded image under folder with a fresh uuid
// name and writes a Lanczos thumbnail alongside it under folder/thumb.
// Returns the generated filename.
func SaveImageWithThumb(file multipart.File, header *multipart.FileHeader, folder string, thumbWidth int) (string, error) {
	ext := filepath.Ext(header.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	if err := EnsureDir(folder); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	path := filepath.Join(folder, filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	// Thumbnail failure is non-fatal; the original is already saved.
	if err := createThumb(path, folder, filename, thumbWidth); err != nil {
		log.Printf("thumbnail for %s failed: %v", filename, err)
	}
	return filename, nil
}

func createThumb(srcPath, folder, filename string, width int) error {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)

	thumbDir := filepath.Join(folder, "thumb")
	if err := EnsureDir(thumbDir); err != nil {
		return err
	}
	return imaging.Save(thumb, filepath.Join(thumbDir, filename))
}

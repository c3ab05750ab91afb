// ABOUTME: Moves finished artifacts from the temp directory to their destination.
// ABOUTME: Never overwrites an existing file; numbered suffixes keep names unique.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/healthlens/internal/models"
)

// maxNameAttempts bounds the numbered suffixes tried by Save.
const maxNameAttempts = 1000

// Save moves the artifact file into dir under name, or under SafeFileName
// when name is empty. The artifact's Path is updated on success.
func Save(a *models.Artifact, dir, name string) (string, error) {
	if name == "" {
		name = SafeFileName(a)
	}
	if filepath.Ext(name) == "" {
		name += a.Format.Extension()
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("%w: create output directory: %v", ErrFileWrite, err)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 1; i <= maxNameAttempts; i++ {
		candidate := name
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		dest := filepath.Join(dir, candidate)

		err := moveExclusive(a.Path, dest)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrFileWrite, err)
		}
		a.Path = dest
		return dest, nil
	}
	return "", fmt.Errorf("%w: no free name for %s in %s", ErrFileWrite, name, dir)
}

// moveExclusive copies src to a new file at dest and removes src. It fails
// with os.ErrExist when dest is already present.
func moveExclusive(src, dest string) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return err
	}
	return os.Remove(src)
}

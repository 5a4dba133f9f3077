package media

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"

	"kisansetu/internal/catalog"
)

const thumbnailTransformation = "c_fill,h_150,w_150,q_auto"

// Thumbnailer builds small delivery URLs for catalog images hosted on Cloudinary.
type Thumbnailer struct {
	cld *cloudinary.Cloudinary
}

func NewThumbnailer(cld *cloudinary.Cloudinary) *Thumbnailer {
	return &Thumbnailer{cld: cld}
}

func (t *Thumbnailer) Thumbnail(publicID string) (string, error) {
	img, err := t.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("cloudinary image %q: %w", publicID, err)
	}
	img.Transformation = thumbnailTransformation
	return img.String()
}

// Apply swaps the item's image for its thumbnail. Items without a Cloudinary image
// are returned unchanged.
func (t *Thumbnailer) Apply(item catalog.Item) catalog.Item {
	if t == nil || t.cld == nil {
		return item
	}

	publicID := item.ImagePublicID
	if publicID == "" && item.ImageURL != "" {
		id, err := PublicIDFromURL(item.ImageURL)
		if err != nil {
			return item
		}
		publicID = id
	}
	if publicID == "" {
		return item
	}

	thumb, err := t.Thumbnail(publicID)
	if err != nil {
		return item
	}
	item.ImageURL = thumb
	return item
}

// PublicIDFromURL extracts the public id from a Cloudinary delivery URL, dropping
// any version segment and file extension.
func PublicIDFromURL(imageURL string) (string, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	if !strings.HasSuffix(parsed.Host, "cloudinary.com") {
		return "", errors.New("not a cloudinary URL")
	}

	parts := strings.Split(parsed.Path, "/")
	for i, part := range parts {
		if part != "upload" || i+1 >= len(parts) {
			continue
		}
		rest := parts[i+1:]
		if len(rest) > 1 && isVersion(rest[0]) {
			rest = rest[1:]
		}
		id := strings.Join(rest, "/")
		if dot := strings.LastIndex(id, "."); dot > strings.LastIndex(id, "/") {
			id = id[:dot]
		}
		if id == "" {
			break
		}
		return id, nil
	}

	return "", errors.New("failed to extract public ID from URL")
}

func isVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, r := range seg[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package client

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"backoffice/internal/domain"
	"backoffice/internal/gateway"
)

// Images proxies the binary upload endpoints. Uploads go through the
// gateway's multipart path; everything else is plain JSON.
type Images struct {
	gw *gateway.Client
}

func NewImages(gw *gateway.Client) *Images {
	return &Images{gw: gw}
}

// UploadRequest describes a single image upload.
type UploadRequest struct {
	FileName   string
	Body       io.Reader
	EntityType domain.EntityType
	EntityID   int
	ImageType  domain.ImageType
	SetAsMain  bool
	Alt        string
}

// Upload stores one image and returns its metadata.
func (i *Images) Upload(ctx context.Context, req UploadRequest) (*domain.Image, error) {
	fields := map[string]string{
		"EntityType": strconv.Itoa(int(req.EntityType)),
		"EntityId":   strconv.Itoa(req.EntityID),
		"ImageType":  strconv.Itoa(int(req.ImageType)),
		"SetAsMain":  strconv.FormatBool(req.SetAsMain),
	}
	if req.Alt != "" {
		fields["Alt"] = req.Alt
	}
	files := []gateway.File{{Field: "File", Name: req.FileName, Body: req.Body}}

	var image *domain.Image
	if err := i.gw.Upload(ctx, "/Image/upload_image", fields, files, &image); err != nil {
		return nil, err
	}
	return image, nil
}

// UploadMultiple stores several images for one entity; the first becomes the
// main image.
func (i *Images) UploadMultiple(ctx context.Context, entityType domain.EntityType, entityID int, files []gateway.File) ([]domain.Image, error) {
	fields := map[string]string{
		"EntityType":     strconv.Itoa(int(entityType)),
		"EntityId":       strconv.Itoa(entityID),
		"ImageType":      "0",
		"SetFirstAsMain": "true",
	}
	for idx := range files {
		files[idx].Field = "Files"
	}

	var images []domain.Image
	if err := i.gw.Upload(ctx, "/Image/upload-multiple", fields, files, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// Delete removes one image.
func (i *Images) Delete(ctx context.Context, imageID int) (bool, error) {
	var ok bool
	body := map[string]int{"id": imageID}
	if err := i.gw.Delete(ctx, "/Image/delete_image", body, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// SetMain marks an image as the entity's main image.
func (i *Images) SetMain(ctx context.Context, imageID int) (bool, error) {
	var ok bool
	body := map[string]int{"imageId": imageID}
	if err := i.gw.Put(ctx, "/Image/set_main_image", body, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// ByEntity lists all images attached to an entity.
func (i *Images) ByEntity(ctx context.Context, entityType domain.EntityType, entityID int) ([]domain.Image, error) {
	var images []domain.Image
	path := fmt.Sprintf("/Image/get_by_id/%d/%d", entityType, entityID)
	if err := i.gw.Get(ctx, path, nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// MainImage fetches the entity's main image, nil when none is set.
func (i *Images) MainImage(ctx context.Context, entityType domain.EntityType, entityID int) (*domain.Image, error) {
	var image *domain.Image
	path := fmt.Sprintf("/Image/get_main_image/%d/%d/main", entityType, entityID)
	if err := i.gw.Get(ctx, path, nil, &image); err != nil {
		return nil, err
	}
	return image, nil
}

// Download fetches the raw bytes of one image.
func (i *Images) Download(ctx context.Context, imageID int) ([]byte, string, error) {
	return i.gw.Download(ctx, fmt.Sprintf("/Image/download/%d", imageID))
}

// DeleteEntityImages removes every image attached to an entity.
func (i *Images) DeleteEntityImages(ctx context.Context, entityType domain.EntityType, entityID int) (bool, error) {
	var ok bool
	path := fmt.Sprintf("/Image/entity/%d/%d", entityType, entityID)
	if err := i.gw.Delete(ctx, path, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

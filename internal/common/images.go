package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/Ltinterdonato1/BlinkShare/pkg/errorx"
	"github.com/Ltinterdonato1/BlinkShare/pkg/storage"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/nfnt/resize"
)

// UploadImage reads the multipart file under key and stores it unchanged.
func UploadImage(ctx context.Context, fileStorage storage.Storage, key, prefix string) (*storage.UploadResponse, error) {
	data, header, mime, err := readFormImage(ctx, key)
	if err != nil {
		return nil, err
	}

	resp, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Bucket:   xcontext.Configs(ctx).Storage.Bucket,
		Prefix:   prefix,
		FileName: header,
		Mime:     mime,
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return resp, nil
}

// UploadAvatar crops the multipart file to the configured avatar width
// before storing it.
func UploadAvatar(ctx context.Context, fileStorage storage.Storage, key string) (*storage.UploadResponse, error) {
	data, header, mime, err := readFormImage(ctx, key)
	if err != nil {
		return nil, err
	}

	img, err := decodeImg(mime, bytes.NewReader(data))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "We just accept jpeg, gif or png")
	}

	width := xcontext.Configs(ctx).File.AvatarCropWidth
	img = resize.Resize(width, width, img, resize.Lanczos2)
	b, err := encodeImg(mime, img)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
		return nil, errorx.Unknown
	}

	resp, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Bucket:   xcontext.Configs(ctx).Storage.Bucket,
		Prefix:   "avatars",
		FileName: fmt.Sprintf("%dx%d-%s", width, width, header),
		Mime:     mime,
		Data:     b,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload avatar: %v", err)
		return nil, errorx.Unknown
	}

	return resp, nil
}

func readFormImage(ctx context.Context, key string) ([]byte, string, string, error) {
	req := xcontext.HTTPRequest(ctx)
	if err := req.ParseMultipartForm(xcontext.Configs(ctx).File.MaxMemory); err != nil {
		return nil, "", "", errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		return nil, "", "", errorx.New(errorx.BadRequest, "Error retrieving the file")
	}
	defer file.Close()

	if header.Size > xcontext.Configs(ctx).File.MaxSize {
		return nil, "", "", errorx.New(errorx.BadRequest, "The file is too large")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read uploaded file: %v", err)
		return nil, "", "", errorx.Unknown
	}

	return data, header.Filename, header.Header.Get("Content-Type"), nil
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png", "application/octet-stream":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("We just accept jpeg, gif or png")
	}
	return img, err
}

func encodeImg(mime string, img image.Image) (b []byte, err error) {
	buf := new(bytes.Buffer)

	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png", "application/octet-stream":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("We just accept jpeg, gif or png")
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), err
}

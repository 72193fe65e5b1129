package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadFileOptions describe a file to be placed into the course.
type UploadFileOptions struct {
	// Name is the filename as it should appear in Canvas. Required.
	Name string
	// Size is the byte length of the payload. Required by the server.
	Size int64
	// ContentType is the MIME type; the server sniffs when omitted.
	ContentType string
	// ParentPath is the destination folder; either separator is accepted.
	ParentPath string
	// OnDuplicate selects the collision policy ("overwrite" or "rename").
	OnDuplicate string
}

// Upload performs the two-step file upload handshake: a form POST
// describing the file, whose response names an upload target URL and a
// set of required form fields, then a multipart POST of those fields plus
// the payload to that target, with no Authorization header, as the target
// is a pre-signed URL. The server signals success on the second step with
// a 201 or a 3xx redirect.
func (s FilesService) Upload(ctx context.Context, opts UploadFileOptions, payload io.Reader) (Record, error) {
	return uploadFile(ctx, s.Client, s.Client.HTTP, opts, payload)
}

func uploadFile(ctx context.Context, r Requester, httpClient *http.Client, opts UploadFileOptions, payload io.Reader) (Record, error) {
	if opts.Name == "" {
		return nil, &ArgumentError{Param: "name", Reason: "empty file name"}
	}

	decl := []Param{
		{Name: "Name", Key: "name", Kind: KindString},
		{Name: "Size", Key: "size", Kind: KindInt},
		{Name: "ContentType", Key: "content_type", Kind: KindString},
		{Name: "ParentPath", Key: "parent_folder_path", Kind: KindPath},
		{Name: "OnDuplicate", Key: "on_duplicate", Kind: KindString},
	}
	values := map[string]any{
		"Name":        opts.Name,
		"Size":        opts.Size,
		"ContentType": opts.ContentType,
		"ParentPath":  opts.ParentPath,
		"OnDuplicate": opts.OnDuplicate,
	}
	form, err := EncodeArgs(decl, values, nil, nil)
	if err != nil {
		return nil, err
	}

	url := r.courseURL("files", nil)
	env, err := r.submit(ctx, http.MethodPost, url, form)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodPost) {
		return nil, &StatusError{Method: http.MethodPost, URL: url, Status: env.Status}
	}
	if env.Body.Shape != ShapeObject {
		return nil, &ShapeError{Detail: "upload handshake response is not an object"}
	}

	ticket := env.Body.Object
	target := ticket.Str("upload_url")
	if target == "" {
		return nil, &ShapeError{Detail: "upload handshake response carries no upload_url"}
	}
	fields, _ := ticket["upload_params"].(map[string]any)

	return postUpload(ctx, httpClient, target, fields, opts.Name, payload)
}

// postUpload sends the second handshake step: the returned fields first,
// the file part last, per the target's requirements.
func postUpload(ctx context.Context, httpClient *http.Client, target string, fields map[string]any, filename string, payload io.Reader) (Record, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, fmt.Sprintf("%v", value)); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, payload); err != nil {
		return nil, fmt.Errorf("failed to write file payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	// The redirect the server answers with confirms the upload; following
	// it would re-enter authenticated territory without a token.
	client := &http.Client{
		Timeout:   httpClient.Timeout,
		Transport: httpClient.Transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}

	created := resp.StatusCode == http.StatusCreated ||
		(resp.StatusCode >= 300 && resp.StatusCode < 400)
	if !created {
		return nil, &StatusError{
			Method: http.MethodPost,
			URL:    target,
			Status: Status{Code: resp.StatusCode, Text: http.StatusText(resp.StatusCode)},
		}
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		decoded, err := DecodeBody(respBody)
		if err == nil && decoded.Shape == ShapeObject {
			return decoded.Object, nil
		}
	}
	return Record{}, nil
}

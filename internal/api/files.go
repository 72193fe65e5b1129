package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListFilesOptions filter the course file listing.
type ListFilesOptions struct {
	Search      string
	ContentType []string
	Only        []string
}

// List retrieves all course files across every page.
func (s FilesService) List(ctx context.Context, opts ListFilesOptions) (RecordSet, error) {
	return listFiles(ctx, s.Client, opts)
}

func listFiles(ctx context.Context, r Requester, opts ListFilesOptions) (RecordSet, error) {
	decl := []Param{
		{Name: "Search", Key: "search_term", Kind: KindString},
		{Name: "ContentType", Key: "content_types[]", Kind: KindString},
		{Name: "Only", Key: "only[]", Kind: KindString},
	}
	values := map[string]any{
		"Search":      opts.Search,
		"ContentType": opts.ContentType,
		"Only":        opts.Only,
	}
	query, err := EncodeArgs(decl, values, nil, nil)
	if err != nil {
		return nil, err
	}

	url := r.courseURL("files", r.listQuery(query))
	env, err := r.getAll(ctx, url)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodGet) {
		return env.Records, &StatusError{Method: http.MethodGet, URL: url, Status: env.Status}
	}
	return env.Records, nil
}

// Delete removes a file. Files are addressed by their own global id, not
// through the course scope.
func (s FilesService) Delete(ctx context.Context, fileID int64) error {
	return deleteFile(ctx, s.Client, fileID)
}

func deleteFile(ctx context.Context, r Requester, fileID int64) error {
	url := r.globalPath(fmt.Sprintf("files/%d", fileID))
	env, err := r.submit(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	if !env.OK(http.MethodDelete) {
		return &StatusError{Method: http.MethodDelete, URL: url, Status: env.Status}
	}
	return nil
}

package api

import (
	"context"
	"fmt"
	"net/http"
)

// List retrieves all course folders across every page.
func (s FoldersService) List(ctx context.Context) (RecordSet, error) {
	return listFolders(ctx, s.Client)
}

func listFolders(ctx context.Context, r Requester) (RecordSet, error) {
	url := r.courseURL("folders", r.listQuery(nil))
	env, err := r.getAll(ctx, url)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodGet) {
		return env.Records, &StatusError{Method: http.MethodGet, URL: url, Status: env.Status}
	}
	return env.Records, nil
}

// Create creates a folder. path may use either separator; it is normalized
// to forward slashes on the wire.
func (s FoldersService) Create(ctx context.Context, name, parentPath string) (Record, error) {
	return createFolder(ctx, s.Client, name, parentPath)
}

func createFolder(ctx context.Context, r Requester, name, parentPath string) (Record, error) {
	if name == "" {
		return nil, &ArgumentError{Param: "name", Reason: "empty folder name"}
	}
	decl := []Param{
		{Name: "Name", Key: "name", Kind: KindString},
		{Name: "ParentPath", Key: "parent_folder_path", Kind: KindPath},
	}
	values := map[string]any{
		"Name":       name,
		"ParentPath": parentPath,
	}
	form, err := EncodeArgs(decl, values, nil, nil)
	if err != nil {
		return nil, err
	}

	url := r.courseURL("folders", nil)
	env, err := r.submit(ctx, http.MethodPost, url, form)
	if err != nil {
		return nil, err
	}
	if !env.OK(http.MethodPost) {
		return nil, &StatusError{Method: http.MethodPost, URL: url, Status: env.Status}
	}
	return env.Body.Object, nil
}

// Delete removes a folder by its global id.
func (s FoldersService) Delete(ctx context.Context, folderID int64) error {
	return deleteFolder(ctx, s.Client, folderID)
}

func deleteFolder(ctx context.Context, r Requester, folderID int64) error {
	url := r.globalPath(fmt.Sprintf("folders/%d", folderID))
	env, err := r.submit(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	if !env.OK(http.MethodDelete) {
		return &StatusError{Method: http.MethodDelete, URL: url, Status: env.Status}
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gupta-8/code-snippet/internal/apperror"
	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/repository"
)

const MaxFolderNameLength = 100

// FolderService owns folder CRUD. Folders are per-user; deleting one
// detaches its snippets instead of deleting them.
type FolderService struct {
	folders repository.FolderRepository
	logger  *slog.Logger
}

func NewFolderService(folders repository.FolderRepository, logger *slog.Logger) *FolderService {
	return &FolderService{folders: folders, logger: logger}
}

func (s *FolderService) Create(ctx context.Context, userID, name, color string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if err := validateFolderName(name); err != nil {
		return nil, err
	}
	if color == "" {
		color = "default"
	}

	folder := &model.Folder{Name: name, Color: color, UserID: userID}
	if err := s.folders.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "folder_id", folder.ID, "user_id", userID)
	return folder, nil
}

func (s *FolderService) Get(ctx context.Context, userID, id string) (*model.Folder, error) {
	return s.folders.GetOwnedFolder(ctx, id, userID)
}

func (s *FolderService) List(ctx context.Context, userID string) ([]model.Folder, error) {
	return s.folders.ListFoldersByUser(ctx, userID)
}

// Update renames and/or recolors a folder. Empty fields keep the current
// value.
func (s *FolderService) Update(ctx context.Context, userID, id, name, color string) (*model.Folder, error) {
	folder, err := s.folders.GetOwnedFolder(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		if err := validateFolderName(name); err != nil {
			return nil, err
		}
		folder.Name = name
	}
	if color != "" {
		folder.Color = color
	}

	if err := s.folders.UpdateFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *FolderService) Delete(ctx context.Context, userID, id string) error {
	if err := s.folders.DeleteFolder(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("folder deleted", "folder_id", id, "user_id", userID)
	return nil
}

func validateFolderName(name string) error {
	if name == "" {
		return apperror.ValidationFailed("name", "folder name is required")
	}
	if len(name) > MaxFolderNameLength {
		return apperror.ValidationFailed("name",
			fmt.Sprintf("folder name must be at most %d characters", MaxFolderNameLength))
	}
	return nil
}
